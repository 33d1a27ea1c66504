package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/middleware"
)

// OverviewController serves the dashboard and filter facets
type OverviewController struct {
	overviewService services.OverviewService
}

// NewOverviewController creates a new OverviewController
func NewOverviewController(overviewService services.OverviewService) *OverviewController {
	return &OverviewController{overviewService: overviewService}
}

// Dashboard godoc
// @Summary Dashboard statistics
// @Description Roster size, occupied dormitories, students needing attention, party members and the grade/major portals
// @Tags overview
// @Produce json
// @Success 200 {object} dto.APIResponse{data=projections.DashboardStats}
// @Router /dashboard [get]
func (c *OverviewController) Dashboard(ctx *gin.Context) {
	stats, err := c.overviewService.Dashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}

// Facets godoc
// @Summary Filter facets
// @Description Grades and majors present on the roster, each led by its "all" option, plus the fixed vocabularies
// @Tags overview
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FacetsResponse}
// @Router /facets [get]
func (c *OverviewController) Facets(ctx *gin.Context) {
	facets, err := c.overviewService.Facets(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(facets, ""))
}
