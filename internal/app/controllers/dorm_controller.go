package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/middleware"
)

// DormController handles the dormitory board
type DormController struct {
	dormService services.DormService
}

// NewDormController creates a new DormController
func NewDormController(dormService services.DormService) *DormController {
	return &DormController{dormService: dormService}
}

// Board godoc
// @Summary Dormitory board
// @Description Students grouped by dormitory, each room with its latest inspection status
// @Tags dorms
// @Produce json
// @Param grade query string false "Grade, or 全部年级"
// @Param major query string false "Major, or 全部专业"
// @Success 200 {object} dto.APIResponse{data=[]projections.DormCard}
// @Router /dorms [get]
func (c *DormController) Board(ctx *gin.Context) {
	var query dto.GradeMajorQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	board, err := c.dormService.Board(ctx, &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(board, ""))
}

// Latest godoc
// @Summary Latest inspection of a dormitory
// @Description data is null when the room was never inspected
// @Tags dorms
// @Produce json
// @Param dormId path string true "Dormitory"
// @Success 200 {object} dto.APIResponse{data=models.DormInspection}
// @Router /dorms/{dormId}/latest [get]
func (c *DormController) Latest(ctx *gin.Context) {
	latest, err := c.dormService.Latest(ctx, ctx.Param("dormId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(latest, ""))
}

// History godoc
// @Summary Inspection history of a dormitory
// @Tags dorms
// @Produce json
// @Param dormId path string true "Dormitory"
// @Success 200 {object} dto.APIResponse{data=[]models.DormInspection}
// @Router /dorms/{dormId}/history [get]
func (c *DormController) History(ctx *gin.Context) {
	history, err := c.dormService.History(ctx, ctx.Param("dormId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(history, ""))
}

// RecordInspection godoc
// @Summary Record an inspection
// @Description A blank time is stamped with the server's local time
// @Tags dorms
// @Accept json
// @Produce json
// @Param dormId path string true "Dormitory"
// @Param request body dto.RecordInspectionRequest true "Inspection"
// @Success 201 {object} dto.APIResponse{data=models.DormInspection} "Inspection recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /dorms/{dormId}/inspections [post]
func (c *DormController) RecordInspection(ctx *gin.Context) {
	var req dto.RecordInspectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	inspection, err := c.dormService.RecordInspection(ctx, ctx.Param("dormId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(inspection, "Inspection recorded"))
}
