package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/middleware"
	"github.com/yigit/counselordesk/internal/pkg/filestorage"
)

// CounselorController handles the counselor profile
type CounselorController struct {
	counselorService services.CounselorService
	fileStorage      filestorage.FileStorage
}

// NewCounselorController creates a new CounselorController
func NewCounselorController(counselorService services.CounselorService, fileStorage filestorage.FileStorage) *CounselorController {
	return &CounselorController{
		counselorService: counselorService,
		fileStorage:      fileStorage,
	}
}

// GetProfile godoc
// @Summary Get the counselor profile
// @Tags counselor
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.CounselorInfo}
// @Router /counselor [get]
func (c *CounselorController) GetProfile(ctx *gin.Context) {
	info, err := c.counselorService.GetProfile(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(info, ""))
}

// UpdateProfile godoc
// @Summary Update the counselor profile
// @Description Accepts JSON, or multipart form data with an optional "avatar" image
// @Tags counselor
// @Accept json,mpfd
// @Produce json
// @Param request body dto.UpdateCounselorRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.CounselorInfo} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 415 {object} dto.ErrorResponse "Avatar is not an image"
// @Router /counselor [put]
func (c *CounselorController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateCounselorRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	avatar, ok := optionalImage(ctx, c.fileStorage, "avatar")
	if !ok {
		return
	}
	if avatar != "" {
		req.Avatar = &avatar
	}

	info, err := c.counselorService.UpdateProfile(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(info, "Profile updated"))
}
