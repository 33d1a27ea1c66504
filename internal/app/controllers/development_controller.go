package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/middleware"
	"github.com/yigit/counselordesk/internal/pkg/filestorage"
)

// DevelopmentController handles honors and growth stories
type DevelopmentController struct {
	developmentService services.DevelopmentService
	fileStorage        filestorage.FileStorage
}

// NewDevelopmentController creates a new DevelopmentController
func NewDevelopmentController(developmentService services.DevelopmentService, fileStorage filestorage.FileStorage) *DevelopmentController {
	return &DevelopmentController{
		developmentService: developmentService,
		fileStorage:        fileStorage,
	}
}

// ListHonors godoc
// @Summary List honors
// @Description Honors of students in the selected grade and major. Honors of students no longer on the roster are always listed.
// @Tags development
// @Produce json
// @Param grade query string false "Grade, or 全部年级"
// @Param major query string false "Major, or 全部专业"
// @Success 200 {object} dto.APIResponse{data=[]models.HonorRecord}
// @Router /honors [get]
func (c *DevelopmentController) ListHonors(ctx *gin.Context) {
	var query dto.GradeMajorQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	honors, err := c.developmentService.ListHonors(ctx, &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(honors, ""))
}

// RecordHonor godoc
// @Summary Record an honor
// @Description Stores the award and adds it to the student's timeline. Accepts JSON, or multipart form data with an optional "image" certificate photo.
// @Tags development
// @Accept json,mpfd
// @Produce json
// @Param request body dto.RecordHonorRequest true "Honor"
// @Success 201 {object} dto.APIResponse{data=services.HonorResult} "Honor recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /honors [post]
func (c *DevelopmentController) RecordHonor(ctx *gin.Context) {
	var req dto.RecordHonorRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	image, ok := optionalImage(ctx, c.fileStorage, "image")
	if !ok {
		return
	}
	if image != "" {
		req.Image = image
	}

	result, err := c.developmentService.RecordHonor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result, "Honor recorded"))
}

// ListStories godoc
// @Summary List growth stories
// @Tags development
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.StoryRecord}
// @Router /stories [get]
func (c *DevelopmentController) ListStories(ctx *gin.Context) {
	stories, err := c.developmentService.ListStories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stories, ""))
}

// RecordStory godoc
// @Summary Post a growth story
// @Description Tags are one comma separated string; both , and ， separate tags
// @Tags development
// @Accept json,mpfd
// @Produce json
// @Param request body dto.RecordStoryRequest true "Story"
// @Success 201 {object} dto.APIResponse{data=models.StoryRecord} "Story recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /stories [post]
func (c *DevelopmentController) RecordStory(ctx *gin.Context) {
	var req dto.RecordStoryRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	image, ok := optionalImage(ctx, c.fileStorage, "image")
	if !ok {
		return
	}
	if image != "" {
		req.Image = image
	}

	story, err := c.developmentService.RecordStory(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(story, "Story recorded"))
}
