package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/middleware"
	"github.com/yigit/counselordesk/internal/pkg/filestorage"
)

// TalkController handles counseling records
type TalkController struct {
	talkService services.TalkService
	fileStorage filestorage.FileStorage
}

// NewTalkController creates a new TalkController
func NewTalkController(talkService services.TalkService, fileStorage filestorage.FileStorage) *TalkController {
	return &TalkController{
		talkService: talkService,
		fileStorage: fileStorage,
	}
}

// ListStudentsWithTalks godoc
// @Summary Counseling overview
// @Description Students with at least one talk, filtered by grade, major and a name or student number fragment
// @Tags talks
// @Produce json
// @Param grade query string false "Grade, or 全部年级"
// @Param major query string false "Major, or 全部专业"
// @Param q query string false "Name or student number fragment"
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /talks [get]
func (c *TalkController) ListStudentsWithTalks(ctx *gin.Context) {
	var query dto.TalkListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	students, err := c.talkService.ListStudentsWithTalks(ctx, &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// TalksForStudent godoc
// @Summary Talks of one student
// @Tags talks
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.TalkRecord}
// @Router /talks/students/{id} [get]
func (c *TalkController) TalksForStudent(ctx *gin.Context) {
	talks, err := c.talkService.TalksForStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(talks, ""))
}

// RecordTalk godoc
// @Summary Record a talk
// @Description Accepts JSON, or multipart form data with an optional "image" photo
// @Tags talks
// @Accept json,mpfd
// @Produce json
// @Param request body dto.RecordTalkRequest true "Talk"
// @Success 201 {object} dto.APIResponse{data=models.TalkRecord} "Talk recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 413 {object} dto.ErrorResponse "Image too large"
// @Failure 415 {object} dto.ErrorResponse "Attachment is not an image"
// @Router /talks [post]
func (c *TalkController) RecordTalk(ctx *gin.Context) {
	var req dto.RecordTalkRequest
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

	talk, err := c.talkService.RecordTalk(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(talk, "Talk recorded"))
}
