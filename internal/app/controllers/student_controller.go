package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/middleware"
	"github.com/yigit/counselordesk/internal/pkg/filestorage"
	"github.com/yigit/counselordesk/internal/pkg/helpers"
)

// StudentController handles roster operations
type StudentController struct {
	studentService services.StudentService
	fileStorage    filestorage.FileStorage
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, fileStorage filestorage.FileStorage) *StudentController {
	return &StudentController{
		studentService: studentService,
		fileStorage:    fileStorage,
	}
}

// ListStudents godoc
// @Summary List students
// @Description Returns the roster in store order, optionally narrowed by a search term matching name, student number, dormitory, major or grade
// @Tags students
// @Produce json
// @Param q query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size, at most 200; omit for the whole roster"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Student}} "Students retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var query dto.StudentListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	students, err := c.studentService.ListStudents(ctx, query.Q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	items, pagination := helpers.Paginate(students, page, size)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: pagination,
	}, ""))
}

// GetStudent godoc
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// PickStudents godoc
// @Summary Student picker
// @Description Returns at most five students whose name, student number or class contains the term. A blank term returns nothing.
// @Tags students
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /students/picker [get]
func (c *StudentController) PickStudents(ctx *gin.Context) {
	var query dto.PickerQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	students, err := c.studentService.PickStudents(ctx, query.Q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// CreateStudent godoc
// @Summary Create a student
// @Description Adds a student at the head of the roster. Accepts JSON, or multipart form data with an optional "avatar" image.
// @Tags students
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 413 {object} dto.ErrorResponse "Avatar too large"
// @Failure 415 {object} dto.ErrorResponse "Avatar is not an image"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	avatar, ok := optionalImage(ctx, c.fileStorage, "avatar")
	if !ok {
		return
	}
	if avatar != "" {
		req.Avatar = avatar
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student, "Student created"))
}

// UpdateStudent godoc
// @Summary Update a student
// @Description Merges the provided fields into the student's record. An unknown ID changes nothing and still succeeds.
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated, or nothing changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /students/{id} [patch]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	out, err := c.studentService.UpdateStudent(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOutcome(ctx, out, "Student updated")
}

// DeleteStudent godoc
// @Summary Delete a student
// @Description Removes the student together with their talks and honors. Dormitory inspections are kept.
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=store.DeleteResult} "Student deleted, or nothing changed"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	out, err := c.studentService.DeleteStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOutcome(ctx, out, "Student deleted")
}

// ToggleTag godoc
// @Summary Toggle a tag
// @Description Adds the tag when the student lacks it and removes it otherwise
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.ToggleTagRequest true "Tag"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Unknown tag"
// @Router /students/{id}/tags/toggle [post]
func (c *StudentController) ToggleTag(ctx *gin.Context) {
	var req dto.ToggleTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	out, err := c.studentService.ToggleTag(ctx, ctx.Param("id"), req.Tag)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOutcome(ctx, out, "Tags updated")
}

// SetTags godoc
// @Summary Replace tags
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.SetTagsRequest true "Complete tag set"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Unknown tag"
// @Router /students/{id}/tags [put]
func (c *StudentController) SetTags(ctx *gin.Context) {
	var req dto.SetTagsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	out, err := c.studentService.SetTags(ctx, ctx.Param("id"), req.Tags)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOutcome(ctx, out, "Tags updated")
}

// AppendEvent godoc
// @Summary Add a timeline entry
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.AppendEventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=models.StudentEvent} "Event added"
// @Success 200 {object} dto.APIResponse "Nothing changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /students/{id}/events [post]
func (c *StudentController) AppendEvent(ctx *gin.Context) {
	var req dto.AppendEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	out, err := c.studentService.AppendEvent(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !out.Applied {
		ctx.JSON(http.StatusOK, dto.NewNoChangeResponse())
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(out.Value, "Event added"))
}
