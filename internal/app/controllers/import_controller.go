package controllers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/counselordesk/internal/app/importer"
	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/middleware"
	"github.com/yigit/counselordesk/internal/pkg/filestorage"
)

// Template downloads
const (
	csvTemplateName  = "student_import_template.csv"
	xlsxTemplateName = "student_import_template.xlsx"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ImportController handles roster file uploads and the import template
type ImportController struct {
	importService  services.ImportService
	fileStorage    filestorage.FileStorage
	maxImportBytes int64
	logger         zerolog.Logger
}

// NewImportController creates a new ImportController
func NewImportController(importService services.ImportService, fileStorage filestorage.FileStorage, maxImportBytes int64, logger zerolog.Logger) *ImportController {
	return &ImportController{
		importService:  importService,
		fileStorage:    fileStorage,
		maxImportBytes: maxImportBytes,
		logger:         logger,
	}
}

// ImportStudents godoc
// @Summary Import students from a file
// @Description Appends every row of an .xlsx workbook or a GB18030 CSV file to the roster. Nothing is added when the file is rejected.
// @Tags students
// @Accept mpfd
// @Produce json
// @Param file formData file true "Roster file (.xlsx or .csv)"
// @Success 201 {object} dto.APIResponse{data=dto.ImportResponse} "Students imported"
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 422 {object} dto.ErrorResponse "File could not be parsed"
// @Router /students/import [post]
func (c *ImportController) ImportStudents(ctx *gin.Context) {
	data, kind, ok := c.readUpload(ctx)
	if !ok {
		return
	}

	result, err := c.importService.ImportStudents(ctx, data, kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ImportResponse{
		Count:    result.Count,
		Students: result.Students,
	}, "Students imported"))
}

// PreviewImport godoc
// @Summary Preview an import
// @Description Parses the file exactly as an import would and returns the rows without adding them
// @Tags students
// @Accept mpfd
// @Produce json
// @Param file formData file true "Roster file (.xlsx or .csv)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportPreviewResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 422 {object} dto.ErrorResponse "File could not be parsed"
// @Router /students/import/preview [post]
func (c *ImportController) PreviewImport(ctx *gin.Context) {
	data, kind, ok := c.readUpload(ctx)
	if !ok {
		return
	}

	result, err := c.importService.Preview(ctx, data, kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ImportPreviewResponse{
		Count: result.Count,
		Rows:  result.Students,
	}, ""))
}

func (c *ImportController) readUpload(ctx *gin.Context) ([]byte, importer.FileKind, bool) {
	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid or missing file").WithField("file")
		if !errors.Is(err, http.ErrMissingFile) {
			errorDetail = errorDetail.WithDetails(err.Error())
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, importer.KindDelimited, false
	}

	data, info, err := c.fileStorage.ReadFile(file, c.maxImportBytes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, importer.KindDelimited, false
	}
	c.logger.Debug().Str("filename", info.Filename).Int64("size", info.FileSize).Str("mime", info.MimeType).Msg("Import file received")
	return data, importer.KindFromFilename(info.Filename), true
}

// DownloadTemplate godoc
// @Summary Download the import template
// @Description CSV (UTF-8 with byte-order mark) or xlsx with the header row and one example row
// @Tags students
// @Produce octet-stream
// @Param format query string false "csv or xlsx" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Unknown format"
// @Router /students/import/template [get]
func (c *ImportController) DownloadTemplate(ctx *gin.Context) {
	var (
		buf         bytes.Buffer
		err         error
		filename    string
		contentType string
	)
	switch format := ctx.DefaultQuery("format", "csv"); format {
	case "csv":
		err = importer.WriteCSVTemplate(&buf)
		filename, contentType = csvTemplateName, "text/csv; charset=utf-8"
	case "xlsx":
		err = importer.WriteXLSXTemplate(&buf)
		filename, contentType = xlsxTemplateName, xlsxContentType
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Unknown template format").
			WithField("format").
			WithDetails("format must be csv or xlsx")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}
