package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/services"
	"github.com/yigit/counselordesk/internal/middleware"
	"github.com/yigit/counselordesk/internal/pkg/filestorage"
)

// optionalImage reads an optional multipart image field as a data URL.
// ok is false when a response has already been written.
func optionalImage(ctx *gin.Context, storage filestorage.FileStorage, field string) (dataURL string, ok bool) {
	if ctx.ContentType() != gin.MIMEMultipartPOSTForm {
		return "", true
	}
	file, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", true
	}
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+field+" upload").WithField(field)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}

	dataURL, err = storage.SaveImage(file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return "", false
	}
	return dataURL, true
}

// respondOutcome answers a mutation addressed by student id. Unknown ids are
// reported as a successful request that changed nothing.
func respondOutcome[T any](ctx *gin.Context, out services.Outcome[T], message string) {
	if !out.Applied {
		ctx.JSON(http.StatusOK, dto.NewNoChangeResponse())
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(out.Value, message))
}
