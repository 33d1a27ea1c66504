package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/pkg/apperrors"
)

func TestHandleAPIErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"import", fmt.Errorf("parse roster: %w", apperrors.ErrImportFailed), http.StatusUnprocessableEntity, dto.ErrorCodeImportFailed},
		{"too large", apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, dto.ErrorCodeFileTooLarge},
		{"not image", apperrors.ErrNotAnImage, http.StatusUnsupportedMediaType, dto.ErrorCodeNotAnImage},
		{"tag", apperrors.ErrInvalidTag, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"validation", apperrors.NewValidationError("date is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"not found", apperrors.NewResourceNotFoundError("student not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestCustomErrorMessageIsSurfaced(t *testing.T) {
	_, detail := describeError(apperrors.NewValidationError("date is required"))
	assert.Equal(t, "date is required", detail.Message)
}

type tagBody struct {
	Tag models.Tag `json:"tag" binding:"required,student_tag"`
}

func TestRegisteredValidatorsRejectUnknownTag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()))
	router.POST("/tags", func(c *gin.Context) {
		var body tagBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleBindError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	for body, want := range map[string]int{
		`{"tag":"党员"}`: http.StatusNoContent,
		`{"tag":"VIP"}`: http.StatusBadRequest,
		`{}`:            http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, body)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"http://desk.test"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://desk.test")
	req.Header.Set("Access-Control-Request-Method", "GET")
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://desk.test", w.Header().Get("Access-Control-Allow-Origin"))
}
