package bootstrap

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/config"
)

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type testApp struct {
	t      *testing.T
	router *gin.Engine
	deps   *Dependencies
}

func newTestApp(t *testing.T, demo bool) *testApp {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	cfg.Server.Mode = "test"
	cfg.Seed.Demo = demo

	deps, err := BuildDependencies(cfg, zerolog.Nop())
	require.NoError(t, err)
	router, err := SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)
	return &testApp{t: t, router: router, deps: deps}
}

func (a *testApp) do(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (a *testApp) json(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.do(req)
}

func (a *testApp) multipart(path string, fields map[string]string, fileField, filename string, content []byte) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(a.t, err)
		_, err = fw.Write(content)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req)
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type studentView struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	DormID string   `json:"dormId"`
}

func TestCounselorWorkflow(t *testing.T) {
	app := newTestApp(t, false)
	dorm := "/api/v1/dorms/" + url.PathEscape("东区-303")

	w, env := app.json(http.MethodPost, "/api/v1/students", map[string]any{
		"name": "王五", "gender": "女", "grade": "2023级", "major": "软件工程", "dormId": "东区-303",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[studentView](t, env.Data)
	require.NotEmpty(t, created.ID)
	studentPath := "/api/v1/students/" + created.ID

	w, env = app.json(http.MethodPost, studentPath+"/tags/toggle", map[string]string{"tag": "心理关注"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"心理关注"}, decode[studentView](t, env.Data).Tags)

	w, env = app.json(http.MethodPost, studentPath+"/tags/toggle", map[string]string{"tag": "VIP"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

	w, _ = app.json(http.MethodPost, "/api/v1/talks", map[string]string{
		"studentId": created.ID, "type": "心理疏导", "date": "2024-03-01", "content": "情绪疏导",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = app.json(http.MethodPost, dorm+"/inspections", map[string]string{"status": "优秀"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = app.json(http.MethodPost, dorm+"/inspections", map[string]string{"status": "违纪", "note": "晚归"})
	require.Equal(t, http.StatusCreated, w.Code)

	_, env = app.json(http.MethodGet, dorm+"/latest", nil)
	assert.Equal(t, "违纪", decode[map[string]any](t, env.Data)["status"])

	_, env = app.json(http.MethodGet, "/api/v1/dashboard", nil)
	stats := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 1, stats["total"])

	w, env = app.json(http.MethodDelete, studentPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, env.Data)["talksRemoved"])

	// The room keeps its history after its only resident is gone
	_, env = app.json(http.MethodGet, dorm+"/history", nil)
	assert.Len(t, decode[[]any](t, env.Data), 2)

	assert.Greater(t, app.deps.Hub.Status().Seq, uint64(0))
}

func TestUnknownStudentMutationIsSuccessfulNoOp(t *testing.T) {
	app := newTestApp(t, true)

	w, env := app.json(http.MethodPatch, "/api/v1/students/ghost", map[string]string{"name": "新名字"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, dto.NoChangeMessage, env.Message)
	assert.Equal(t, "null", string(env.Data))

	w, env = app.json(http.MethodDelete, "/api/v1/students/ghost", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.NoChangeMessage, env.Message)

	w, env = app.json(http.MethodGet, "/api/v1/students/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)
}

func TestStudentListPaginatesAndSearches(t *testing.T) {
	app := newTestApp(t, true)

	_, env := app.json(http.MethodGet, "/api/v1/students", nil)
	all := decode[struct {
		Items      []studentView      `json:"items"`
		Pagination dto.PaginationInfo `json:"pagination"`
	}](t, env.Data)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 1, all.Pagination.TotalPages)

	_, env = app.json(http.MethodGet, "/api/v1/students?size=1&page=2", nil)
	page := decode[struct {
		Items      []studentView      `json:"items"`
		Pagination dto.PaginationInfo `json:"pagination"`
	}](t, env.Data)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "李华", page.Items[0].Name)
	assert.Equal(t, 2, page.Pagination.TotalItems)

	_, env = app.json(http.MethodGet, "/api/v1/students/picker?q="+url.QueryEscape("2021"), nil)
	picked := decode[[]studentView](t, env.Data)
	assert.Len(t, picked, 2)

	_, env = app.json(http.MethodGet, "/api/v1/students/picker", nil)
	assert.Empty(t, decode[[]studentView](t, env.Data))
}

func TestImportEndpoints(t *testing.T) {
	app := newTestApp(t, false)
	csv := []byte("\ufeff姓名,性别\r\n张三,男\r\n李华,女\r\n")

	w, env := app.multipart("/api/v1/students/import/preview", nil, "file", "roster.csv", csv)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode[map[string]any](t, env.Data)["count"])

	w, env = app.multipart("/api/v1/students/import", nil, "file", "roster.csv", csv)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode[map[string]any](t, env.Data)["count"])

	w, env = app.multipart("/api/v1/students/import", nil, "file", "roster.csv", []byte("姓名\r\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrorCodeImportFailed, env.Error.Code)
	assert.Len(t, app.deps.Store.Snapshot().Students, 2)

	w, env = app.multipart("/api/v1/students/import", map[string]string{"note": "x"}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, env.Error.Code)
}

func TestTemplateDownload(t *testing.T) {
	app := newTestApp(t, false)

	w, _ := app.json(http.MethodGet, "/api/v1/students/import/template", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\ufeff姓名")))

	w, _ = app.json(http.MethodGet, "/api/v1/students/import/template?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w, env := app.json(http.MethodGet, "/api/v1/students/import/template?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "format", env.Error.Field)
}

func TestTalkAttachmentMustBeImage(t *testing.T) {
	app := newTestApp(t, true)
	fields := map[string]string{"studentId": "any", "type": "日常谈话", "date": "2024-03-01", "content": "谈话"}

	w, env := app.multipart("/api/v1/talks", fields, "image", "notes.txt", []byte("plain text, not a picture"))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, dto.ErrorCodeNotAnImage, env.Error.Code)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	w, env = app.multipart("/api/v1/talks", fields, "image", "photo.png", png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(decode[map[string]any](t, env.Data)["img"].(string), "data:image/png;base64,"))
}

func TestJSONImageMustBeInlineOrLink(t *testing.T) {
	app := newTestApp(t, false)

	w, env := app.json(http.MethodPost, "/api/v1/stories", map[string]string{
		"title": "支教岁月", "author": "陈老师", "img": "javascript:alert(1)",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

	w, env = app.json(http.MethodPost, "/api/v1/stories", map[string]string{
		"title": "支教岁月", "author": "陈老师", "img": "https://picsum.photos/id/101/400/300",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "https://picsum.photos/id/101/400/300", decode[map[string]any](t, env.Data)["img"])

	w, _ = app.json(http.MethodPut, "/api/v1/counselor", map[string]string{"avatar": "not a picture"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFacetsCounselorAndHealth(t *testing.T) {
	app := newTestApp(t, true)

	_, env := app.json(http.MethodGet, "/api/v1/facets", nil)
	facets := decode[dto.FacetsResponse](t, env.Data)
	assert.Equal(t, []string{"全部年级", "2021级", "2022级"}, facets.Grades)

	w, env := app.json(http.MethodPut, "/api/v1/counselor", map[string]string{"themeColor": "green"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "green", decode[map[string]any](t, env.Data)["themeColor"])

	_, env = app.json(http.MethodGet, "/api/v1/sync/status", nil)
	assert.Equal(t, "syncing", decode[map[string]any](t, env.Data)["state"])

	w, _ = app.json(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
