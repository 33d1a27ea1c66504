package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, info := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 5, info.TotalItems)

	page, info = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page)
	assert.Equal(t, 3, info.CurrentPage)

	page, info = Paginate(items, 9, 2)
	assert.Empty(t, page)
	assert.Equal(t, 3, info.CurrentPage)

	page, info = Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, info.TotalPages)
}

func TestPaginateWithoutSizeReturnsEverything(t *testing.T) {
	items := make([]int, MaxPageSize+50)

	page, info := Paginate(items, 1, 0)
	assert.Len(t, page, MaxPageSize+50)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, MaxPageSize+50, info.PageSize)

	page, info = Paginate([]int{}, 1, 0)
	assert.Empty(t, page)
	assert.Equal(t, 1, info.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, 0},
		{"?page=2", 2, 0},
		{"?page=3&size=10", 3, 10},
		{"?page=-1&size=abc", 1, DefaultPageSize},
		{"?size=0", 1, DefaultPageSize},
		{"?size=100000", 1, MaxPageSize},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/students"+tt.query, nil)

		page, size := ParsePaginationParams(c)
		assert.Equal(t, tt.wantPage, page, tt.query)
		assert.Equal(t, tt.wantSize, size, tt.query)
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 800*time.Millisecond, ParseDuration("800ms", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}

func TestFormatInspectionTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 21, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-03-01 21:30:00", FormatInspectionTime(ts))
}
