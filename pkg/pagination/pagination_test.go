package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParsePageParamsDefaults(t *testing.T) {
	params := ParsePageParams(newTestContext(t, "/users"))

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
}

func TestParsePageParamsInvalidValuesFallBack(t *testing.T) {
	params := ParsePageParams(newTestContext(t, "/users?page=abc&page_size=-3"))

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
}

func TestParsePageParamsCapsPageSize(t *testing.T) {
	params := ParsePageParams(newTestContext(t, "/users?page=3&page_size=500"))

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, MaxPageSize, params.PageSize)
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(&PageParams{Page: 2, PageSize: 20}, 41)

	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, int64(41), info.Total)
	assert.Equal(t, 3, info.TotalPages)
}

func TestNewPageInfoEmptyResult(t *testing.T) {
	info := NewPageInfo(&PageParams{Page: 1, PageSize: 20}, 0)

	assert.Equal(t, 0, info.TotalPages)
}
