package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 列表接口统一约定：page从1开始计数，page_size越界时截断到上限
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageParams 请求侧的分页参数
type PageParams struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// ParsePageParams 从查询串解析分页参数，非法取值回退到默认值
func ParsePageParams(c *gin.Context) *PageParams {
	params := &PageParams{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		params.Page = page
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil && size > 0 {
		params.PageSize = size
	}
	if params.PageSize > MaxPageSize {
		params.PageSize = MaxPageSize
	}
	return params
}

// PageInfo 响应侧的分页信息
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPageInfo 由分页参数和总记录数计算分页信息
func NewPageInfo(params *PageParams, total int64) *PageInfo {
	info := &PageInfo{
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	}
	if params.PageSize > 0 {
		info.TotalPages = int(math.Ceil(float64(total) / float64(params.PageSize)))
	}
	return info
}
