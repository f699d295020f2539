package models

// 分页默认值。单页上限防止一次请求拉全表
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationQuery 分页查询参数
type PaginationQuery struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// Normalize 归一化分页参数，非法值回落到默认值
func (q *PaginationQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		q.PageSize = DefaultPageSize
	}
}
