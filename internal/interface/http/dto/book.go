package dto

import "fmt"

// AddBookRequest HTTP新书入库请求
// validator tag说明:
// - required: 必填字段
// - oneof: 装帧类型枚举校验
// - min/max: 数值范围校验
type AddBookRequest struct {
	Title    string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author   string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Cover    string `json:"cover" binding:"required,oneof=HARD SOFT" example:"HARD"`
	Stock    int    `json:"stock" binding:"min=0" example:"10"`
	DailyFee int64  `json:"daily_fee" binding:"required,min=1,max=999999" example:"150"` // 日借阅费(分),1.50元
}

// UpdateBookRequest HTTP图书修改请求
// DailyFee传-1表示不修改(0是合法费用)
type UpdateBookRequest struct {
	Title    string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author   string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Cover    string `json:"cover" binding:"required,oneof=HARD SOFT" example:"HARD"`
	DailyFee int64  `json:"daily_fee" binding:"min=-1,max=999999" example:"150"`
}

// BookResponse HTTP图书响应
// 用于单个图书详情返回
type BookResponse struct {
	ID           uint   `json:"id" example:"1"`
	Title        string `json:"title" example:"Go语言实战"`
	Author       string `json:"author" example:"威廉·肯尼迪"`
	Cover        string `json:"cover" example:"HARD"`
	Stock        int    `json:"stock" example:"10"`
	DailyFee     int64  `json:"daily_fee" example:"150"`      // 日借阅费(分)
	DailyFeeYuan string `json:"daily_fee_yuan" example:"1.50"` // 日借阅费(元),方便前端显示
	CreatedAt    string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt    string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// BookListItem HTTP图书列表项
type BookListItem struct {
	ID           uint   `json:"id" example:"1"`
	Title        string `json:"title" example:"Go语言实战"`
	Author       string `json:"author" example:"威廉·肯尼迪"`
	Cover        string `json:"cover" example:"HARD"`
	Stock        int    `json:"stock" example:"10"`
	DailyFee     int64  `json:"daily_fee" example:"150"`
	DailyFeeYuan string `json:"daily_fee_yuan" example:"1.50"`
	CreatedAt    string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=title_asc created_at_desc" example:"created_at_desc"`
}

// ListBooksResponse HTTP图书列表响应
type ListBooksResponse struct {
	List  []BookListItem `json:"list"`
	Total int64          `json:"total" example:"100"`
	Page  int            `json:"page" example:"1"`
	Size  int            `json:"size" example:"20"`
}

// FormatFeeYuan 格式化费用(分→元)
// 例如:150分 → "1.50"
func FormatFeeYuan(feeFen int64) string {
	yuan := float64(feeFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
