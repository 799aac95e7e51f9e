package dto

// CreateBorrowingRequest HTTP借书请求
// 日期格式为YYYY-MM-DD,应还日期必须晚于借出日期(由领域层校验)
type CreateBorrowingRequest struct {
	BookID             uint   `json:"book_id" binding:"required" example:"1"`
	BorrowDate         string `json:"borrow_date" binding:"required,datetime=2006-01-02" example:"2025-10-01"`
	ExpectedReturnDate string `json:"expected_return_date" binding:"required,datetime=2006-01-02" example:"2025-10-15"`
}

// ListBorrowingsRequest HTTP借阅列表请求
// is_active使用指针区分"未传"与"false"
type ListBorrowingsRequest struct {
	UserID   uint  `form:"user_id" binding:"omitempty" example:"1"`
	IsActive *bool `form:"is_active" binding:"omitempty" example:"true"`
	Page     int   `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int   `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
