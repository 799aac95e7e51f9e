package borrowing

import (
	"context"

	"github.com/xiebiao/library/internal/domain/borrowing"
)

// ListBorrowingsUseCase 借阅列表查询用例
// 可见性规则:
// - 普通读者只能看到自己的借阅,user_id过滤参数被忽略(强制为本人)
// - 馆员可以看到全部借阅,并可按user_id/is_active过滤
type ListBorrowingsUseCase struct {
	borrowingRepo borrowing.Repository
}

// NewListBorrowingsUseCase 创建列表查询用例
func NewListBorrowingsUseCase(borrowingRepo borrowing.Repository) *ListBorrowingsUseCase {
	return &ListBorrowingsUseCase{
		borrowingRepo: borrowingRepo,
	}
}

// ListBorrowingsRequest 列表查询请求DTO
type ListBorrowingsRequest struct {
	UserID   uint  // 按读者过滤(0=不过滤,仅馆员生效)
	IsActive *bool // true=未归还,false=已归还,nil=全部
	Page     int   // 页码(从1开始)
	PageSize int   // 每页数量
}

// BookSummary 内嵌的图书摘要
type BookSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Cover    string `json:"cover"`
	DailyFee int64  `json:"daily_fee"` // 日借阅费(分)
}

// UserSummary 内嵌的读者摘要
type UserSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// BorrowingListItem 列表项DTO
type BorrowingListItem struct {
	ID                 uint        `json:"id"`
	BorrowDate         string      `json:"borrow_date"`
	ExpectedReturnDate string      `json:"expected_return_date"`
	ActualReturnDate   *string     `json:"actual_return_date"` // null表示未归还
	IsActive           bool        `json:"is_active"`
	Book               BookSummary `json:"book"`
	User               UserSummary `json:"user"`
}

// ListBorrowingsResponse 列表查询响应DTO
type ListBorrowingsResponse struct {
	List     []BorrowingListItem `json:"list"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// Execute 执行列表查询
func (uc *ListBorrowingsUseCase) Execute(ctx context.Context, actor borrowing.Actor, req ListBorrowingsRequest) (*ListBorrowingsResponse, error) {
	// 分页参数兜底
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	params := borrowing.ListParams{
		UserID:   req.UserID,
		IsActive: req.IsActive,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	// 普通读者:无条件收窄到本人,user_id参数静默忽略
	if !borrowing.CanListAll(actor) {
		params.UserID = actor.ID
	}

	details, total, err := uc.borrowingRepo.ListDetails(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]BorrowingListItem, len(details))
	for i, d := range details {
		items[i] = toListItem(d)
	}

	return &ListBorrowingsResponse{
		List:     items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// toListItem 读模型 → 列表项DTO
func toListItem(d *borrowing.Detail) BorrowingListItem {
	var actualReturn *string
	if d.ActualReturnDate != nil {
		s := d.ActualReturnDate.Format("2006-01-02")
		actualReturn = &s
	}

	return BorrowingListItem{
		ID:                 d.ID,
		BorrowDate:         d.BorrowDate.Format("2006-01-02"),
		ExpectedReturnDate: d.ExpectedReturnDate.Format("2006-01-02"),
		ActualReturnDate:   actualReturn,
		IsActive:           d.IsActive(),
		Book: BookSummary{
			ID:       d.Book.ID,
			Title:    d.Book.Title,
			Author:   d.Book.Author,
			Cover:    d.Book.Cover,
			DailyFee: d.Book.DailyFee,
		},
		User: UserSummary{
			ID:        d.User.ID,
			FirstName: d.User.FirstName,
			LastName:  d.User.LastName,
			Email:     d.User.Email,
		},
	}
}
