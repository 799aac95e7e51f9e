package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// BookDetail 图书详情DTO
type BookDetail struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Cover     string `json:"cover"`
	Stock     int    `json:"stock"`
	DailyFee  int64  `json:"daily_fee"` // 日借阅费(分)
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetail, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookDetail(b), nil
}

// UpdateBookUseCase 图书信息修改用例
// 注意:库存不在修改范围内,只跟随借出/归还变动
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建修改用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 修改请求DTO
type UpdateBookRequest struct {
	Title    string // 书名
	Author   string // 作者
	Cover    string // 装帧类型(HARD/SOFT)
	DailyFee int64  // 日借阅费(分),负数表示不修改
}

// Execute 执行修改
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req UpdateBookRequest) (*BookDetail, error) {
	b, err := uc.bookService.UpdateBook(ctx, id, req.Title, req.Author, book.Cover(req.Cover), req.DailyFee)
	if err != nil {
		return nil, err
	}
	return toBookDetail(b), nil
}

// DeleteBookUseCase 图书下架用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建下架用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行下架
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}

func toBookDetail(b *book.Book) *BookDetail {
	return &BookDetail{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Cover:     string(b.Cover),
		Stock:     b.Stock,
		DailyFee:  b.DailyFee,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
