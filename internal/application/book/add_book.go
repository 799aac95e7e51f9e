package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// AddBookUseCase 新书入库用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO(Data Transfer Object),与HTTP层解耦
// 3. 馆员身份校验在HTTP中间件完成,此处不重复判定
type AddBookUseCase struct {
	bookService book.Service
}

// NewAddBookUseCase 创建入库用例
func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
	}
}

// AddBookRequest 入库请求DTO
type AddBookRequest struct {
	Title    string // 书名
	Author   string // 作者
	Cover    string // 装帧类型(HARD/SOFT)
	Stock    int    // 初始库存
	DailyFee int64  // 日借阅费(分)
}

// AddBookResponse 入库响应DTO
type AddBookResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Cover     string `json:"cover"`
	Stock     int    `json:"stock"`
	DailyFee  int64  `json:"daily_fee"` // 日借阅费(分)
	CreatedAt string `json:"created_at"`
}

// Execute 执行入库用例
// 业务规则校验(装帧类型、库存、费用)由领域服务负责,应用层只做流程编排
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResponse, error) {
	b, err := uc.bookService.AddBook(
		ctx,
		req.Title,
		req.Author,
		book.Cover(req.Cover),
		req.Stock,
		req.DailyFee,
	)
	if err != nil {
		return nil, err
	}

	// 构建响应DTO
	return &AddBookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Cover:     string(b.Cover),
		Stock:     b.Stock,
		DailyFee:  b.DailyFee,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
