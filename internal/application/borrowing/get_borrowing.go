package borrowing

import (
	"context"

	"github.com/xiebiao/library/internal/domain/borrowing"
)

// GetBorrowingUseCase 借阅详情查询用例
// 可见性与归还同一条授权原则:本人或馆员
// 记录不存在返回ErrBorrowingNotFound;存在但无权查看返回ErrForbidden
type GetBorrowingUseCase struct {
	borrowingRepo borrowing.Repository
}

// NewGetBorrowingUseCase 创建借阅详情查询用例
func NewGetBorrowingUseCase(borrowingRepo borrowing.Repository) *GetBorrowingUseCase {
	return &GetBorrowingUseCase{
		borrowingRepo: borrowingRepo,
	}
}

// Execute 执行借阅详情查询
// 响应与列表项同构(内嵌图书/读者摘要)
func (uc *GetBorrowingUseCase) Execute(ctx context.Context, actor borrowing.Actor, id uint) (*BorrowingListItem, error) {
	d, err := uc.borrowingRepo.FindDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !borrowing.CanView(actor, &d.Borrowing) {
		return nil, borrowing.ErrForbidden
	}

	item := toListItem(d)
	return &item, nil
}
