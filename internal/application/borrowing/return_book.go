package borrowing

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// ReturnMessage 归还成功的提示语(API契约的一部分)
const ReturnMessage = "Book returned successfully."

// ReturnBookUseCase 还书用例
// 归还要做三件事,全部在同一事务内:
// 1. 校验访问者有权归还这条借阅(本人或馆员)
// 2. open→closed状态迁移(重复归还是显式错误)
// 3. 库存+1
type ReturnBookUseCase struct {
	borrowingRepo borrowing.Repository
	bookRepo      book.Repository
	txManager     Transactor
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(
	borrowingRepo borrowing.Repository,
	bookRepo book.Repository,
	txManager Transactor,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		borrowingRepo: borrowingRepo,
		bookRepo:      bookRepo,
		txManager:     txManager,
	}
}

// ReturnBookResponse 还书响应DTO
type ReturnBookResponse struct {
	ID               uint   `json:"id"`
	BookID           uint   `json:"book_id"`
	ActualReturnDate string `json:"actual_return_date"`
}

// Execute 执行还书用例
// 归还日期取当前日期;晚于应还日期的归还同样允许(不计滞纳金)
//
// 借阅行使用SELECT FOR UPDATE锁定:两个并发的归还请求,
// 后到的会在锁上等待,然后看到已归还状态,收到ErrAlreadyReturned
func (uc *ReturnBookUseCase) Execute(ctx context.Context, actor borrowing.Actor, borrowingID uint) (*ReturnBookResponse, error) {
	var result *borrowing.Borrowing

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定借阅记录(不存在时返回ErrBorrowingNotFound)
		b, err := uc.borrowingRepo.LockByID(txCtx, borrowingID)
		if err != nil {
			return err
		}

		// 2. 授权:本人或馆员
		if !borrowing.CanClose(actor, b) {
			return borrowing.ErrForbidden
		}

		// 3. 状态迁移(已归还时返回ErrAlreadyReturned)
		if err := b.Return(time.Now()); err != nil {
			return err
		}

		// 4. 写入归还日期
		if err := uc.borrowingRepo.Update(txCtx, b); err != nil {
			return err
		}

		// 5. 库存+1(归还没有前置条件,不会因库存校验失败)
		if err := uc.bookRepo.UpdateStock(txCtx, b.BookID, 1); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ReturnBookResponse{
		ID:               result.ID,
		BookID:           result.BookID,
		ActualReturnDate: result.ActualReturnDate.Format("2006-01-02"),
	}, nil
}
