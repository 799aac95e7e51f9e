package borrowing

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// BorrowBookUseCase 借书用例
// 这是整个系统最核心的用例:
// 借阅记录的创建和库存扣减必须在同一事务中提交,
// 并且"检查库存→扣减"不能被并发请求插入(防止超借)
type BorrowBookUseCase struct {
	borrowingRepo borrowing.Repository
	bookRepo      book.Repository
	txManager     Transactor
}

// NewBorrowBookUseCase 创建借书用例
func NewBorrowBookUseCase(
	borrowingRepo borrowing.Repository,
	bookRepo book.Repository,
	txManager Transactor,
) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		borrowingRepo: borrowingRepo,
		bookRepo:      bookRepo,
		txManager:     txManager,
	}
}

// BorrowBookRequest 借书请求DTO
// UserID取自JWT,借阅人永远是当前登录用户,
// 请求体里不接受user字段(不能替他人借书)
type BorrowBookRequest struct {
	UserID             uint      // 读者用户ID(从JWT中提取)
	BookID             uint      // 图书ID
	BorrowDate         time.Time // 借出日期
	ExpectedReturnDate time.Time // 应还日期
}

// BorrowBookResponse 借书响应DTO
type BorrowBookResponse struct {
	ID                 uint   `json:"id"`
	BookID             uint   `json:"book_id"`
	UserID             uint   `json:"user_id"`
	BorrowDate         string `json:"borrow_date"`
	ExpectedReturnDate string `json:"expected_return_date"`
	IsActive           bool   `json:"is_active"`
}

// Execute 执行借书用例
//
// 校验顺序(与错误语义一致):
// 1. 日期区间:应还日期必须严格晚于借出日期
// 2. 库存:目标图书必须还有可借副本
//
// 防超借流程(同一事务内):
// 1. SELECT FOR UPDATE 锁定图书行
// 2. 检查库存>0
// 3. 创建借阅记录
// 4. 条件更新扣减库存(stock+delta>=0,双重保险)
// 5. COMMIT释放锁
//
// 两个并发请求抢同一本书的最后一册时,后到的事务在步骤1阻塞,
// 等先到的事务提交后看到库存0,在步骤2失败,库存不会为负
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (*BorrowBookResponse, error) {
	// 1. 授权:必须是已登录用户(借阅人=本人)
	if !borrowing.CanOpen(borrowing.Actor{ID: req.UserID}) {
		return nil, apperrors.ErrUnauthorized
	}

	// 2. 日期校验先于库存校验(工厂方法内检查)
	newBorrowing, err := borrowing.NewBorrowing(req.UserID, req.BookID, req.BorrowDate, req.ExpectedReturnDate)
	if err != nil {
		return nil, err
	}

	// 3. 事务:锁库存→检查→创建借阅→扣减
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定图书行(图书不存在时这里返回ErrBookNotFound)
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		// 必须在锁定后检查,否则并发扣减可能导致超借
		if !b.IsAvailable() {
			return book.ErrOutOfStock
		}

		// 创建借阅记录
		if err := uc.borrowingRepo.Create(txCtx, newBorrowing); err != nil {
			return err
		}

		// 条件扣减库存;失败(并发耗尽)则整个事务回滚,借阅记录不会留下
		return uc.bookRepo.UpdateStock(txCtx, req.BookID, -1)
	})
	if err != nil {
		return nil, err
	}

	return &BorrowBookResponse{
		ID:                 newBorrowing.ID,
		BookID:             newBorrowing.BookID,
		UserID:             newBorrowing.UserID,
		BorrowDate:         newBorrowing.BorrowDate.Format("2006-01-02"),
		ExpectedReturnDate: newBorrowing.ExpectedReturnDate.Format("2006-01-02"),
		IsActive:           newBorrowing.IsActive(),
	}, nil
}
