package borrowing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/borrowing"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestBorrowBook_Success 正常借书:创建记录+库存-1
func TestBorrowBook_Success(t *testing.T) {
	f := newFixture()
	userID := f.addUser("Alice", "alice@example.com")
	bookID := f.addBook("Test Book", 3)

	uc := NewBorrowBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	resp, err := uc.Execute(context.Background(), BorrowBookRequest{
		UserID:             userID,
		BookID:             bookID,
		BorrowDate:         testDate(2025, 10, 1),
		ExpectedReturnDate: testDate(2025, 10, 10),
	})
	require.NoError(t, err)
	require.True(t, resp.IsActive)
	require.Equal(t, userID, resp.UserID)
	require.Equal(t, "2025-10-01", resp.BorrowDate)

	// 库存被扣减
	b, err := f.bookRepo.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	require.Equal(t, 2, b.Stock)

	// 借阅记录已落库且属于借阅人本人
	stored, err := f.borrowingRepo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Equal(t, userID, stored.UserID)
	require.True(t, stored.IsActive())
}

// TestBorrowBook_InvalidDateRange 应还日期早于借出日期
// 日期校验先于库存校验,且不产生任何写入
func TestBorrowBook_InvalidDateRange(t *testing.T) {
	f := newFixture()
	userID := f.addUser("Alice", "alice@example.com")
	bookID := f.addBook("Test Book", 3)

	uc := NewBorrowBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), BorrowBookRequest{
		UserID:             userID,
		BookID:             bookID,
		BorrowDate:         testDate(2025, 10, 20),
		ExpectedReturnDate: testDate(2025, 10, 15),
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	b, _ := f.bookRepo.FindByID(context.Background(), bookID)
	require.Equal(t, 3, b.Stock, "校验失败不应扣库存")
	require.Empty(t, f.state.borrowings, "校验失败不应创建借阅记录")
}

// TestBorrowBook_OutOfStock 库存为0时借书失败,状态不变
func TestBorrowBook_OutOfStock(t *testing.T) {
	f := newFixture()
	userID := f.addUser("Alice", "alice@example.com")
	bookID := f.addBook("Test Book", 0)

	uc := NewBorrowBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), BorrowBookRequest{
		UserID:             userID,
		BookID:             bookID,
		BorrowDate:         testDate(2025, 10, 1),
		ExpectedReturnDate: testDate(2025, 10, 10),
	})
	require.ErrorIs(t, err, apperrors.ErrOutOfStock)

	b, _ := f.bookRepo.FindByID(context.Background(), bookID)
	require.Equal(t, 0, b.Stock)
	require.Empty(t, f.state.borrowings)
}

// TestBorrowBook_BookNotFound 图书不存在
func TestBorrowBook_BookNotFound(t *testing.T) {
	f := newFixture()
	userID := f.addUser("Alice", "alice@example.com")

	uc := NewBorrowBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), BorrowBookRequest{
		UserID:             userID,
		BookID:             999,
		BorrowDate:         testDate(2025, 10, 1),
		ExpectedReturnDate: testDate(2025, 10, 10),
	})
	require.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

// TestBorrowBook_Anonymous 未登录访问者不能借书
func TestBorrowBook_Anonymous(t *testing.T) {
	f := newFixture()
	bookID := f.addBook("Test Book", 1)

	uc := NewBorrowBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), BorrowBookRequest{
		UserID:             0,
		BookID:             bookID,
		BorrowDate:         testDate(2025, 10, 1),
		ExpectedReturnDate: testDate(2025, 10, 10),
	})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

// TestBorrowBook_StockWriteFailureRollsBack 库存写入失败时借阅记录一并回滚
// 借阅创建和库存扣减是一个原子单元,不允许只提交一半
func TestBorrowBook_StockWriteFailureRollsBack(t *testing.T) {
	f := newFixture()
	userID := f.addUser("Alice", "alice@example.com")
	bookID := f.addBook("Test Book", 3)
	f.bookRepo.failUpdateStock = true

	uc := NewBorrowBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), BorrowBookRequest{
		UserID:             userID,
		BookID:             bookID,
		BorrowDate:         testDate(2025, 10, 1),
		ExpectedReturnDate: testDate(2025, 10, 10),
	})
	require.Error(t, err)

	require.Empty(t, f.state.borrowings, "事务回滚后不应留下借阅记录")
	b, _ := f.bookRepo.FindByID(context.Background(), bookID)
	require.Equal(t, 3, b.Stock)
}

// TestBorrowReturn_LastCopyScenario 最后一册的完整场景:
// 库存1,A借到(库存0),B借失败(库存仍0),A归还(库存1),A重复归还报错
func TestBorrowReturn_LastCopyScenario(t *testing.T) {
	f := newFixture()
	userA := f.addUser("Alice", "alice@example.com")
	userB := f.addUser("Bob", "bob@example.com")
	bookID := f.addBook("Last Copy", 1)

	borrowUC := NewBorrowBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	returnUC := NewReturnBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	ctx := context.Background()

	// A借到最后一册
	resp, err := borrowUC.Execute(ctx, BorrowBookRequest{
		UserID:             userA,
		BookID:             bookID,
		BorrowDate:         testDate(2025, 10, 1),
		ExpectedReturnDate: testDate(2025, 10, 10),
	})
	require.NoError(t, err)
	b, _ := f.bookRepo.FindByID(ctx, bookID)
	require.Equal(t, 0, b.Stock)

	// B再借失败,库存保持0
	_, err = borrowUC.Execute(ctx, BorrowBookRequest{
		UserID:             userB,
		BookID:             bookID,
		BorrowDate:         testDate(2025, 10, 2),
		ExpectedReturnDate: testDate(2025, 10, 12),
	})
	require.ErrorIs(t, err, apperrors.ErrOutOfStock)
	b, _ = f.bookRepo.FindByID(ctx, bookID)
	require.Equal(t, 0, b.Stock)

	// A归还,库存回到1,记录关闭
	_, err = returnUC.Execute(ctx, borrowing.Actor{ID: userA}, resp.ID)
	require.NoError(t, err)
	b, _ = f.bookRepo.FindByID(ctx, bookID)
	require.Equal(t, 1, b.Stock)
	stored, _ := f.borrowingRepo.FindByID(ctx, resp.ID)
	require.False(t, stored.IsActive())

	// A重复归还:显式错误,库存不再变化
	_, err = returnUC.Execute(ctx, borrowing.Actor{ID: userA}, resp.ID)
	require.ErrorIs(t, err, apperrors.ErrAlreadyReturned)
	b, _ = f.bookRepo.FindByID(ctx, bookID)
	require.Equal(t, 1, b.Stock)
}
