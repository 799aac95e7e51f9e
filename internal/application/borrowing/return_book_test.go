package borrowing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/borrowing"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借出一条记录作为前置状态,返回借阅ID
func borrowOnce(t *testing.T, f *fixture, userID, bookID uint) uint {
	t.Helper()
	uc := NewBorrowBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	resp, err := uc.Execute(context.Background(), BorrowBookRequest{
		UserID:             userID,
		BookID:             bookID,
		BorrowDate:         testDate(2025, 10, 1),
		ExpectedReturnDate: testDate(2025, 10, 10),
	})
	require.NoError(t, err)
	return resp.ID
}

// TestReturnBook_Success 本人归还:记录关闭+库存+1
func TestReturnBook_Success(t *testing.T) {
	f := newFixture()
	userID := f.addUser("Alice", "alice@example.com")
	bookID := f.addBook("Test Book", 2)
	borrowingID := borrowOnce(t, f, userID, bookID)

	uc := NewReturnBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	resp, err := uc.Execute(context.Background(), borrowing.Actor{ID: userID}, borrowingID)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ActualReturnDate)

	stored, _ := f.borrowingRepo.FindByID(context.Background(), borrowingID)
	require.False(t, stored.IsActive())

	b, _ := f.bookRepo.FindByID(context.Background(), bookID)
	require.Equal(t, 2, b.Stock, "借出+归还后库存应回到原值")
}

// TestReturnBook_Forbidden 普通读者不能归还他人的借阅
func TestReturnBook_Forbidden(t *testing.T) {
	f := newFixture()
	userA := f.addUser("Alice", "alice@example.com")
	userB := f.addUser("Bob", "bob@example.com")
	bookID := f.addBook("Test Book", 1)
	borrowingID := borrowOnce(t, f, userA, bookID)

	uc := NewReturnBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), borrowing.Actor{ID: userB}, borrowingID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	// 状态不变:记录仍未归还,库存仍为0
	stored, _ := f.borrowingRepo.FindByID(context.Background(), borrowingID)
	require.True(t, stored.IsActive())
	b, _ := f.bookRepo.FindByID(context.Background(), bookID)
	require.Equal(t, 0, b.Stock)
}

// TestReturnBook_StaffClosesOthers 馆员可以归还任意借阅
func TestReturnBook_StaffClosesOthers(t *testing.T) {
	f := newFixture()
	userA := f.addUser("Alice", "alice@example.com")
	staff := f.addUser("Carol", "carol@example.com")
	bookID := f.addBook("Test Book", 1)
	borrowingID := borrowOnce(t, f, userA, bookID)

	uc := NewReturnBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), borrowing.Actor{ID: staff, IsStaff: true}, borrowingID)
	require.NoError(t, err)

	stored, _ := f.borrowingRepo.FindByID(context.Background(), borrowingID)
	require.False(t, stored.IsActive())
}

// TestReturnBook_AlreadyReturned 重复归还是显式错误
func TestReturnBook_AlreadyReturned(t *testing.T) {
	f := newFixture()
	userID := f.addUser("Alice", "alice@example.com")
	bookID := f.addBook("Test Book", 1)
	borrowingID := borrowOnce(t, f, userID, bookID)

	uc := NewReturnBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), borrowing.Actor{ID: userID}, borrowingID)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), borrowing.Actor{ID: userID}, borrowingID)
	require.ErrorIs(t, err, apperrors.ErrAlreadyReturned)

	// 库存没有被第二次归还加成2
	b, _ := f.bookRepo.FindByID(context.Background(), bookID)
	require.Equal(t, 1, b.Stock)
}

// TestReturnBook_NotFound 未知借阅ID
func TestReturnBook_NotFound(t *testing.T) {
	f := newFixture()
	userID := f.addUser("Alice", "alice@example.com")

	uc := NewReturnBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := uc.Execute(context.Background(), borrowing.Actor{ID: userID}, 999)
	require.ErrorIs(t, err, apperrors.ErrBorrowingNotFound)
}
