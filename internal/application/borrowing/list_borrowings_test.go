package borrowing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/borrowing"
)

func boolPtr(b bool) *bool { return &b }

// 准备:A借两本(归还其中一本),B借一本
func listFixture(t *testing.T) (*fixture, uint, uint) {
	t.Helper()
	f := newFixture()
	userA := f.addUser("Alice", "alice@example.com")
	userB := f.addUser("Bob", "bob@example.com")
	book1 := f.addBook("Book One", 2)
	book2 := f.addBook("Book Two", 2)

	idA1 := borrowOnce(t, f, userA, book1)
	_ = borrowOnce(t, f, userA, book2)
	_ = borrowOnce(t, f, userB, book1)

	returnUC := NewReturnBookUseCase(f.borrowingRepo, f.bookRepo, f.tx)
	_, err := returnUC.Execute(context.Background(), borrowing.Actor{ID: userA}, idA1)
	require.NoError(t, err)

	return f, userA, userB
}

// TestListBorrowings_NonStaffSeesOnlyOwn 普通读者只能看到自己的借阅
// 即使显式传了别人的user_id过滤,也会被忽略
func TestListBorrowings_NonStaffSeesOnlyOwn(t *testing.T) {
	f, userA, userB := listFixture(t)
	uc := NewListBorrowingsUseCase(f.borrowingRepo)

	resp, err := uc.Execute(context.Background(), borrowing.Actor{ID: userA}, ListBorrowingsRequest{
		UserID: userB, // 尝试偷看B的借阅
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	for _, item := range resp.List {
		require.Equal(t, userA, item.User.ID, "列表中不应出现他人的借阅")
	}
}

// TestListBorrowings_StaffUnfiltered 馆员默认看到全部
func TestListBorrowings_StaffUnfiltered(t *testing.T) {
	f, _, _ := listFixture(t)
	staff := f.addUser("Carol", "carol@example.com")
	uc := NewListBorrowingsUseCase(f.borrowingRepo)

	resp, err := uc.Execute(context.Background(), borrowing.Actor{ID: staff, IsStaff: true}, ListBorrowingsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.Total)
}

// TestListBorrowings_StaffFilterByUser 馆员按user_id过滤
func TestListBorrowings_StaffFilterByUser(t *testing.T) {
	f, _, userB := listFixture(t)
	staff := f.addUser("Carol", "carol@example.com")
	uc := NewListBorrowingsUseCase(f.borrowingRepo)

	resp, err := uc.Execute(context.Background(), borrowing.Actor{ID: staff, IsStaff: true}, ListBorrowingsRequest{
		UserID: userB,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	require.Equal(t, userB, resp.List[0].User.ID)
}

// TestListBorrowings_FilterByActive is_active过滤
func TestListBorrowings_FilterByActive(t *testing.T) {
	f, _, _ := listFixture(t)
	staff := f.addUser("Carol", "carol@example.com")
	uc := NewListBorrowingsUseCase(f.borrowingRepo)
	actor := borrowing.Actor{ID: staff, IsStaff: true}

	// 仅未归还
	resp, err := uc.Execute(context.Background(), actor, ListBorrowingsRequest{IsActive: boolPtr(true)})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	for _, item := range resp.List {
		require.True(t, item.IsActive)
		require.Nil(t, item.ActualReturnDate)
	}

	// 仅已归还
	resp, err = uc.Execute(context.Background(), actor, ListBorrowingsRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	require.False(t, resp.List[0].IsActive)
	require.NotNil(t, resp.List[0].ActualReturnDate)
}

// TestListBorrowings_EmbedsSummaries 列表项内嵌图书/读者摘要
func TestListBorrowings_EmbedsSummaries(t *testing.T) {
	f, userA, _ := listFixture(t)
	uc := NewListBorrowingsUseCase(f.borrowingRepo)

	resp, err := uc.Execute(context.Background(), borrowing.Actor{ID: userA}, ListBorrowingsRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.List)

	item := resp.List[0]
	require.NotEmpty(t, item.Book.Title)
	require.Equal(t, "HARD", item.Book.Cover)
	require.Equal(t, "alice@example.com", item.User.Email)
	require.NotEmpty(t, item.BorrowDate)
}
