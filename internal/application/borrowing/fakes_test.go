package borrowing

import (
	"context"
	"errors"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// 内存版仓储与事务管理器,用于不依赖数据库的用例测试
// 行为对齐mysql实现:
// - LockByID/FindByID返回副本(模拟行数据反序列化)
// - UpdateStock是条件更新,扣减时库存不足返回ErrOutOfStock
// - Transaction在fn返回error时恢复快照(模拟ROLLBACK)

type memUser struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
}

type memState struct {
	books      map[uint]*book.Book
	borrowings map[uint]*borrowing.Borrowing
	users      map[uint]*memUser
	nextID     uint
}

func newMemState() *memState {
	return &memState{
		books:      make(map[uint]*book.Book),
		borrowings: make(map[uint]*borrowing.Borrowing),
		users:      make(map[uint]*memUser),
		nextID:     1,
	}
}

func (s *memState) snapshot() *memState {
	cp := newMemState()
	cp.nextID = s.nextID
	for id, b := range s.books {
		c := *b
		cp.books[id] = &c
	}
	for id, b := range s.borrowings {
		c := *b
		if b.ActualReturnDate != nil {
			d := *b.ActualReturnDate
			c.ActualReturnDate = &d
		}
		cp.borrowings[id] = &c
	}
	for id, u := range s.users {
		c := *u
		cp.users[id] = &c
	}
	return cp
}

func (s *memState) restore(from *memState) {
	s.books = from.books
	s.borrowings = from.borrowings
	s.users = from.users
	s.nextID = from.nextID
}

// =========================================
// fakeBookRepo
// =========================================

type fakeBookRepo struct {
	s *memState

	// failUpdateStock 模拟库存更新时的数据库故障(验证整体回滚)
	failUpdateStock bool
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	b.ID = r.s.nextID
	r.s.nextID++
	c := *b
	r.s.books[b.ID] = &c
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	c := *b
	return &c, nil
}

func (r *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	if _, ok := r.s.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	c := *b
	r.s.books[b.ID] = &c
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uint) error {
	delete(r.s.books, id)
	return nil
}

func (r *fakeBookRepo) List(_ context.Context, _ book.ListParams) ([]*book.Book, int64, error) {
	out := make([]*book.Book, 0, len(r.s.books))
	for _, b := range r.s.books {
		c := *b
		out = append(out, &c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) UpdateStock(_ context.Context, id uint, delta int) error {
	if r.failUpdateStock {
		return errors.New("mysql is down")
	}
	b, ok := r.s.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return book.ErrOutOfStock
	}
	b.Stock += delta
	return nil
}

// =========================================
// fakeBorrowingRepo
// =========================================

type fakeBorrowingRepo struct {
	s *memState
}

func copyBorrowing(b *borrowing.Borrowing) *borrowing.Borrowing {
	c := *b
	if b.ActualReturnDate != nil {
		d := *b.ActualReturnDate
		c.ActualReturnDate = &d
	}
	return &c
}

func (r *fakeBorrowingRepo) Create(_ context.Context, b *borrowing.Borrowing) error {
	b.ID = r.s.nextID
	r.s.nextID++
	r.s.borrowings[b.ID] = copyBorrowing(b)
	return nil
}

func (r *fakeBorrowingRepo) FindByID(_ context.Context, id uint) (*borrowing.Borrowing, error) {
	b, ok := r.s.borrowings[id]
	if !ok {
		return nil, borrowing.ErrBorrowingNotFound
	}
	return copyBorrowing(b), nil
}

func (r *fakeBorrowingRepo) LockByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBorrowingRepo) Update(_ context.Context, b *borrowing.Borrowing) error {
	if _, ok := r.s.borrowings[b.ID]; !ok {
		return borrowing.ErrBorrowingNotFound
	}
	r.s.borrowings[b.ID] = copyBorrowing(b)
	return nil
}

func (r *fakeBorrowingRepo) toDetail(b *borrowing.Borrowing) *borrowing.Detail {
	d := &borrowing.Detail{Borrowing: *copyBorrowing(b)}
	if bk, ok := r.s.books[b.BookID]; ok {
		d.Book = borrowing.BookSummary{
			ID:       bk.ID,
			Title:    bk.Title,
			Author:   bk.Author,
			Cover:    string(bk.Cover),
			DailyFee: bk.DailyFee,
		}
	}
	if u, ok := r.s.users[b.UserID]; ok {
		d.User = borrowing.UserSummary{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		}
	}
	return d
}

func (r *fakeBorrowingRepo) FindDetailByID(_ context.Context, id uint) (*borrowing.Detail, error) {
	b, ok := r.s.borrowings[id]
	if !ok {
		return nil, borrowing.ErrBorrowingNotFound
	}
	return r.toDetail(b), nil
}

func (r *fakeBorrowingRepo) ListDetails(_ context.Context, params borrowing.ListParams) ([]*borrowing.Detail, int64, error) {
	// 按ID升序遍历,保证结果稳定
	out := make([]*borrowing.Detail, 0)
	for id := uint(1); id < r.s.nextID; id++ {
		b, ok := r.s.borrowings[id]
		if !ok {
			continue
		}
		if params.UserID != 0 && b.UserID != params.UserID {
			continue
		}
		if params.IsActive != nil && b.IsActive() != *params.IsActive {
			continue
		}
		out = append(out, r.toDetail(b))
	}
	// 测试数据量小,不做分页截断
	return out, int64(len(out)), nil
}

func (r *fakeBorrowingRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, b := range r.s.borrowings {
		if b.IsActive() {
			n++
		}
	}
	return n, nil
}

// =========================================
// fakeTxManager
// =========================================

type fakeTxManager struct {
	s *memState
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.s.snapshot()
	if err := fn(ctx); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

// =========================================
// 测试夹具
// =========================================

type fixture struct {
	state         *memState
	bookRepo      *fakeBookRepo
	borrowingRepo *fakeBorrowingRepo
	tx            *fakeTxManager
}

func newFixture() *fixture {
	s := newMemState()
	return &fixture{
		state:         s,
		bookRepo:      &fakeBookRepo{s: s},
		borrowingRepo: &fakeBorrowingRepo{s: s},
		tx:            &fakeTxManager{s: s},
	}
}

func (f *fixture) addBook(title string, stock int) uint {
	b := book.NewBook(title, "Author", book.CoverHard, stock, 500)
	_ = f.bookRepo.Create(context.Background(), b)
	return b.ID
}

func (f *fixture) addUser(firstName, email string) uint {
	id := f.state.nextID
	f.state.nextID++
	f.state.users[id] = &memUser{ID: id, FirstName: firstName, LastName: "Reader", Email: email}
	return id
}
