package borrowing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestNewBorrowing_ValidRange 正常创建:应还日期晚于借出日期
func TestNewBorrowing_ValidRange(t *testing.T) {
	b, err := NewBorrowing(1, 2, date(2025, 10, 1), date(2025, 10, 10))
	if err != nil {
		t.Fatalf("期望创建成功，实际失败: %v", err)
	}

	if !b.IsActive() {
		t.Error("新建借阅应为未归还状态")
	}
	if b.UserID != 1 || b.BookID != 2 {
		t.Errorf("借阅归属错误: user=%d book=%d", b.UserID, b.BookID)
	}
	if b.ActualReturnDate != nil {
		t.Error("新建借阅的实际归还日期应为nil")
	}
}

// TestNewBorrowing_InvalidRange 应还日期早于借出日期必须被拒绝
func TestNewBorrowing_InvalidRange(t *testing.T) {
	// 应还2025-10-15早于借出2025-10-20
	_, err := NewBorrowing(1, 2, date(2025, 10, 20), date(2025, 10, 15))
	if err != ErrInvalidDateRange {
		t.Errorf("期望ErrInvalidDateRange，实际%v", err)
	}
}

// TestNewBorrowing_SameDay 同一天也不合法(严格晚于)
func TestNewBorrowing_SameDay(t *testing.T) {
	_, err := NewBorrowing(1, 2, date(2025, 10, 1), date(2025, 10, 1))
	if err != ErrInvalidDateRange {
		t.Errorf("期望ErrInvalidDateRange，实际%v", err)
	}
}

// TestNewBorrowing_TimeTruncated 同一天的不同时刻按同一天算
func TestNewBorrowing_TimeTruncated(t *testing.T) {
	borrow := time.Date(2025, 10, 1, 23, 0, 0, 0, time.UTC)
	expected := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	if _, err := NewBorrowing(1, 2, borrow, expected); err != ErrInvalidDateRange {
		t.Errorf("同一天借出/应还应被拒绝，实际%v", err)
	}
}

// TestReturn 归还:open→closed
func TestReturn(t *testing.T) {
	b, _ := NewBorrowing(1, 2, date(2025, 10, 1), date(2025, 10, 10))

	if err := b.Return(date(2025, 10, 8)); err != nil {
		t.Fatalf("期望归还成功，实际失败: %v", err)
	}

	if b.IsActive() {
		t.Error("归还后不应再是未归还状态")
	}
	if b.ActualReturnDate == nil || !b.ActualReturnDate.Equal(date(2025, 10, 8)) {
		t.Errorf("实际归还日期错误: %v", b.ActualReturnDate)
	}
}

// TestReturn_Twice 重复归还是显式错误,状态不变
func TestReturn_Twice(t *testing.T) {
	b, _ := NewBorrowing(1, 2, date(2025, 10, 1), date(2025, 10, 10))
	_ = b.Return(date(2025, 10, 8))
	first := *b.ActualReturnDate

	if err := b.Return(date(2025, 10, 9)); err != ErrAlreadyReturned {
		t.Errorf("期望ErrAlreadyReturned，实际%v", err)
	}
	if !b.ActualReturnDate.Equal(first) {
		t.Error("重复归还不应修改实际归还日期")
	}
}

// TestReturn_Late 晚于应还日期的归还允许(不计滞纳金)
func TestReturn_Late(t *testing.T) {
	b, _ := NewBorrowing(1, 2, date(2025, 10, 1), date(2025, 10, 10))
	if err := b.Return(date(2025, 11, 1)); err != nil {
		t.Errorf("逾期归还应被允许，实际失败: %v", err)
	}
}

// TestReturn_BeforeBorrowDate 归还日期早于借出日期时取借出日期
// 维持不变式: actual_return_date >= borrow_date
func TestReturn_BeforeBorrowDate(t *testing.T) {
	b, _ := NewBorrowing(1, 2, date(2025, 10, 5), date(2025, 10, 10))
	if err := b.Return(date(2025, 10, 1)); err != nil {
		t.Fatalf("期望归还成功，实际失败: %v", err)
	}
	if !b.ActualReturnDate.Equal(date(2025, 10, 5)) {
		t.Errorf("归还日期应被修正为借出日期，实际%v", b.ActualReturnDate)
	}
}

// TestIsOwnedBy 归属判断
func TestIsOwnedBy(t *testing.T) {
	b, _ := NewBorrowing(7, 2, date(2025, 10, 1), date(2025, 10, 10))
	if !b.IsOwnedBy(7) {
		t.Error("期望属于用户7")
	}
	if b.IsOwnedBy(8) {
		t.Error("不应属于用户8")
	}
}
