package borrowing

import (
	"time"
)

// Borrowing 借阅记录实体(聚合根)
// DDD设计说明:
// 1. 一条记录连接一个读者和一本馆藏图书,覆盖一个日期区间
// 2. 生命周期只有两个状态:未归还(open)和已归还(closed),
//    唯一的状态迁移是open→closed,没有重新借出
// 3. 状态不单独存字段,由ActualReturnDate是否为nil派生(IsActive),
//    避免冗余字段失去一致性
// 4. 不持有User/Book对象,只保存ID(避免跨聚合引用)
//
// 不变式:
// - ExpectedReturnDate严格晚于BorrowDate
// - ActualReturnDate为nil,或不早于BorrowDate
type Borrowing struct {
	ID                 uint
	BorrowDate         time.Time  // 借出日期(只取日期部分)
	ExpectedReturnDate time.Time  // 应还日期
	ActualReturnDate   *time.Time // 实际归还日期,nil表示未归还
	BookID             uint       // 图书ID
	UserID             uint       // 读者用户ID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewBorrowing 创建借阅记录(工厂方法)
// 业务规则:应还日期必须严格晚于借出日期,否则返回ErrInvalidDateRange
// 初始状态总是未归还(ActualReturnDate=nil)
func NewBorrowing(userID, bookID uint, borrowDate, expectedReturnDate time.Time) (*Borrowing, error) {
	borrowDate = DateOnly(borrowDate)
	expectedReturnDate = DateOnly(expectedReturnDate)

	if !expectedReturnDate.After(borrowDate) {
		return nil, ErrInvalidDateRange
	}

	now := time.Now()
	return &Borrowing{
		BorrowDate:         borrowDate,
		ExpectedReturnDate: expectedReturnDate,
		BookID:             bookID,
		UserID:             userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// IsActive 是否仍未归还
// 派生属性:open = ActualReturnDate为nil
func (b *Borrowing) IsActive() bool {
	return b.ActualReturnDate == nil
}

// Return 归还(状态迁移 open→closed)
// 业务规则:
// 1. 已归还的记录再次归还是显式错误(ErrAlreadyReturned),不是幂等空操作
// 2. 归还日期不早于借出日期(早于则取借出日期,维持不变式)
// 3. 晚于应还日期的归还同样允许,不做滞纳金计算
func (b *Borrowing) Return(returnDate time.Time) error {
	if !b.IsActive() {
		return ErrAlreadyReturned
	}

	returnDate = DateOnly(returnDate)
	if returnDate.Before(b.BorrowDate) {
		returnDate = b.BorrowDate
	}

	b.ActualReturnDate = &returnDate
	b.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查借阅记录是否属于指定用户
func (b *Borrowing) IsOwnedBy(userID uint) bool {
	return b.UserID == userID
}

// DateOnly 截断到日期(去掉时分秒)
// 借阅的所有日期语义都是"天",统一在入口处截断,
// 避免同一天的不同时刻被误判为不同日期
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// =========================================
// 列表读模型
// =========================================

// BookSummary 借阅列表内嵌的图书摘要
type BookSummary struct {
	ID       uint
	Title    string
	Author   string
	Cover    string
	DailyFee int64
}

// UserSummary 借阅列表内嵌的读者摘要
type UserSummary struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
}

// Detail 借阅详情读模型(记录本身+图书/读者摘要)
// 列表和详情接口需要内嵌关联信息,由仓储联表填充
type Detail struct {
	Borrowing
	Book BookSummary
	User UserSummary
}
