package book

import (
	"time"
)

// Cover 装帧类型枚举
// 与数据库约定一致：HARD（精装）| SOFT（平装）
type Cover string

const (
	CoverHard Cover = "HARD" // 精装
	CoverSoft Cover = "SOFT" // 平装
)

// IsValid 校验装帧类型取值
func (c Cover) IsValid() bool {
	return c == CoverHard || c == CoverSoft
}

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含馆藏图书的核心属性
// 2. DailyFee使用int64存储"分"为单位(避免浮点数精度问题)
// 3. Stock是当前可借副本数,不变式:任何时刻Stock >= 0
// 4. Stock只允许由借阅用例通过库存台账操作修改(借出-1/归还+1),
//    目录管理只在创建时设置初始值
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	Cover     Cover  // 装帧类型(HARD/SOFT)
	Stock     int    // 可借副本数
	DailyFee  int64  // 日借阅费(单位:分,1元=100分)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
// 参数说明:
// - title/author: 基本信息(需调用方保证非空)
// - cover: 装帧类型,必须是HARD或SOFT
// - stock: 初始可借副本数,必须>=0
// - dailyFee: 日借阅费(分),必须>=0
func NewBook(title, author string, cover Cover, stock int, dailyFee int64) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		Cover:     cover,
		Stock:     stock,
		DailyFee:  dailyFee,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAvailable 是否还有可借副本
func (b *Book) IsAvailable() bool {
	return b.Stock > 0
}

// DecrStock 扣减一本可借库存(用于借出)
// 业务规则:扣减后库存不能为负数
func (b *Book) DecrStock() error {
	if b.Stock <= 0 {
		return ErrOutOfStock
	}
	b.Stock--
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 归还一本,库存+1
// 归还没有前置条件,总是成功
func (b *Book) IncrStock() {
	b.Stock++
	b.UpdatedAt = time.Now()
}

// UpdateInfo 更新图书基本信息
func (b *Book) UpdateInfo(title, author string, cover Cover) error {
	if cover != "" && !cover.IsValid() {
		return ErrInvalidCover
	}
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if cover != "" {
		b.Cover = cover
	}
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateDailyFee 更新日借阅费(领域行为)
// 业务规则:费用不能为负数
func (b *Book) UpdateDailyFee(newFee int64) error {
	if newFee < 0 {
		return ErrInvalidFee
	}
	b.DailyFee = newFee
	b.UpdatedAt = time.Now()
	return nil
}
