package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(用于借出时锁定库存行)
	// 使用SELECT FOR UPDATE锁定行,防止并发借出超借
	// 必须在事务内调用(事务DB通过context传递)
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 更新可借库存(原子操作,库存台账的唯一写入口)
	// delta为正数表示归还入库,负数表示借出出库
	// 内部以 stock + delta >= 0 作为条件更新,
	// 扣减时库存不足返回ErrOutOfStock
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索书名、作者)
	SortBy   string // 排序字段(title_asc, created_at_desc)
}
