package borrowing

import (
	"context"
)

// Repository 借阅仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Create/Update必须能参与事务(事务DB通过context传递),
//    借阅写入和库存变动要在同一事务内提交
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, b *Borrowing) error

	// FindByID 根据ID查找借阅记录
	FindByID(ctx context.Context, id uint) (*Borrowing, error)

	// LockByID 悲观锁查询借阅记录(用于归还)
	// SELECT FOR UPDATE锁定行,防止并发的重复归还都通过状态检查
	LockByID(ctx context.Context, id uint) (*Borrowing, error)

	// Update 更新借阅记录(归还时写入actual_return_date)
	Update(ctx context.Context, b *Borrowing) error

	// FindDetailByID 查询借阅详情(内嵌图书/读者摘要)
	FindDetailByID(ctx context.Context, id uint) (*Detail, error)

	// ListDetails 分页查询借阅列表(内嵌图书/读者摘要)
	// 过滤条件见ListParams;排序固定按借出日期降序
	ListDetails(ctx context.Context, params ListParams) ([]*Detail, int64, error)

	// CountActive 当前未归还的借阅总数(用于业务指标)
	CountActive(ctx context.Context) (int64, error)
}

// ListParams 借阅列表查询参数
// UserID为0表示不按用户过滤;IsActive为nil表示不按状态过滤
type ListParams struct {
	UserID   uint  // 按读者过滤(0=全部)
	IsActive *bool // true=仅未归还,false=仅已归还,nil=全部
	Page     int   // 页码(从1开始)
	PageSize int   // 每页数量
}
