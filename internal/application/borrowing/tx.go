package borrowing

import (
	"context"
)

// Transactor 事务边界抽象
// 设计说明:
// 1. 借出/归还都要求"借阅记录写入+库存变动"作为一个原子单元提交,
//    fn返回error时整体回滚
// 2. 生产实现是mysql.TxManager(GORM事务,事务DB通过context传递),
//    单元测试用直通实现替代,不需要数据库
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
