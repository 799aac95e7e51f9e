package user

import (
	"context"
)

// Repository 读者账号仓储接口
// 接口定义在domain层,MySQL实现在infrastructure层(依赖倒置);
// 领域服务只依赖这个接口,测试时用内存fake替换
// 邮箱唯一性由数据库UNIQUE索引兜底,实现负责把driver层的
// 重复键错误翻译成ErrEmailDuplicate
type Repository interface {
	// Create 创建读者账号
	// 邮箱已被注册时返回errors.ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找读者
	// 不存在时返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找读者(登录入口)
	// 不存在时返回errors.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新读者信息
	Update(ctx context.Context, user *User) error

	// Delete 注销读者账号(软删除,保留其借阅历史)
	Delete(ctx context.Context, id uint) error
}
