package user

import (
	"time"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. IsStaff标识馆员角色：馆员可以维护图书目录、查看并归还任意借阅
// 4. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	FirstName string
	LastName  string
	IsStaff   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
// 注册入口创建的都是普通读者,馆员账号由运维在数据库直接标记
func NewUser(email, hashedPassword, firstName, lastName string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName 姓名拼接(用于展示)
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
