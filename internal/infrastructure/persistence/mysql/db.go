package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段，
// 生产环境应使用版本化的迁移脚本
func autoMigrate(db *gorm.DB) error {
	// 这里使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&BorrowingModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	FirstName string         `gorm:"size:50;not null;comment:名"`
	LastName  string         `gorm:"size:50;not null;comment:姓"`
	IsStaff   bool           `gorm:"default:false;comment:是否馆员"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 日借阅费使用int64存储"分"为单位(避免浮点数精度问题)
// 2. Cover存储装帧类型(HARD/SOFT)
// 3. 书名+作者加搜索索引优化列表查询
type BookModel struct {
	ID        uint           `gorm:"primaryKey"`
	Title     string         `gorm:"index:idx_search;size:200;not null;comment:书名"` // 搜索索引
	Author    string         `gorm:"index:idx_search;size:100;not null;comment:作者"` // 搜索索引
	Cover     string         `gorm:"size:10;not null;comment:装帧类型(HARD/SOFT)"`
	Stock     int            `gorm:"default:0;comment:在馆册数"`
	DailyFee  int64          `gorm:"not null;comment:日借阅费(分)"`
	CreatedAt time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BorrowingModel GORM借阅记录模型
// 设计说明:
// 1. ActualReturnDate为NULL表示借阅未归还(is_active由此推导,不单独存列)
// 2. Book/User关联用于列表查询时Preload内嵌摘要
// 3. UserID+ActualReturnDate复合索引覆盖"我的未归还借阅"查询
type BorrowingModel struct {
	ID                 uint       `gorm:"primaryKey"`
	BorrowDate         time.Time  `gorm:"index;not null;comment:借出日期"`
	ExpectedReturnDate time.Time  `gorm:"not null;comment:应还日期"`
	ActualReturnDate   *time.Time `gorm:"index:idx_user_active;comment:实际归还日期(NULL=未归还)"`
	BookID             uint       `gorm:"index;not null;comment:图书ID"`
	UserID             uint       `gorm:"index:idx_user_active;not null;comment:读者ID"`
	Book               BookModel  `gorm:"foreignKey:BookID"`
	User               UserModel  `gorm:"foreignKey:UserID"`
	CreatedAt          time.Time  `gorm:"comment:创建时间"`
	UpdatedAt          time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BorrowingModel) TableName() string {
	return "borrowings"
}
