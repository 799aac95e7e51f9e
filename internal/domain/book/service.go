package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装图书目录的业务规则校验(装帧类型、库存、费用)
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 目录维护是馆员操作,馆员身份校验在接口层的中间件完成,
//    领域服务只关心数据本身的合法性
type Service interface {
	// AddBook 新书入库
	// 业务规则:
	// - 装帧类型必须是HARD或SOFT
	// - 初始库存必须>=0
	// - 日借阅费必须>=0
	AddBook(ctx context.Context, title, author string, cover Cover, stock int, dailyFee int64) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息(标题/作者/装帧/费用)
	UpdateBook(ctx context.Context, id uint, title, author string, cover Cover, dailyFee int64) (*Book, error)

	// DeleteBook 下架图书
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	// 公开接口,不需要权限校验
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新书入库
func (s *service) AddBook(ctx context.Context, title, author string, cover Cover, stock int, dailyFee int64) (*Book, error) {
	// 1. 装帧类型校验
	if !cover.IsValid() {
		return nil, ErrInvalidCover
	}

	// 2. 库存校验
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	// 3. 费用校验
	if dailyFee < 0 {
		return nil, ErrInvalidFee
	}

	// 4. 创建图书实体并持久化
	book := NewBook(title, author, cover, stock, dailyFee)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息
// 注意:这里不允许改Stock,库存只跟随借出/归还变动
func (s *service) UpdateBook(ctx context.Context, id uint, title, author string, cover Cover, dailyFee int64) (*Book, error) {
	// 1. 查询图书
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新基本信息
	if err := book.UpdateInfo(title, author, cover); err != nil {
		return nil, err
	}

	// 3. 更新费用(负数表示不修改)
	if dailyFee >= 0 {
		if err := book.UpdateDailyFee(dailyFee); err != nil {
			return nil, err
		}
	}

	// 4. 持久化
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteBook 下架图书(软删除)
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}
