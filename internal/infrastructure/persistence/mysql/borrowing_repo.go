package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/borrowing"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// borrowingRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 借阅记录的写入必须与库存变动在同一事务内提交,
//    因此Create/LockByID/Update都通过getDB(ctx)参与事务
// 2. 列表查询使用Preload预加载图书/读者,避免N+1问题
type borrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository 创建借阅仓储
func NewBorrowingRepository(db *gorm.DB) borrowing.Repository {
	return &borrowingRepository{db: db}
}

// Create 创建借阅记录
func (r *borrowingRepository) Create(ctx context.Context, b *borrowing.Borrowing) error {
	model := toBorrowingModel(b)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *borrowingRepository) FindByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	var model BorrowingModel
	db := r.getDB(ctx)
	err := db.First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBorrowingNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toBorrowingEntity(&model), nil
}

// LockByID 悲观锁查询借阅记录(用于归还流程)
// SELECT FOR UPDATE锁定行,并发的重复归还只有一个能通过状态检查
func (r *borrowingRepository) LockByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	var model BorrowingModel
	db := r.getDB(ctx)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBorrowingNotFound
		}
		return nil, apperrors.Wrap(err, "锁定借阅记录失败")
	}

	return toBorrowingEntity(&model), nil
}

// Update 更新借阅记录(归还时写入actual_return_date)
func (r *borrowingRepository) Update(ctx context.Context, b *borrowing.Borrowing) error {
	db := r.getDB(ctx)

	result := db.Model(&BorrowingModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"actual_return_date": b.ActualReturnDate,
		"updated_at":         b.UpdatedAt,
	})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新借阅记录失败")
	}

	if result.RowsAffected == 0 {
		return apperrors.ErrBorrowingNotFound
	}

	return nil
}

// FindDetailByID 查询借阅详情(内嵌图书/读者摘要)
func (r *borrowingRepository) FindDetailByID(ctx context.Context, id uint) (*borrowing.Detail, error) {
	var model BorrowingModel
	db := r.getDB(ctx)
	err := db.Preload("Book").Preload("User").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBorrowingNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅详情失败")
	}

	return toBorrowingDetail(&model), nil
}

// ListDetails 分页查询借阅列表(内嵌图书/读者摘要)
// 过滤条件:
// - user_id: 按读者过滤(0=全部)
// - is_active: true → actual_return_date IS NULL; false → IS NOT NULL; nil → 全部
func (r *borrowingRepository) ListDetails(ctx context.Context, params borrowing.ListParams) ([]*borrowing.Detail, int64, error) {
	var models []BorrowingModel
	var total int64

	db := r.getDB(ctx)
	query := db.Model(&BorrowingModel{})

	if params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.IsActive != nil {
		if *params.IsActive {
			query = query.Where("actual_return_date IS NULL")
		} else {
			query = query.Where("actual_return_date IS NOT NULL")
		}
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅总数失败")
	}

	// 分页查询(预加载图书/读者)
	offset := (params.Page - 1) * params.PageSize
	err := query.Preload("Book").Preload("User").
		Order("borrow_date DESC, id DESC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅列表失败")
	}

	// 转换为领域读模型
	details := make([]*borrowing.Detail, len(models))
	for i := range models {
		details[i] = toBorrowingDetail(&models[i])
	}

	return details, total, nil
}

// CountActive 当前未归还的借阅总数
func (r *borrowingRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&BorrowingModel{}).
		Where("actual_return_date IS NULL").
		Count(&total).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "统计未归还借阅失败")
	}

	return total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBorrowingModel 领域实体 → GORM模型
func toBorrowingModel(b *borrowing.Borrowing) *BorrowingModel {
	return &BorrowingModel{
		ID:                 b.ID,
		BorrowDate:         b.BorrowDate,
		ExpectedReturnDate: b.ExpectedReturnDate,
		ActualReturnDate:   b.ActualReturnDate,
		BookID:             b.BookID,
		UserID:             b.UserID,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// toBorrowingEntity GORM模型 → 领域实体
func toBorrowingEntity(model *BorrowingModel) *borrowing.Borrowing {
	return &borrowing.Borrowing{
		ID:                 model.ID,
		BorrowDate:         model.BorrowDate,
		ExpectedReturnDate: model.ExpectedReturnDate,
		ActualReturnDate:   model.ActualReturnDate,
		BookID:             model.BookID,
		UserID:             model.UserID,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

// toBorrowingDetail GORM模型 → 领域读模型(内嵌摘要)
func toBorrowingDetail(model *BorrowingModel) *borrowing.Detail {
	return &borrowing.Detail{
		Borrowing: *toBorrowingEntity(model),
		Book: borrowing.BookSummary{
			ID:       model.Book.ID,
			Title:    model.Book.Title,
			Author:   model.Book.Author,
			Cover:    model.Book.Cover,
			DailyFee: model.Book.DailyFee,
		},
		User: borrowing.UserSummary{
			ID:        model.User.ID,
			FirstName: model.User.FirstName,
			LastName:  model.User.LastName,
			Email:     model.User.Email,
		},
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *borrowingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
