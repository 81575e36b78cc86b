package repository

import (
	"context"

	"github.com/leon37/ExpenseBot/internal/model"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ExpenseFilter 列表查询条件，Category 为空表示不过滤
type ExpenseFilter struct {
	UserID   uint
	Category string
	Page     int
	PageSize int
}

// normalize 页码从 1 开始，page_size 限制在 [1, MaxPageSize]
func (f ExpenseFilter) normalize() ExpenseFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// ExpenseRepo 定义接口 (为了以后方便 Mock)
type ExpenseRepo interface {
	Create(ctx context.Context, expense *model.ExpenseEntity) error
	List(ctx context.Context, filter ExpenseFilter) ([]model.ExpenseEntity, int64, error)
	GetByID(ctx context.Context, id uint) (*model.ExpenseEntity, error)
	Update(ctx context.Context, expense *model.ExpenseEntity) error
	Delete(ctx context.Context, id uint) error
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepo {
	return &expenseRepo{db: db}
}

// Create 插入一条记录
func (r *expenseRepo) Create(ctx context.Context, expense *model.ExpenseEntity) error {
	// WithContext 确保请求超时能传递到数据库层
	return r.db.WithContext(ctx).Create(expense).Error
}

// List 按创建时间倒序分页，同时返回总数
func (r *expenseRepo) List(ctx context.Context, filter ExpenseFilter) ([]model.ExpenseEntity, int64, error) {
	filter = filter.normalize()

	query := r.db.WithContext(ctx).Model(&model.ExpenseEntity{}).Where("user_id = ?", filter.UserID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	expenses := make([]model.ExpenseEntity, 0, filter.PageSize)
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// GetByID 没找到返回 gorm.ErrRecordNotFound
func (r *expenseRepo) GetByID(ctx context.Context, id uint) (*model.ExpenseEntity, error) {
	var expense model.ExpenseEntity
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update 只更新可编辑的三个字段
func (r *expenseRepo) Update(ctx context.Context, expense *model.ExpenseEntity) error {
	return r.db.WithContext(ctx).
		Model(expense).
		Select("description", "amount", "category").
		Updates(expense).Error
}

// Delete 软删除
func (r *expenseRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ExpenseEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
