package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leon37/ExpenseBot/internal/model"
	"github.com/leon37/ExpenseBot/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotAnExpense    = errors.New("message is not an expense")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrForbidden       = errors.New("expense belongs to another user")
	ErrInvalidUpdate   = errors.New("invalid expense update")
)

// ExpenseAnalyzer 从自由文本里提取消费记录，第二个返回值 false 表示不是消费
type ExpenseAnalyzer interface {
	Analyze(ctx context.Context, message string) (model.NormalizedExpense, bool)
	Categories() []string
}

// ExpenseUpdate 手动修正账单，nil 字段保持不变
type ExpenseUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
}

// ExpenseService 定义业务逻辑
type ExpenseService struct {
	analyzer ExpenseAnalyzer // 依赖接口，而不是具体 struct
	repo     repository.ExpenseRepo
	users    *UserService
}

func NewExpenseService(analyzer ExpenseAnalyzer, repo repository.ExpenseRepo, users *UserService) *ExpenseService {
	return &ExpenseService{
		analyzer: analyzer,
		repo:     repo,
		users:    users,
	}
}

// AddFromMessage 处理一次完整的记账请求：找用户 -> 分析 -> 落库
func (s *ExpenseService) AddFromMessage(ctx context.Context, telegramID, message string) (*model.ExpenseEntity, error) {
	user, err := s.users.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	expense, ok := s.analyzer.Analyze(ctx, message)
	if !ok {
		return nil, ErrNotAnExpense
	}

	entity := expense.ToEntity(user.ID)
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"telegram_id", telegramID,
		"expense_id", entity.ID,
		"category", entity.Category,
		"amount", entity.Amount.String())
	return entity, nil
}

// ListForUser 分页获取列表
func (s *ExpenseService) ListForUser(ctx context.Context, telegramID string, filter repository.ExpenseFilter) ([]model.ExpenseEntity, int64, error) {
	user, err := s.users.Get(ctx, telegramID)
	if err != nil {
		return nil, 0, err
	}
	filter.UserID = user.ID
	return s.repo.List(ctx, filter)
}

// DeleteExpense 删除账单 (带归属权校验)
func (s *ExpenseService) DeleteExpense(ctx context.Context, telegramID string, expenseID uint) error {
	existing, err := s.owned(ctx, telegramID, expenseID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return err
	}
	slog.InfoContext(ctx, "Expense deleted", "telegram_id", telegramID, "expense_id", expenseID)
	return nil
}

// UpdateExpense 手动修正，不会重新触发分析；字段规则与分析管道一致，但分类不做兜底
func (s *ExpenseService) UpdateExpense(ctx context.Context, telegramID string, expenseID uint, upd ExpenseUpdate) (*model.ExpenseEntity, error) {
	existing, err := s.owned(ctx, telegramID, expenseID)
	if err != nil {
		return nil, err
	}

	if upd.Description != nil {
		description := strings.TrimSpace(*upd.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: empty description", ErrInvalidUpdate)
		}
		existing.Description = description
	}
	if upd.Amount != nil {
		if !upd.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidUpdate)
		}
		amount, err := model.NormalizeAmount(*upd.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be at least 0.01", ErrInvalidUpdate)
		}
		existing.Amount = amount
	}
	if upd.Category != nil {
		category := strings.TrimSpace(*upd.Category)
		if !model.NewCategorySet(s.analyzer.Categories()).Contains(category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidUpdate, category)
		}
		existing.Category = category
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return existing, nil
}

// owned 先查出来确认存在，再检查这条账单是不是这个人的
func (s *ExpenseService) owned(ctx context.Context, telegramID string, expenseID uint) (*model.ExpenseEntity, error) {
	user, err := s.users.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	if existing.UserID != user.ID {
		slog.WarnContext(ctx, "Expense ownership mismatch",
			"telegram_id", telegramID,
			"expense_id", expenseID,
			"owner_id", existing.UserID)
		return nil, ErrForbidden
	}
	return existing, nil
}
