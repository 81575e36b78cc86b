package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leon37/ExpenseBot/internal/model"
	"github.com/leon37/ExpenseBot/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register 注册 telegram 用户
func (s *UserService) Register(ctx context.Context, telegramID string) (*model.User, error) {
	// 1. 先查一下，DB 的唯一索引兜底并发的情况
	if _, err := s.repo.GetByTelegramID(ctx, telegramID); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 落库
	user := &model.User{TelegramID: telegramID}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	slog.InfoContext(ctx, "User registered", "telegram_id", telegramID, "user_id", user.ID)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// Get 没找到返回 ErrUserNotFound
func (s *UserService) Get(ctx context.Context, telegramID string) (*model.User, error) {
	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
