package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseEntity 是映射数据库表的结构体
type ExpenseEntity struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID      uint            `gorm:"not null;index" json:"user_id"`
	User        *User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    string          `gorm:"type:varchar(64);not null;index" json:"category"`
}

// TableName 强制指定表名
func (ExpenseEntity) TableName() string {
	return "expenses"
}

// NormalizedExpense 是分析管道的最终产物
// 三个字段一定都合法：描述非空且去掉首尾空白，金额严格大于 0，分类属于配置的分类集合
type NormalizedExpense struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// ToEntity 挂上用户 ID，得到待落库的实体
func (e NormalizedExpense) ToEntity(userID uint) *ExpenseEntity {
	return &ExpenseEntity{
		UserID:      userID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
	}
}
