package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leon37/ExpenseBot/internal/api/response"
	"github.com/leon37/ExpenseBot/internal/model"
	"github.com/leon37/ExpenseBot/internal/repository"
	"github.com/leon37/ExpenseBot/internal/service"
	"github.com/shopspring/decimal"
)

type ExpenseController struct {
	service *service.ExpenseService // 依赖 Service
}

func NewExpenseController(s *service.ExpenseService) *ExpenseController {
	return &ExpenseController{service: s}
}

// AddExpenseRequest 自由文本，由分析管道决定是不是消费
type AddExpenseRequest struct {
	Message string `json:"message" binding:"required,min=1,max=1000"`
}

// Add 自然语言记账
// @Summary 自然语言记账
// @Description 分析消息，提取描述、金额和分类后落库。不是消费时返回 400
// @Tags Expense
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Security BearerAuth
// @Param telegram_id path string true "Telegram ID"
// @Param request body AddExpenseRequest true "记账内容"
// @Success 200 {object} response.Response{data=model.ExpenseEntity}
// @Failure 400 {object} response.Response "Invalid message"
// @Failure 404 {object} response.Response "用户不存在"
// @Failure 422 {object} response.Response "参数错误"
// @Router /v1/expenses/{telegram_id} [post]
func (ctrl *ExpenseController) Add(c *gin.Context) {
	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// Context 传下去，客户端断开时 LLM 调用也会被取消
	expense, err := ctrl.service.AddFromMessage(c.Request.Context(), c.Param("telegram_id"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, expense)
}

// ListRequest 列表请求参数
type ListRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
	Category string `form:"category"`
}

type ListResponse struct {
	List     []model.ExpenseEntity `json:"list"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// List 获取记账列表
// @Summary 获取记账列表
// @Description 按创建时间倒序分页，可按分类筛选
// @Tags Expense
// @Produce json
// @Security ApiKeyAuth
// @Security BearerAuth
// @Param telegram_id path string true "Telegram ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Param category query string false "分类"
// @Success 200 {object} response.Response{data=controller.ListResponse}
// @Failure 404 {object} response.Response "用户不存在"
// @Router /v1/expenses/{telegram_id} [get]
func (ctrl *ExpenseController) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	filter := repository.ExpenseFilter{
		Category: req.Category,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	list, total, err := ctrl.service.ListForUser(c.Request.Context(), c.Param("telegram_id"), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, ListResponse{
		List:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
}

// UpdateExpenseRequest 只传需要修改的字段
type UpdateExpenseRequest struct {
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"12.50"`
	Category    *string          `json:"category" binding:"omitempty,max=64"`
}

// Update 修正账单
// @Summary 修正账单
// @Description 手动修改描述、金额或分类，不会重新触发分析，仅限本人操作
// @Tags Expense
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Security BearerAuth
// @Param telegram_id path string true "Telegram ID"
// @Param id path int true "账单 ID"
// @Param request body UpdateExpenseRequest true "更新参数"
// @Success 200 {object} response.Response{data=model.ExpenseEntity}
// @Failure 400 {object} response.Response "字段不合法"
// @Failure 403 {object} response.Response "无权操作"
// @Failure 404 {object} response.Response "账单或用户不存在"
// @Router /v1/expenses/{telegram_id}/{id} [put]
func (ctrl *ExpenseController) Update(c *gin.Context) {
	id, ok := expenseIDParam(c)
	if !ok {
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Description == nil && req.Amount == nil && req.Category == nil {
		response.Error(c, http.StatusUnprocessableEntity, "参数校验失败: nothing to update")
		return
	}

	expense, err := ctrl.service.UpdateExpense(c.Request.Context(), c.Param("telegram_id"), id, service.ExpenseUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, expense)
}

// Delete 删除账单
// @Summary 删除账单
// @Description 软删除，仅限本人操作
// @Tags Expense
// @Produce json
// @Security ApiKeyAuth
// @Security BearerAuth
// @Param telegram_id path string true "Telegram ID"
// @Param id path int true "账单 ID"
// @Success 200 {object} response.Response "成功"
// @Failure 403 {object} response.Response "无权操作"
// @Failure 404 {object} response.Response "账单或用户不存在"
// @Router /v1/expenses/{telegram_id}/{id} [delete]
func (ctrl *ExpenseController) Delete(c *gin.Context) {
	id, ok := expenseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteExpense(c.Request.Context(), c.Param("telegram_id"), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}
