package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/leon37/ExpenseBot/internal/api/response"
	"github.com/leon37/ExpenseBot/internal/service"
)

type UserController struct {
	service *service.UserService
}

func NewUserController(s *service.UserService) *UserController {
	return &UserController{service: s}
}

type CreateUserRequest struct {
	TelegramID string `json:"telegram_id" binding:"required,max=64"`
}

// List 用户列表
// @Summary 用户列表
// @Tags User
// @Produce json
// @Security ApiKeyAuth
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.User}
// @Router /v1/users [get]
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, users)
}

// Create 注册用户
// @Summary 注册用户
// @Tags User
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Security BearerAuth
// @Param request body CreateUserRequest true "Telegram 用户"
// @Success 201 {object} response.Response{data=model.User}
// @Failure 409 {object} response.Response "用户已存在"
// @Failure 422 {object} response.Response "参数错误"
// @Router /v1/users [post]
func (ctrl *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := ctrl.service.Register(c.Request.Context(), req.TelegramID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, user)
}

// Get 查询单个用户
// @Summary 查询单个用户
// @Tags User
// @Produce json
// @Security ApiKeyAuth
// @Security BearerAuth
// @Param telegram_id path string true "Telegram ID"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 404 {object} response.Response "用户不存在"
// @Router /v1/users/{telegram_id} [get]
func (ctrl *UserController) Get(c *gin.Context) {
	user, err := ctrl.service.Get(c.Request.Context(), c.Param("telegram_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, user)
}
