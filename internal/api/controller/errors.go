package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/leon37/ExpenseBot/internal/api/middleware"
	"github.com/leon37/ExpenseBot/internal/api/response"
	"github.com/leon37/ExpenseBot/internal/service"
)

const (
	msgUserNotFound    = "User not found"
	msgUserExists      = "User already exists"
	msgInvalidMessage  = "Invalid message"
	msgExpenseNotFound = "Expense not found"
	msgForbidden       = "Expense belongs to another user"
	msgInternal        = "Internal server error"
)

// writeError 把 service 层的错误翻译成 HTTP 状态码，未知错误一律 500 且不暴露细节
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrUserExists):
		response.Error(c, http.StatusConflict, msgUserExists)
	case errors.Is(err, service.ErrNotAnExpense):
		response.Error(c, http.StatusBadRequest, msgInvalidMessage)
	case errors.Is(err, service.ErrExpenseNotFound):
		response.Error(c, http.StatusNotFound, msgExpenseNotFound)
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, http.StatusForbidden, msgForbidden)
	case errors.Is(err, service.ErrInvalidUpdate):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "Request failed",
			"path", c.Request.URL.Path,
			"request_id", middleware.GetRequestID(c),
			"error", err)
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, msgInternal)
	}
}

// bindError 参数校验失败统一 422
func bindError(c *gin.Context, err error) {
	response.Error(c, http.StatusUnprocessableEntity, "参数校验失败: "+err.Error())
}

func expenseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusUnprocessableEntity, "参数校验失败: invalid expense id")
		return 0, false
	}
	return uint(id), true
}
