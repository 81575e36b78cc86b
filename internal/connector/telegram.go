package connector

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	replyProcessing   = "Processing your expense..."
	replyAddUsage     = "Please write your expense, e.g. /add Lunch 12.50"
	replyAddFailed    = "Error adding your expense ❌. Please try again"
	replyNoExpenses   = "You have no expenses recorded yet."
	replyListFailed   = "Error fetching your expenses ❌. Please try again later."
	replyWelcome      = "Welcome! You're registered ✅. Send /add <text> to record an expense."
	replyAlreadyKnown = "You're already registered. Send /add <text> to record an expense."
	replyStartFailed  = "Error registering you ❌. Please try again later."
	replyNoUsername   = "Please set a Telegram username first, it is used to identify your expenses."
	replyUnknown      = "Unknown command. Send /help to see what I can do."

	replyHelp = `Available commands:
/start - register with the expense bot
/add <text> - record an expense, e.g. /add Dinner with friends 45
/list - show your latest expenses
/help - show this message`
)

// Sender 发送消息，*tgbotapi.BotAPI 实现了它
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ExpenseBackend bot service 提供的能力
type ExpenseBackend interface {
	ProcessMessage(ctx context.Context, telegramID, message string) (*Expense, error)
	RegisterUser(ctx context.Context, telegramID string) error
	ListExpenses(ctx context.Context, telegramID string) ([]Expense, error)
}

// Bot 把 Telegram 命令转成对 bot service 的调用
type Bot struct {
	sender  Sender
	backend ExpenseBackend
	logger  *slog.Logger
}

func NewBot(sender Sender, backend ExpenseBackend, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		sender:  sender,
		backend: backend,
		logger:  logger.With("component", "telegram"),
	}
}

// Run 消费 updates 直到 ctx 取消或 channel 关闭
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	if !msg.IsCommand() {
		b.reply(msg.Chat.ID, replyUnknown)
		return
	}

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "add":
		b.handleAdd(ctx, msg)
	case "list":
		b.handleList(ctx, msg)
	case "help":
		b.reply(msg.Chat.ID, replyHelp)
	default:
		b.reply(msg.Chat.ID, replyUnknown)
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	telegramID, ok := b.senderID(msg)
	if !ok {
		return
	}

	err := b.backend.RegisterUser(ctx, telegramID)
	switch {
	case errors.Is(err, ErrAlreadyRegistered):
		b.reply(msg.Chat.ID, replyAlreadyKnown)
	case err != nil:
		b.logger.ErrorContext(ctx, "Failed to register user", "telegram_id", telegramID, "error", err)
		b.reply(msg.Chat.ID, replyStartFailed)
	default:
		b.logger.InfoContext(ctx, "User registered", "telegram_id", telegramID)
		b.reply(msg.Chat.ID, replyWelcome)
	}
}

func (b *Bot) handleAdd(ctx context.Context, msg *tgbotapi.Message) {
	telegramID, ok := b.senderID(msg)
	if !ok {
		return
	}
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		b.reply(msg.Chat.ID, replyAddUsage)
		return
	}

	b.logger.InfoContext(ctx, "Adding expense", "telegram_id", telegramID, "text", text)
	b.reply(msg.Chat.ID, replyProcessing)

	expense, err := b.backend.ProcessMessage(ctx, telegramID, text)
	if err != nil {
		b.logger.WarnContext(ctx, "Failed to add expense", "telegram_id", telegramID, "error", err)
		b.reply(msg.Chat.ID, replyAddFailed)
		return
	}
	b.reply(msg.Chat.ID, expense.Category+" expense added ✅")
}

func (b *Bot) handleList(ctx context.Context, msg *tgbotapi.Message) {
	telegramID, ok := b.senderID(msg)
	if !ok {
		return
	}

	expenses, err := b.backend.ListExpenses(ctx, telegramID)
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to fetch expenses", "telegram_id", telegramID, "error", err)
		b.reply(msg.Chat.ID, replyListFailed)
		return
	}
	if len(expenses) == 0 {
		b.reply(msg.Chat.ID, replyNoExpenses)
		return
	}
	b.reply(msg.Chat.ID, FormatExpenses(expenses))
}

// FormatExpenses 每行一条："<category> - <description> - <amount>"
func FormatExpenses(expenses []Expense) string {
	lines := make([]string, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, e.Category+" - "+e.Description+" - "+e.Amount.String())
	}
	return strings.Join(lines, "\n")
}

// senderID 用户名作为 telegram_id；没有用户名的账号无法使用
func (b *Bot) senderID(msg *tgbotapi.Message) (string, bool) {
	if msg.From != nil && msg.From.UserName != "" {
		return msg.From.UserName, true
	}
	if msg.Chat.UserName != "" {
		return msg.Chat.UserName, true
	}
	b.reply(msg.Chat.ID, replyNoUsername)
	return "", false
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("Failed to send telegram message", "chat_id", strconv.FormatInt(chatID, 10), "error", err)
	}
}
