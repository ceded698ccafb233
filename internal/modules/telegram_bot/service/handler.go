package service

import (
	"context"
	"strings"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"unlock_bot/internal/models"
)

const (
	msgStart = "Hi! I hide content behind an unlock button.\n\n" +
		"/lock <text> - lock any text\n" +
		"/trade SYMBOL ENTRY SL BUY|SELL BALANCE LEVERAGE RISK - lock a trade with position sizing"
	msgLockUsage  = "Usage: /lock <text>"
	msgTradeUsage = "Usage: /trade SYMBOL ENTRY SL BUY|SELL BALANCE LEVERAGE RISK"
)

const handleTimeout = 30 * time.Second

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("update handler panicked", zap.Any("panic", r), zap.Int("update", update.UpdateID))
		}
	}()

	in, ok := newInteraction(t.bot, update)
	if !ok {
		// inline mode, каналы и т.п. пока игнорируем
		return
	}
	t.state.TouchInteraction(time.Now())

	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	t.handle(ctx, in, update)
}

func (t *Telegram) handle(ctx context.Context, in *interaction, update tgbot.Update) {
	// 1) Inline-кнопки
	if cb := update.CallbackQuery; cb != nil {
		id, ok := models.ParseRevealAction(cb.Data)
		if !ok {
			in.answer("")
			return
		}
		t.controller.Press(ctx, in, id)
		return
	}

	// 2) Команды
	msg := update.Message
	if !msg.IsCommand() {
		return
	}
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		t.reply(ctx, in, models.Response{Content: msgStart})
	case "lock":
		if args == "" {
			t.replyPrivately(ctx, in, msgLockUsage)
			return
		}
		t.commands.Lock(ctx, in, args)
	case "trade":
		p, ok := parseTradeArgs(in.viewer.UserID, args)
		if !ok {
			t.replyPrivately(ctx, in, msgTradeUsage)
			return
		}
		t.commands.Trade(ctx, in, p)
	}
}

// replyPrivately: ошибки ввода видит только автор команды.
func (t *Telegram) replyPrivately(ctx context.Context, in *interaction, text string) {
	t.reply(ctx, in, models.Response{Ephemeral: true, Content: text})
}

func (t *Telegram) reply(ctx context.Context, in *interaction, resp models.Response) {
	if err := in.Respond(ctx, resp); err != nil {
		t.log.Warn("reply not delivered", zap.Error(err))
	}
}
