package service

import (
	"context"
	"sync"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"unlock_bot/internal/modules/config"
	healthservice "unlock_bot/internal/modules/health/service"
	"unlock_bot/internal/unlock"
)

// Telegram: long polling и обработка команд/кнопок.
type Telegram struct {
	bot        *tgbot.BotAPI
	commands   *unlock.Commands
	controller *unlock.Controller
	state      *healthservice.State
	log        *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTelegram returns nil when no token is configured.
func NewTelegram(
	cfg *config.Config,
	commands *unlock.Commands,
	controller *unlock.Controller,
	state *healthservice.State,
	log *zap.Logger,
) (*Telegram, error) {
	if cfg.Telegram.Token == "" {
		return nil, nil
	}
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram bot")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Telegram{
		bot:        b,
		commands:   commands,
		controller: controller,
		state:      state,
		log:        log.Named("telegram"),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Start запускает цикл обновлений в отдельной горутине и сразу возвращается.
func (t *Telegram) Start() {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	t.state.SetConnected(platform, true)
	t.log.Info("connected", zap.String("user", t.bot.Self.UserName))

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			select {
			case <-t.ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				t.handleUpdate(t.ctx, update)
			}
		}
	}()
}

func (t *Telegram) Stop() {
	t.cancel()
	t.bot.StopReceivingUpdates()
	t.wg.Wait()
	t.state.SetConnected(platform, false)
}
