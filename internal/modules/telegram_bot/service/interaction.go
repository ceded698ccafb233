package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"unlock_bot/internal/models"
)

const (
	platform = "telegram"

	msgOpenPrivateChat = "Open a private chat with the bot and press /start to receive locked content."
)

// botAPI: часть *tgbot.BotAPI, которой пользуется адаптер.
type botAPI interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
	Request(c tgbot.Chattable) (*tgbot.APIResponse, error)
}

// interaction adapts one update to unlock.Interaction. Private responses go
// to the user's own chat; there is no per-user visibility inside a group.
type interaction struct {
	api        botAPI
	updateID   int
	chatID     int64
	userID     int64
	viewer     models.Viewer
	callbackID string

	mu       sync.Mutex
	answered bool
	posted   *tgbot.Message
}

func newInteraction(api botAPI, update tgbot.Update) (*interaction, bool) {
	in := &interaction{api: api, updateID: update.UpdateID}

	var from *tgbot.User
	switch {
	case update.Message != nil:
		if update.Message.Chat == nil {
			return nil, false
		}
		from = update.Message.From
		in.chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil || cb.Message.Chat == nil {
			return nil, false
		}
		from = cb.From
		in.chatID = cb.Message.Chat.ID
		in.callbackID = cb.ID
	default:
		return nil, false
	}
	if from == nil {
		return nil, false
	}

	in.userID = from.ID
	in.viewer = viewerFrom(from)
	return in, true
}

// viewerFrom: в Telegram нет ролей гильдии, пользователь никогда не Member.
func viewerFrom(u *tgbot.User) models.Viewer {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return models.Viewer{
		UserID:      strconv.FormatInt(u.ID, 10),
		DisplayName: name,
	}
}

func (in *interaction) ID() models.SecretID    { return models.SecretID(in.updateID) }
func (in *interaction) Platform() string       { return platform }
func (in *interaction) Invoker() models.Viewer { return in.viewer }

func (in *interaction) Respond(_ context.Context, resp models.Response) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("telegram.Respond: %w", err)
		}
	}()

	in.mu.Lock()
	defer in.mu.Unlock()

	chatID := in.chatID
	if resp.Ephemeral {
		chatID = in.userID
	}

	sent, err := in.send(chatID, resp)
	if err != nil {
		in.answer(msgOpenPrivateChat)
		return err
	}
	in.answer("")

	if !resp.Ephemeral && in.posted == nil && sent != nil {
		in.posted = sent
	}
	return nil
}

// send отправляет сообщения в порядке документов. Клавиатура висит на первом
// текстовом сообщении, его же и возвращаем.
func (in *interaction) send(chatID int64, resp models.Response) (*tgbot.Message, error) {
	kb, hasKeyboard := keyboard(resp.Controls)

	var first *tgbot.Message
	for _, o := range layout(resp) {
		if o.PhotoURL != "" {
			if _, err := in.api.Send(tgbot.NewPhoto(chatID, tgbot.FileURL(o.PhotoURL))); err != nil {
				return nil, err
			}
			continue
		}

		msg := tgbot.NewMessage(chatID, o.Text)
		msg.ParseMode = tgbot.ModeHTML
		msg.DisableWebPagePreview = true
		if first == nil && hasKeyboard {
			msg.ReplyMarkup = kb
		}
		sent, err := in.api.Send(msg)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = &sent
		}
	}
	return first, nil
}

// answer гасит "часики" на кнопке. Ответить на callback можно один раз.
func (in *interaction) answer(text string) {
	if in.callbackID == "" || in.answered {
		return
	}
	in.answered = true

	cb := tgbot.NewCallback(in.callbackID, text)
	if text != "" {
		cb = tgbot.NewCallbackWithAlert(in.callbackID, text)
	}
	_, _ = in.api.Request(cb)
}

// PostedMessageID hashes chat and message id: message ids are only unique per chat.
func (in *interaction) PostedMessageID(context.Context) (models.SecretID, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.posted == nil {
		return 0, fmt.Errorf("telegram.PostedMessageID: nothing posted")
	}
	return postedID(in.posted.Chat.ID, in.posted.MessageID), nil
}

func postedID(chatID int64, messageID int) models.SecretID {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d:%d", chatID, messageID)
	return models.SecretID(h.Sum64())
}

func (in *interaction) AttachControls(_ context.Context, controls []models.Control) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.posted == nil {
		return fmt.Errorf("telegram.AttachControls: nothing posted")
	}
	kb, ok := keyboard(controls)
	if !ok {
		return nil
	}
	edit := tgbot.NewEditMessageReplyMarkup(in.posted.Chat.ID, in.posted.MessageID, kb)
	if _, err := in.api.Request(edit); err != nil {
		return fmt.Errorf("telegram.AttachControls: %w", err)
	}
	return nil
}

func keyboard(controls []models.Control) (tgbot.InlineKeyboardMarkup, bool) {
	if len(controls) == 0 {
		return tgbot.InlineKeyboardMarkup{}, false
	}
	row := make([]tgbot.InlineKeyboardButton, 0, len(controls))
	for _, c := range controls {
		label := c.Label
		if c.Glyph != "" {
			label = c.Glyph + " " + label
		}
		row = append(row, tgbot.NewInlineKeyboardButtonData(label, c.ActionID))
	}
	return tgbot.NewInlineKeyboardMarkup(row), true
}
