package service

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"unlock_bot/internal/models"
)

// Discord ждёт ответа на interaction 3 секунды, follow-up: 15 минут.
const handleTimeout = 30 * time.Second

func (d *Discord) onInteraction(s *discordgo.Session, ev *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("interaction handler panicked", zap.Any("panic", r), zap.String("interaction", ev.ID))
		}
	}()

	d.state.TouchInteraction(time.Now())

	ctx, cancel := context.WithTimeout(d.ctx, handleTimeout)
	defer cancel()

	d.handle(ctx, newInteraction(s, ev.Interaction), ev.Interaction)
}

func (d *Discord) handle(ctx context.Context, in *interaction, i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		o := optionMap(data.Options)

		switch data.Name {
		case cmdLock:
			d.commands.Lock(ctx, in, o.str("secret"))
		case cmdLockEmbed:
			d.commands.LockEmbed(ctx, in, lockEmbedParams(o))
		case cmdTradeEphemeral:
			d.commands.TradeEphemeral(ctx, in, tradeEphemeralParams(o))
		case cmdTrade:
			d.commands.Trade(ctx, in, tradeParams(o))
		default:
			d.log.Warn("unknown command", zap.String("name", data.Name))
		}

	case discordgo.InteractionMessageComponent:
		id, ok := models.ParseRevealAction(i.MessageComponentData().CustomID)
		if !ok {
			// чужие кнопки не трогаем
			return
		}
		d.controller.Press(ctx, in, id)
	}
}
