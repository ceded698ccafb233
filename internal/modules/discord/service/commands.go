package service

import (
	"github.com/bwmarrin/discordgo"

	"unlock_bot/internal/unlock"
)

const (
	cmdLock           = "lock"
	cmdLockEmbed      = "lock_embed"
	cmdTradeEphemeral = "trade_ephemeral"
	cmdTrade          = "trade"
)

func strOpt(name, desc string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: desc,
		Required:    required,
	}
}

func numOpt(name, desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionNumber,
		Name:        name,
		Description: desc,
		Required:    true,
	}
}

func userOpt(name, desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        name,
		Description: desc,
		Required:    true,
	}
}

// commandDefinitions: обязательные опции идут первыми, иначе Discord отклонит регистрацию.
var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        cmdLock,
		Description: "Post a message whose content unlocks on button press",
		Options: []*discordgo.ApplicationCommandOption{
			strOpt("secret", "Content to lock", true),
		},
	},
	{
		Name:        cmdLockEmbed,
		Description: "Post a locked trade preview",
		Options: []*discordgo.ApplicationCommandOption{
			strOpt("symbol", "Trading symbol", true),
			strOpt("entry", "Entry price", true),
			strOpt("sl", "Stop loss", true),
			strOpt("note", "Optional note", false),
		},
	},
	{
		Name:        cmdTradeEphemeral,
		Description: "Preview a locked trade privately",
		Options: []*discordgo.ApplicationCommandOption{
			userOpt("user", "Trader to mention"),
			strOpt("symbol", "Trading symbol", true),
			strOpt("entry", "Entry price", true),
			strOpt("sl", "Stop loss", true),
			strOpt("secret_content", "Extra hidden content", false),
			strOpt("emoji", "Emoji or name:id", false),
			strOpt("image_url", "Chart image", false),
			strOpt("status", "Trade status", false),
			strOpt("reply_to_message", "Referenced message id", false),
		},
	},
	{
		Name:        cmdTrade,
		Description: "Post a locked trade with position sizing",
		Options: []*discordgo.ApplicationCommandOption{
			userOpt("user", "Trader to mention"),
			strOpt("symbol", "Trading symbol", true),
			numOpt("entry", "Entry price"),
			numOpt("sl", "Stop loss"),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "order_type",
				Description: "BUY or SELL",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "BUY", Value: "BUY"},
					{Name: "SELL", Value: "SELL"},
				},
			},
			numOpt("trader_balance", "Trader account balance"),
			numOpt("leverage", "Leverage"),
			numOpt("risk_percentage", "Risk per trade, %"),
			strOpt("image_url", "Chart image", false),
			strOpt("status", "Trade status", false),
		},
	},
}

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (o options) str(name string) string {
	if v, ok := o[name]; ok && v.Type == discordgo.ApplicationCommandOptionString {
		return v.StringValue()
	}
	return ""
}

func (o options) num(name string) float64 {
	if v, ok := o[name]; ok && v.Type == discordgo.ApplicationCommandOptionNumber {
		return v.FloatValue()
	}
	return 0
}

func (o options) user(name string) string {
	if v, ok := o[name]; ok && v.Type == discordgo.ApplicationCommandOptionUser {
		return v.UserValue(nil).ID
	}
	return ""
}

func lockEmbedParams(o options) unlock.LockEmbedParams {
	return unlock.LockEmbedParams{
		Symbol:   o.str("symbol"),
		Entry:    o.str("entry"),
		StopLoss: o.str("sl"),
		Note:     o.str("note"),
	}
}

func tradeEphemeralParams(o options) unlock.TradeEphemeralParams {
	return unlock.TradeEphemeralParams{
		UserID:         o.user("user"),
		Symbol:         o.str("symbol"),
		Entry:          o.str("entry"),
		StopLoss:       o.str("sl"),
		SecretContent:  o.str("secret_content"),
		Emoji:          o.str("emoji"),
		ImageURL:       o.str("image_url"),
		Status:         o.str("status"),
		ReplyToMessage: o.str("reply_to_message"),
	}
}

func tradeParams(o options) unlock.TradeParams {
	return unlock.TradeParams{
		UserID:         o.user("user"),
		Symbol:         o.str("symbol"),
		Entry:          o.num("entry"),
		StopLoss:       o.num("sl"),
		OrderType:      o.str("order_type"),
		TraderBalance:  o.num("trader_balance"),
		Leverage:       o.num("leverage"),
		RiskPercentage: o.num("risk_percentage"),
		ImageURL:       o.str("image_url"),
		Status:         o.str("status"),
	}
}
