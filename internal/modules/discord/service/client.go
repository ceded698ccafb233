package service

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"unlock_bot/internal/modules/config"
	healthservice "unlock_bot/internal/modules/health/service"
	"unlock_bot/internal/unlock"
)

// Discord: gateway-сессия и обработчики слэш-команд и кнопок.
type Discord struct {
	session    *discordgo.Session
	guildID    string
	commands   *unlock.Commands
	controller *unlock.Controller
	state      *healthservice.State
	log        *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDiscord returns nil when no token is configured.
func NewDiscord(
	cfg *config.Config,
	commands *unlock.Commands,
	controller *unlock.Controller,
	state *healthservice.State,
	log *zap.Logger,
) (*Discord, error) {
	if cfg.Discord.Token == "" {
		return nil, nil
	}
	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, errors.Wrap(err, "discord session")
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	ctx, cancel := context.WithCancel(context.Background())
	return &Discord{
		session:    s,
		guildID:    cfg.Discord.GuildID,
		commands:   commands,
		controller: controller,
		state:      state,
		log:        log.Named("discord"),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Start opens the gateway. Commands are registered once Ready arrives.
func (d *Discord) Start() error {
	d.session.AddHandler(d.onReady)
	d.session.AddHandler(d.onDisconnect)
	d.session.AddHandler(d.onInteraction)

	if err := d.session.Open(); err != nil {
		return errors.Wrap(err, "discord open")
	}
	return nil
}

func (d *Discord) Stop() error {
	d.cancel()
	d.state.SetConnected(platform, false)
	return d.session.Close()
}

func (d *Discord) onReady(s *discordgo.Session, r *discordgo.Ready) {
	d.state.SetConnected(platform, true)
	d.log.Info("connected",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)),
	)

	registered, err := s.ApplicationCommandBulkOverwrite(r.User.ID, d.guildID, commandDefinitions)
	if err != nil {
		d.log.Error("register commands", zap.Error(err))
		return
	}
	d.log.Info("commands registered", zap.Int("count", len(registered)), zap.String("guild", d.guildID))
}

func (d *Discord) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	d.state.SetConnected(platform, false)
	d.log.Warn("gateway disconnected")
}
