package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"unlock_bot/internal/models"
)

const platform = "discord"

// interactionAPI: часть *discordgo.Session, которой пользуется адаптер.
type interactionAPI interface {
	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponse(i *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(i *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// interaction adapts one InteractionCreate to unlock.Interaction.
// The first Respond answers the interaction, later ones become follow-ups.
type interaction struct {
	api    interactionAPI
	i      *discordgo.Interaction
	viewer models.Viewer

	mu        sync.Mutex
	responded bool
}

func newInteraction(api interactionAPI, i *discordgo.Interaction) *interaction {
	return &interaction{api: api, i: i, viewer: viewerFrom(i)}
}

func (in *interaction) ID() models.SecretID {
	id, _ := models.ParseSecretID(in.i.ID)
	return id
}

func (in *interaction) Platform() string       { return platform }
func (in *interaction) Invoker() models.Viewer { return in.viewer }

func (in *interaction) Respond(ctx context.Context, resp models.Response) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("discord.Respond: %w", err)
		}
	}()

	in.mu.Lock()
	defer in.mu.Unlock()

	if in.responded {
		_, err = in.api.FollowupMessageCreate(in.i, true, toFollowup(resp), discordgo.WithContext(ctx))
		return err
	}

	err = in.api.InteractionRespond(in.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: toResponseData(resp),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	in.responded = true
	return nil
}

func (in *interaction) PostedMessageID(ctx context.Context) (models.SecretID, error) {
	msg, err := in.api.InteractionResponse(in.i, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("discord.PostedMessageID: %w", err)
	}
	id, err := models.ParseSecretID(msg.ID)
	if err != nil {
		return 0, fmt.Errorf("discord.PostedMessageID: %w", err)
	}
	return id, nil
}

func (in *interaction) AttachControls(ctx context.Context, controls []models.Control) error {
	components := toComponents(controls)
	_, err := in.api.InteractionResponseEdit(in.i, &discordgo.WebhookEdit{
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord.AttachControls: %w", err)
	}
	return nil
}
