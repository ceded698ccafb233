package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unlock_bot/internal/models"
)

type fakeAPI struct {
	responses  []*discordgo.InteractionResponse
	followups  []*discordgo.WebhookParams
	edits      []*discordgo.WebhookEdit
	posted     *discordgo.Message
	respondErr error
}

func (f *fakeAPI) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeAPI) InteractionResponse(_ *discordgo.Interaction, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.posted == nil {
		return nil, errors.New("no response yet")
	}
	return f.posted, nil
}

func (f *fakeAPI) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, edit)
	return f.posted, nil
}

func (f *fakeAPI) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followups = append(f.followups, data)
	return &discordgo.Message{}, nil
}

func newTestInteraction(api *fakeAPI) *interaction {
	return newInteraction(api, &discordgo.Interaction{
		ID:   "1001",
		Type: discordgo.InteractionApplicationCommand,
		User: &discordgo.User{ID: "7", Username: "bob"},
	})
}

func TestInteraction_SecondRespondIsFollowup(t *testing.T) {
	api := &fakeAPI{}
	in := newTestInteraction(api)
	ctx := context.Background()

	assert.Equal(t, models.SecretID(1001), in.ID())
	assert.Equal(t, "discord", in.Platform())

	require.NoError(t, in.Respond(ctx, models.Response{Content: "first"}))
	require.NoError(t, in.Respond(ctx, models.Response{Ephemeral: true, Content: "second"}))

	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, api.responses[0].Type)
	assert.Equal(t, "first", api.responses[0].Data.Content)

	require.Len(t, api.followups, 1)
	assert.Equal(t, "second", api.followups[0].Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, api.followups[0].Flags)
}

func TestInteraction_FailedRespondIsRetriedAsResponse(t *testing.T) {
	api := &fakeAPI{respondErr: errors.New("boom")}
	in := newTestInteraction(api)

	require.Error(t, in.Respond(context.Background(), models.Response{Content: "x"}))

	api.respondErr = nil
	require.NoError(t, in.Respond(context.Background(), models.Response{Content: "y"}))
	assert.Len(t, api.responses, 1)
	assert.Empty(t, api.followups)
}

func TestInteraction_PostedMessageAndAttach(t *testing.T) {
	api := &fakeAPI{posted: &discordgo.Message{ID: "555"}}
	in := newTestInteraction(api)
	ctx := context.Background()

	id, err := in.PostedMessageID(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SecretID(555), id)

	require.NoError(t, in.AttachControls(ctx, []models.Control{models.RevealControl(id)}))
	require.Len(t, api.edits, 1)
	require.NotNil(t, api.edits[0].Components)
	assert.Len(t, *api.edits[0].Components, 1)
}

func TestInteraction_PostedMessageError(t *testing.T) {
	in := newTestInteraction(&fakeAPI{})
	_, err := in.PostedMessageID(context.Background())
	assert.Error(t, err)
}

func TestOptionParsing(t *testing.T) {
	o := optionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "77"},
		{Name: "symbol", Type: discordgo.ApplicationCommandOptionString, Value: "btcusdt"},
		{Name: "entry", Type: discordgo.ApplicationCommandOptionNumber, Value: 100.0},
		{Name: "sl", Type: discordgo.ApplicationCommandOptionNumber, Value: 95.0},
		{Name: "order_type", Type: discordgo.ApplicationCommandOptionString, Value: "BUY"},
		{Name: "trader_balance", Type: discordgo.ApplicationCommandOptionNumber, Value: 1000.0},
		{Name: "leverage", Type: discordgo.ApplicationCommandOptionNumber, Value: 10.0},
		{Name: "risk_percentage", Type: discordgo.ApplicationCommandOptionNumber, Value: 2.0},
	})

	p := tradeParams(o)
	assert.Equal(t, "77", p.UserID)
	assert.Equal(t, "btcusdt", p.Symbol)
	assert.Equal(t, 100.0, p.Entry)
	assert.Equal(t, 95.0, p.StopLoss)
	assert.Equal(t, "BUY", p.OrderType)
	assert.Equal(t, 1000.0, p.TraderBalance)
	assert.Equal(t, 10.0, p.Leverage)
	assert.Equal(t, 2.0, p.RiskPercentage)
	assert.Empty(t, p.ImageURL)

	// опция другого типа не паникует
	assert.Zero(t, o.num("symbol"))
	assert.Empty(t, o.str("missing"))
}

func TestCommandDefinitions_RequiredFirst(t *testing.T) {
	for _, cmd := range commandDefinitions {
		optional := false
		for _, opt := range cmd.Options {
			if !opt.Required {
				optional = true
				continue
			}
			assert.False(t, optional, "%s: required option %s after optional", cmd.Name, opt.Name)
		}
	}
}
