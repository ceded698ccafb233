package service

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"unlock_bot/internal/models"
	"unlock_bot/internal/render"
)

// Discord отклоняет embed-поля с пустым именем или значением.
const zeroWidthSpace = "\u200b"

func toEmbed(doc models.Document) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       doc.Title,
		Description: doc.Description,
		Color:       doc.Color,
	}
	for _, f := range doc.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   orBlank(f.Name),
			Value:  orBlank(f.Value),
			Inline: f.Inline,
		})
	}
	if doc.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: doc.Footer}
	}
	if doc.ImageURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: doc.ImageURL}
	}
	if !doc.Timestamp.IsZero() {
		e.Timestamp = doc.Timestamp.UTC().Format(time.RFC3339)
	}
	return e
}

func toEmbeds(docs []models.Document) []*discordgo.MessageEmbed {
	if len(docs) == 0 {
		return nil
	}
	out := make([]*discordgo.MessageEmbed, 0, len(docs))
	for _, d := range docs {
		out = append(out, toEmbed(d))
	}
	return out
}

func toButton(c models.Control) discordgo.Button {
	style := discordgo.PrimaryButton
	if c.Style == models.ControlSecondary {
		style = discordgo.SecondaryButton
	}
	b := discordgo.Button{
		Label:    c.Label,
		Style:    style,
		CustomID: c.ActionID,
		Disabled: c.Disabled,
	}
	if g, ok := render.ParseGlyph(c.Glyph, ""); ok {
		if g.IsReference() {
			b.Emoji = &discordgo.ComponentEmoji{Name: g.Name, ID: g.ID}
		} else {
			b.Emoji = &discordgo.ComponentEmoji{Name: g.Literal}
		}
	}
	return b
}

// toComponents кладёт все контролы в один ряд.
func toComponents(controls []models.Control) []discordgo.MessageComponent {
	if len(controls) == 0 {
		return nil
	}
	row := discordgo.ActionsRow{}
	for _, c := range controls {
		row.Components = append(row.Components, toButton(c))
	}
	return []discordgo.MessageComponent{row}
}

func content(resp models.Response) string {
	if resp.MentionUserID == "" {
		return resp.Content
	}
	mention := "<@" + resp.MentionUserID + ">"
	if resp.Content == "" {
		return mention
	}
	return mention + "\n" + resp.Content
}

func flags(resp models.Response) discordgo.MessageFlags {
	if resp.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

func toResponseData(resp models.Response) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    content(resp),
		Embeds:     toEmbeds(resp.Documents),
		Components: toComponents(resp.Controls),
		Flags:      flags(resp),
	}
}

func toFollowup(resp models.Response) *discordgo.WebhookParams {
	return &discordgo.WebhookParams{
		Content:    content(resp),
		Embeds:     toEmbeds(resp.Documents),
		Components: toComponents(resp.Controls),
		Flags:      flags(resp),
	}
}

// viewerFrom: в гильдии есть Member с ролями, в личке только User.
func viewerFrom(i *discordgo.Interaction) models.Viewer {
	if m := i.Member; m != nil && m.User != nil {
		v := models.Viewer{
			UserID:      m.User.ID,
			DisplayName: displayName(m.Nick, m.User),
			Member:      true,
		}
		for _, raw := range m.Roles {
			id, err := models.ParseRoleID(raw)
			if err != nil || id == 0 {
				continue
			}
			v.RoleIDs = append(v.RoleIDs, id)
		}
		return v
	}
	if u := i.User; u != nil {
		return models.Viewer{UserID: u.ID, DisplayName: displayName("", u)}
	}
	return models.Viewer{}
}

func displayName(nick string, u *discordgo.User) string {
	switch {
	case nick != "":
		return nick
	case u.GlobalName != "":
		return u.GlobalName
	default:
		return u.Username
	}
}

func orBlank(s string) string {
	if s == "" {
		return zeroWidthSpace
	}
	return s
}
