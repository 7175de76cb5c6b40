package bot

import (
	"context"

	telegrambot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// messenger is the slice of the Telegram client used for status messages.
type messenger interface {
	SendMessage(ctx context.Context, params *telegrambot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *telegrambot.EditMessageTextParams) (*models.Message, error)
}

// statusPublisher edits one status message per transfer invocation. The
// first Publish sends the message; later calls edit it in place. Callers
// treat every outcome as best-effort.
type statusPublisher struct {
	api       messenger
	chatID    int64
	messageID int
}

func newStatusPublisher(api messenger, chatID int64) *statusPublisher {
	return &statusPublisher{api: api, chatID: chatID}
}

func (p *statusPublisher) Publish(ctx context.Context, text string) error {
	if p.messageID == 0 {
		msg, err := p.api.SendMessage(ctx, &telegrambot.SendMessageParams{
			ChatID:    p.chatID,
			Text:      text,
			ParseMode: models.ParseModeMarkdown,
		})
		if err != nil {
			return err
		}
		p.messageID = msg.ID
		return nil
	}

	_, err := p.api.EditMessageText(ctx, &telegrambot.EditMessageTextParams{
		ChatID:    p.chatID,
		MessageID: p.messageID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	return err
}
