// Package bot is the Telegram-facing surface of the relay. It parses
// commands, maps media messages onto inbound file events and hands them to
// the transfer orchestrator. All transport specifics stay in this package.
package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	telegrambot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Mraprguild8133/telegramwasabi/internal/config"
	"github.com/Mraprguild8133/telegramwasabi/internal/registry"
	"github.com/Mraprguild8133/telegramwasabi/internal/transfer"
)

// Bot wires the Telegram client to the orchestrator and the registry.
type Bot struct {
	api      *telegrambot.Bot
	cfg      *config.Config
	opts     *config.TransferOptions
	orch     *transfer.Orchestrator
	registry *registry.Registry
	store    transfer.ObjectStore
}

// New creates the bot and registers all handlers. The orchestrator's
// downloader should be built from the returned bot's API via Downloader().
func New(cfg *config.Config, opts *config.TransferOptions, reg *registry.Registry, store transfer.ObjectStore) (*Bot, error) {
	b := &Bot{
		cfg:      cfg,
		opts:     opts,
		registry: reg,
		store:    store,
	}

	api, err := telegrambot.New(cfg.BotToken,
		telegrambot.WithDefaultHandler(b.handleMedia),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.api = api

	api.RegisterHandler(telegrambot.HandlerTypeMessageText, "/start", telegrambot.MatchTypePrefix, b.handleStart)
	api.RegisterHandler(telegrambot.HandlerTypeMessageText, "/help", telegrambot.MatchTypePrefix, b.handleHelp)
	api.RegisterHandler(telegrambot.HandlerTypeMessageText, "/upload", telegrambot.MatchTypePrefix, b.handleUploadPrompt)
	api.RegisterHandler(telegrambot.HandlerTypeMessageText, "/list", telegrambot.MatchTypePrefix, b.handleList)
	api.RegisterHandler(telegrambot.HandlerTypeMessageText, "/download", telegrambot.MatchTypePrefix, b.handleDownload)

	return b, nil
}

// SetOrchestrator attaches the transfer orchestrator. Separated from New so
// the orchestrator can be constructed with this bot's download primitive.
func (b *Bot) SetOrchestrator(orch *transfer.Orchestrator) {
	b.orch = orch
}

// Downloader returns the transport's streaming-download primitive.
func (b *Bot) Downloader() *Downloader {
	return NewDownloader(b.api)
}

// Start long-polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	log.Println("Bot started, long-polling for updates... 🤖")
	b.api.Start(ctx)
}

func (b *Bot) handleStart(ctx context.Context, api *telegrambot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if b.cfg.StartPic != "" {
		_, err := api.SendPhoto(ctx, &telegrambot.SendPhotoParams{
			ChatID:    chatID,
			Photo:     &models.InputFileString{Data: b.cfg.StartPic},
			Caption:   welcomeText,
			ParseMode: models.ParseModeMarkdown,
		})
		if err == nil {
			return
		}
		log.Printf("start picture failed, falling back to text: %v", err)
	}
	b.reply(ctx, chatID, welcomeText)
}

func (b *Bot) handleHelp(ctx context.Context, _ *telegrambot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.reply(ctx, update.Message.Chat.ID, helpText)
}

func (b *Bot) handleUploadPrompt(ctx context.Context, _ *telegrambot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.reply(ctx, update.Message.Chat.ID, uploadPromptText)
}

func (b *Bot) handleList(ctx context.Context, _ *telegrambot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	records := b.registry.ListByOwner(ownerOf(update.Message))
	b.reply(ctx, update.Message.Chat.ID, listText(records))
}

func (b *Bot) handleDownload(ctx context.Context, _ *telegrambot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.reply(ctx, chatID, downloadUsageText)
		return
	}

	rec, err := b.registry.Get(parts[1])
	if err != nil {
		b.reply(ctx, chatID, fileNotFoundText)
		return
	}

	streamingURL, err := b.store.PresignDownload(ctx, rec.ObjectKey, b.opts.SuccessLinkTTL())
	if err != nil {
		log.Printf("presign for /download %s failed: %v", rec.ID, err)
		b.reply(ctx, chatID, linkFailedText)
		return
	}
	b.reply(ctx, chatID, downloadText(rec, streamingURL))
}

// handleMedia receives every non-command message and relays any attached
// file.
func (b *Bot) handleMedia(ctx context.Context, _ *telegrambot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message

	file, ok := inboundFrom(msg)
	if !ok {
		if msg.Text == "" {
			b.reply(ctx, msg.Chat.ID, unsupportedFileText)
		}
		return
	}

	pub := newStatusPublisher(b.api, msg.Chat.ID)
	if _, err := b.orch.Handle(ctx, file, pub); err != nil {
		log.Printf("transfer for user %d failed: %v", file.OwnerID, err)
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	_, err := b.api.SendMessage(ctx, &telegrambot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		log.Printf("reply to chat %d failed: %v", chatID, err)
	}
}
