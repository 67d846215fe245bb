// Package telegram connects the registration flow to the Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"heroes-marathon-bot/internal/domain"
)

// API is the subset of *tgbotapi.BotAPI the adapter uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// ErrUpdatesClosed is returned by Run when the update channel closes while ctx is still live.
var ErrUpdatesClosed = errors.New("telegram: update channel closed")

// SubmitFunc receives every converted inbound event.
type SubmitFunc func(ctx context.Context, ev domain.Event)

type Bot struct {
	api         API
	log         *zap.Logger
	pollTimeout int
}

// Connect authenticates with token and returns a long-polling bot.
func Connect(token string, debug bool, pollTimeout int, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	api.Debug = debug

	log.Info("authorized on telegram", zap.String("username", api.Self.UserName))
	return NewBot(api, pollTimeout, log), nil
}

func NewBot(api API, pollTimeout int, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{api: api, log: log, pollTimeout: pollTimeout}
}

// Run long-polls for updates and hands each converted event to submit until ctx is done.
func (b *Bot) Run(ctx context.Context, submit SubmitFunc) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("stopping telegram receive loop")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return ErrUpdatesClosed
			}

			if cq := upd.CallbackQuery; cq != nil {
				if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
					b.log.Warn("answer callback failed", zap.String("callback_id", cq.ID), zap.Error(err))
				}
			}

			ev, ok := EventFromUpdate(upd)
			if !ok {
				b.log.Debug("skipping update", zap.Int("update_id", upd.UpdateID))
				continue
			}
			submit(ctx, ev)
		}
	}
}

// Send implements ports.Messenger.
func (b *Bot) Send(_ context.Context, r domain.Reply) error {
	if _, err := b.api.Send(RenderReply(r)); err != nil {
		return fmt.Errorf("telegram send chat_id=%d: %w", r.ChatID, err)
	}
	return nil
}
