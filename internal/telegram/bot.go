package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Subscriptions is implemented by the notification service.
type Subscriptions interface {
	Subscribe(ctx context.Context, chatID int64) (bool, error)
	Unsubscribe(ctx context.Context, chatID int64) (bool, error)
}

type Bot struct {
	api API
	log logrus.FieldLogger
}

func NewBot(token string, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	log.WithField("bot", api.Self.UserName).Info("telegram bot authorized")
	return NewBotWithAPI(api, log), nil
}

func NewBotWithAPI(api API, log logrus.FieldLogger) *Bot {
	return &Bot{api: api, log: log}
}

// Send delivers a plain-text message to one chat.
func (b *Bot) Send(_ context.Context, chatID int64, text string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send telegram message to %d: %w", chatID, err)
	}
	return nil
}

// Listen long-polls updates and answers bot commands until ctx is done.
func (b *Bot) Listen(ctx context.Context, subs Subscriptions) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, subs, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, subs Subscriptions, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID

	var reply string
	switch msg.Command() {
	case "start":
		reply = fmt.Sprintf("Hi, %s, nice to meet you!", msg.Chat.FirstName)
		b.log.WithField("chat_id", chatID).Info("greeted telegram user")
	case "subscribe":
		reply = b.subscribe(ctx, subs, chatID)
	case "unsubscribe":
		reply = b.unsubscribe(ctx, subs, chatID)
	default:
		reply = "Sorry, command was not recognized"
	}

	if err := b.Send(ctx, chatID, reply); err != nil {
		b.log.WithError(err).Error("telegram reply failed")
	}
}

func (b *Bot) subscribe(ctx context.Context, subs Subscriptions, chatID int64) string {
	added, err := subs.Subscribe(ctx, chatID)
	switch {
	case err != nil:
		b.log.WithError(err).WithField("chat_id", chatID).Error("subscribe failed")
		return "Subscription is unavailable right now, please try later."
	case added:
		return "You have been successfully subscribed to notifications."
	default:
		return "You are already subscribed."
	}
}

func (b *Bot) unsubscribe(ctx context.Context, subs Subscriptions, chatID int64) string {
	removed, err := subs.Unsubscribe(ctx, chatID)
	switch {
	case err != nil:
		b.log.WithError(err).WithField("chat_id", chatID).Error("unsubscribe failed")
		return "Subscription is unavailable right now, please try later."
	case removed:
		return "You have been successfully unsubscribed from notifications."
	default:
		return "You are not subscribed."
	}
}
