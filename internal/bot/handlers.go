package bot

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"
)

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	const greeting = "Hello! I watch product catalogs for you.\n" +
		"/subscribe - get notified about catalog changes\n" +
		"/unsubscribe - stop notifications"

	if err := ctx.Send(greeting); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// subscribeHandler process command /subscribe.
func (b *Bot) subscribeHandler(ctx telebot.Context) error {
	chatID := ctx.Chat().ID
	b.log.Info("Chat subscribed to catalog updates", "chat_id", chatID)

	if err := b.repo.SubscribeChat(context.Background(), chatID); err != nil {
		return fmt.Errorf("failed to subscribe chat %d: %w", chatID, err)
	}

	if err := ctx.Send("Subscribed. You will be notified about catalog changes."); err != nil {
		return fmt.Errorf("failed to send subscribe confirmation: %w", err)
	}

	return nil
}

// unsubscribeHandler process command /unsubscribe.
func (b *Bot) unsubscribeHandler(ctx telebot.Context) error {
	chatID := ctx.Chat().ID
	b.log.Info("Chat unsubscribed from catalog updates", "chat_id", chatID)

	if err := b.repo.UnsubscribeChat(context.Background(), chatID); err != nil {
		return fmt.Errorf("failed to unsubscribe chat %d: %w", chatID, err)
	}

	if err := ctx.Send("Unsubscribed. No more notifications."); err != nil {
		return fmt.Errorf("failed to send unsubscribe confirmation: %w", err)
	}

	return nil
}
