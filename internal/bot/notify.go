package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/okatyev/catalogwatch/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/telebot.v4"
)

// Notify broadcasts a diff summary to every subscribed chat. A diff
// without changes is silently skipped. Delivery failures to individual
// chats are logged but do not abort the broadcast.
func (b *Bot) Notify(ctx context.Context, catalogID string, diff *models.CatalogDiff) error {
	const opn = "bot.Notify"

	if !diff.HasChanges() {
		return nil
	}

	chatIDs, err := b.repo.GetSubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribed chats: %w", opn, err)
	}

	message := formatSummary(catalogID, diff.Summary())

	for _, chatID := range chatIDs {
		if _, err = b.bot.Send(telebot.ChatID(chatID), message); err != nil {
			b.log.Error("failed to deliver catalog update", "op", opn, "chat_id", chatID, "error", err)
		}
	}

	return nil
}

// formatSummary renders a compact, human-readable digest of the diff.
func formatSummary(catalogID string, summary models.DiffSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Catalog %s: %d change(s)\n", catalogID, summary.TotalChanges)
	fmt.Fprintf(
		&sb,
		"new: %d, removed: %d, price: %d, other: %d\n",
		summary.NewCount, summary.RemovedCount, summary.PriceChangeCount, summary.OtherChangeCount,
	)

	for _, change := range summary.PriceChanges {
		fmt.Fprintf(
			&sb,
			"%s: %s -> %s%s\n",
			change.Title,
			formatPrice(change.OldPrice),
			formatPrice(change.NewPrice),
			formatPercent(change.ChangePercent),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatPrice(price *decimal.Decimal) string {
	if price == nil {
		return "n/a"
	}

	return price.StringFixed(2)
}

func formatPercent(percent *decimal.Decimal) string {
	if percent == nil {
		return ""
	}

	sign := ""
	if percent.IsPositive() {
		sign = "+"
	}

	return fmt.Sprintf(" (%s%s%%)", sign, percent.String())
}
