package bot

import (
	"io"
	"log/slog"
	"testing"

	"github.com/okatyev/catalogwatch/internal/models"
	"github.com/okatyev/catalogwatch/test/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

func TestStart(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Start").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Start()

	mockBot.AssertExpectations(t)
}

func TestStop(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Stop").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Stop()

	mockBot.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)

	mockBot.On("Handle", "/start", mock.AnythingOfType("telebot.HandlerFunc")).Once()
	mockBot.On("Handle", "/subscribe", mock.AnythingOfType("telebot.HandlerFunc")).Once()
	mockBot.On("Handle", "/unsubscribe", mock.AnythingOfType("telebot.HandlerFunc")).Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.registerRoutes()

	mockBot.AssertExpectations(t)
}

func TestNotify(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := t.Context()

	oldPrice := decimal.RequireFromString("10.00")
	newPrice := decimal.RequireFromString("12.00")
	percent := decimal.RequireFromString("20")

	diff := &models.CatalogDiff{
		PriceChanges: []models.PriceChange{
			{ProductID: "p1", Title: "Widget", OldPrice: &oldPrice, NewPrice: &newPrice, ChangePercent: &percent},
		},
	}

	t.Run("delivers summary to all subscribed chats", func(t *testing.T) {
		mockBot := mocks.NewAPI(t)
		mockRepo := mocks.NewSubscriptionRepository(t)

		mockRepo.On("GetSubscribedChats", ctx).Return([]int64{1, 2}, nil).Once()
		mockBot.On("Send", telebot.ChatID(1), mock.AnythingOfType("string")).Return(&telebot.Message{}, nil).Once()
		mockBot.On("Send", telebot.ChatID(2), mock.AnythingOfType("string")).Return(&telebot.Message{}, nil).Once()

		testBot := Bot{bot: mockBot, log: logger, repo: mockRepo}

		require.NoError(t, testBot.Notify(ctx, "comp-1", diff))
	})

	t.Run("empty diff is skipped silently", func(t *testing.T) {
		mockBot := mocks.NewAPI(t)
		mockRepo := mocks.NewSubscriptionRepository(t)

		testBot := Bot{bot: mockBot, log: logger, repo: mockRepo}

		require.NoError(t, testBot.Notify(ctx, "comp-1", &models.CatalogDiff{}))
	})

	t.Run("subscription lookup failure is returned", func(t *testing.T) {
		mockBot := mocks.NewAPI(t)
		mockRepo := mocks.NewSubscriptionRepository(t)

		mockRepo.On("GetSubscribedChats", ctx).Return(nil, assert.AnError).Once()

		testBot := Bot{bot: mockBot, log: logger, repo: mockRepo}

		err := testBot.Notify(ctx, "comp-1", diff)
		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("delivery failure to one chat does not abort the broadcast", func(t *testing.T) {
		mockBot := mocks.NewAPI(t)
		mockRepo := mocks.NewSubscriptionRepository(t)

		mockRepo.On("GetSubscribedChats", ctx).Return([]int64{1, 2}, nil).Once()
		mockBot.On("Send", telebot.ChatID(1), mock.AnythingOfType("string")).Return(nil, assert.AnError).Once()
		mockBot.On("Send", telebot.ChatID(2), mock.AnythingOfType("string")).Return(&telebot.Message{}, nil).Once()

		testBot := Bot{bot: mockBot, log: logger, repo: mockRepo}

		require.NoError(t, testBot.Notify(ctx, "comp-1", diff))
	})
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	oldPrice := decimal.RequireFromString("10.00")
	newPrice := decimal.RequireFromString("12.00")
	percent := decimal.RequireFromString("20")

	diff := &models.CatalogDiff{
		NewProducts: []models.SnapshotRecord{{Title: "Fresh", URL: "https://shop.com/fresh"}},
		PriceChanges: []models.PriceChange{
			{ProductID: "p1", Title: "Widget", OldPrice: &oldPrice, NewPrice: &newPrice, ChangePercent: &percent},
			{ProductID: "p2", Title: "Gadget", OldPrice: &oldPrice, NewPrice: nil, ChangePercent: nil},
		},
	}

	text := formatSummary("comp-1", diff.Summary())

	assert.Contains(t, text, "Catalog comp-1: 3 change(s)")
	assert.Contains(t, text, "new: 1, removed: 0, price: 2, other: 0")
	assert.Contains(t, text, "Widget: 10.00 -> 12.00 (+20%)")
	assert.Contains(t, text, "Gadget: 10.00 -> n/a")
}
