package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/okarpenko/water-meter-bot/internal/repository"
	"go.uber.org/zap"
)

// startAddCounter asks for the new counter's alias
func (b *ResidentBot) startAddCounter(ctx context.Context, chatID int64) {
	b.setDialog(ctx, chatID, stateAddCounterAlias, nil)
	b.sendWithMarkup(chatID, msgAskCounterAlias, tgbotapi.NewRemoveKeyboard(true))
}

func (b *ResidentBot) addCounterAlias(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Text == "" {
		b.send(chatID, msgAskCounterAlias)
		return
	}

	if _, err := b.repo.CreateCounter(ctx, chatID, msg.Text); err != nil {
		b.logger.Error("failed to add counter", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	b.auditAction(ctx, chatID, fmt.Sprintf("counter added: %s", msg.Text))
	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, fmt.Sprintf(msgCounterAdded, msg.Text), mainMenuKeyboard())
}

// startEditCounters opens the counter picker for rename/delete
func (b *ResidentBot) startEditCounters(ctx context.Context, chatID int64) {
	counters, err := b.repo.ListCounters(ctx, chatID)
	if err != nil {
		b.logger.Error("failed to list counters", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	if len(counters) == 0 {
		b.sendWithMarkup(chatID, msgNoCounters, mainMenuKeyboard())
		return
	}

	b.setDialog(ctx, chatID, stateEditCounterSelect, nil)
	b.sendWithMarkup(chatID, msgChooseCounterToEdit, counterListKeyboard(counters))
}

func (b *ResidentBot) editCounterSelect(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Text == btnBack {
		b.clearDialog(ctx, chatID)
		b.sendWithMarkup(chatID, msgMainMenu, mainMenuKeyboard())
		return
	}

	counters, err := b.repo.ListCounters(ctx, chatID)
	if err != nil {
		b.logger.Error("failed to list counters", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	for _, counter := range counters {
		if counter.Alias != msg.Text {
			continue
		}
		b.setDialog(ctx, chatID, stateEditCounterAction, &dialogData{
			CounterID:    counter.ID,
			CounterAlias: counter.Alias,
		})
		b.sendWithMarkup(chatID,
			fmt.Sprintf("Оберіть дію для лічильника '%s':", counter.Alias),
			editCounterActionsKeyboard(),
		)
		return
	}

	b.send(chatID, msgCounterNotFound)
}

func (b *ResidentBot) editCounterAction(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	chatID := msg.Chat.ID

	switch msg.Text {
	case btnBack:
		b.startEditCounters(ctx, chatID)

	case btnEditCounterName:
		b.setDialog(ctx, chatID, stateEditCounterName, data)
		b.sendWithMarkup(chatID,
			fmt.Sprintf(msgAskNewCounterName, data.CounterAlias),
			tgbotapi.NewRemoveKeyboard(true),
		)

	case btnDeleteCounter:
		if err := b.repo.DeleteCounter(ctx, data.CounterID); err != nil {
			if errors.Is(err, repository.ErrCounterNotFound) {
				b.clearDialog(ctx, chatID)
				b.sendWithMarkup(chatID, msgCounterNotFound, mainMenuKeyboard())
				return
			}
			b.logger.Error("failed to delete counter", zap.Error(err), zap.Int64("counter_id", data.CounterID))
			b.send(chatID, msgGenericError)
			return
		}
		b.auditAction(ctx, chatID, fmt.Sprintf("counter deleted: %s", data.CounterAlias))
		b.clearDialog(ctx, chatID)
		b.sendWithMarkup(chatID, fmt.Sprintf(msgCounterDeleted, data.CounterAlias), mainMenuKeyboard())

	default:
		b.sendWithMarkup(chatID,
			fmt.Sprintf("Оберіть дію для лічильника '%s':", data.CounterAlias),
			editCounterActionsKeyboard(),
		)
	}
}

func (b *ResidentBot) editCounterName(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	chatID := msg.Chat.ID

	if msg.Text == "" {
		b.send(chatID, fmt.Sprintf(msgAskNewCounterName, data.CounterAlias))
		return
	}

	if err := b.repo.RenameCounter(ctx, data.CounterID, msg.Text); err != nil {
		if errors.Is(err, repository.ErrCounterNotFound) {
			b.clearDialog(ctx, chatID)
			b.sendWithMarkup(chatID, msgCounterNotFound, mainMenuKeyboard())
			return
		}
		b.logger.Error("failed to rename counter", zap.Error(err), zap.Int64("counter_id", data.CounterID))
		b.send(chatID, msgGenericError)
		return
	}

	b.auditAction(ctx, chatID, fmt.Sprintf("counter renamed: %s -> %s", data.CounterAlias, msg.Text))
	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, fmt.Sprintf(msgCounterRenamed, msg.Text), mainMenuKeyboard())
}
