package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/okarpenko/water-meter-bot/internal/repository"
	"go.uber.org/zap"
)

// startSubmitReadings opens the counter picker
func (b *ResidentBot) startSubmitReadings(ctx context.Context, chatID int64) {
	counters, err := b.repo.ListCounters(ctx, chatID)
	if err != nil {
		b.logger.Error("failed to list counters", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	if len(counters) == 0 {
		b.send(chatID, msgNoCounters)
		return
	}

	b.setDialog(ctx, chatID, stateSubmitCounter, nil)
	b.sendWithMarkup(chatID, msgChooseCounter, counterListKeyboard(counters))
}

// submitSelectCounter resolves the pressed alias to a counter and shows
// its current reading
func (b *ResidentBot) submitSelectCounter(ctx context.Context, msg *tgbotapi.Message) {
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

		current := "немає даних"
		if counter.LastReading != nil {
			current = fmt.Sprintf("%d", *counter.LastReading)
		}

		b.setDialog(ctx, chatID, stateSubmitValue, &dialogData{
			CounterID:    counter.ID,
			CounterAlias: counter.Alias,
		})
		b.sendWithMarkup(chatID,
			fmt.Sprintf("Поточне значення лічильника '%s': %s\n\nВведіть нові показники:", counter.Alias, current),
			tgbotapi.NewRemoveKeyboard(true),
		)
		return
	}

	b.send(chatID, msgCounterNotFound)
}

// submitValue validates and persists the typed reading
func (b *ResidentBot) submitValue(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	chatID := msg.Chat.ID

	value, err := b.validator.ReadingValue(msg.Text)
	if err != nil {
		b.send(chatID, msgEnterNumber)
		return
	}

	result, err := b.readings.Submit(ctx, data.CounterID, value)
	if err != nil {
		b.clearDialog(ctx, chatID)

		var monoErr *repository.MonotonicityError
		switch {
		case errors.As(err, &monoErr):
			b.sendWithMarkup(chatID,
				fmt.Sprintf("Помилка: нові показники (%d) повинні бути більшими за попередні (%d).",
					monoErr.Value, monoErr.LastReading),
				mainMenuKeyboard(),
			)
		case errors.Is(err, repository.ErrCounterNotFound):
			b.sendWithMarkup(chatID, msgCounterNotFound, mainMenuKeyboard())
		default:
			b.logger.Error("reading submission failed",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
				zap.Int64("counter_id", data.CounterID),
			)
			b.sendWithMarkup(chatID, msgReadingFailed, mainMenuKeyboard())
		}
		return
	}

	previous := "немає"
	difference := "немає"
	if result.Previous != nil {
		previous = fmt.Sprintf("%d", *result.Previous)
		difference = fmt.Sprintf("%d", result.Value-*result.Previous)
	}

	response := fmt.Sprintf(
		"✅ Показники для '%s' успішно збережено!\nПопередні показання: %s\nНові показання: %d\nРізниця: %s",
		data.CounterAlias, previous, result.Value, difference,
	)
	if result.Flagged {
		response += "\n\n" + msgSpikeWarning
	}

	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, response, mainMenuKeyboard())
}
