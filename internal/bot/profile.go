package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/okarpenko/water-meter-bot/internal/repository"
	"go.uber.org/zap"
)

// startEditProfile shows the editable-field menu to registered users
func (b *ResidentBot) startEditProfile(ctx context.Context, chatID int64) {
	if _, err := b.repo.GetUser(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			b.send(chatID, msgRegisterFirst)
			return
		}
		b.logger.Error("failed to look up user", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	b.sendWithMarkup(chatID, msgChooseProfileField, editProfileKeyboard())
}

// promptEdit asks for a new field value and parks the dialog in the
// matching edit state
func (b *ResidentBot) promptEdit(ctx context.Context, chatID int64, state, prompt string) {
	b.setDialog(ctx, chatID, state, nil)
	b.sendWithMarkup(chatID, prompt, backKeyboard())
}

// backToProfileMenu returns from an edit state to the field menu
func (b *ResidentBot) backToProfileMenu(ctx context.Context, chatID int64) {
	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, msgChooseProfileField, editProfileKeyboard())
}

func (b *ResidentBot) editFullName(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.Text == btnBack {
		b.backToProfileMenu(ctx, chatID)
		return
	}

	fullName, err := b.validator.FullName(msg.Text)
	if err != nil {
		b.send(chatID, msgFullNameTooShort)
		return
	}

	if err := b.repo.UpdateFullName(ctx, chatID, fullName); err != nil {
		b.logger.Error("failed to update full name", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	b.auditAction(ctx, chatID, "profile full name updated")
	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, msgFullNameUpdated, mainMenuKeyboard())
}

func (b *ResidentBot) editAddress(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.Text == btnBack {
		b.backToProfileMenu(ctx, chatID)
		return
	}

	if msg.Text == "" {
		b.send(chatID, msgAskNewAddress)
		return
	}

	if err := b.repo.UpdateAddress(ctx, chatID, msg.Text); err != nil {
		b.logger.Error("failed to update address", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	b.auditAction(ctx, chatID, "profile address updated")
	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, msgAddressUpdated, mainMenuKeyboard())
}

func (b *ResidentBot) editAccountNumber(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.Text == btnBack {
		b.backToProfileMenu(ctx, chatID)
		return
	}

	account, err := b.validator.AccountNumber(msg.Text)
	if err != nil {
		b.send(chatID, msgAccountDigitsOnly)
		return
	}

	if err := b.repo.UpdateAccountNumber(ctx, chatID, account); err != nil {
		b.logger.Error("failed to update account number", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	b.auditAction(ctx, chatID, "profile account number updated")
	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, msgAccountNumberUpdated, mainMenuKeyboard())
}

// editMetersCount changes the declared count and reconciles the counter
// list through the user service
func (b *ResidentBot) editMetersCount(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.Text == btnBack {
		b.backToProfileMenu(ctx, chatID)
		return
	}

	count, err := b.validator.MetersCount(msg.Text)
	if err != nil {
		b.send(chatID, msgMetersCountInvalid)
		return
	}

	if err := b.users.ChangeMetersCount(ctx, chatID, count); err != nil {
		b.logger.Error("failed to change meters count", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, fmt.Sprintf("Кількість лічильників успішно оновлено на %d!", count), mainMenuKeyboard())
}

func (b *ResidentBot) auditAction(ctx context.Context, chatID int64, action string) {
	if err := b.repo.AppendAudit(ctx, chatID, action); err != nil {
		b.logger.Warn("failed to append audit entry", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
