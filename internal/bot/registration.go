package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/okarpenko/water-meter-bot/internal/db"
	"github.com/okarpenko/water-meter-bot/internal/repository"
	"github.com/okarpenko/water-meter-bot/internal/validator"
	"go.uber.org/zap"
)

// handleStart greets returning users or opens the registration wizard
func (b *ResidentBot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	_, err := b.repo.GetUser(ctx, chatID)
	switch {
	case err == nil:
		b.clearDialog(ctx, chatID)
		b.sendWithMarkup(chatID, msgWelcomeBack, mainMenuKeyboard())
	case errors.Is(err, repository.ErrUserNotFound):
		b.sendWithMarkup(chatID, msgWelcome, tgbotapi.NewRemoveKeyboard(true))
		b.send(chatID, msgAskAccountNumber)
		b.setDialog(ctx, chatID, stateRegAccountNumber, nil)
	default:
		b.logger.Error("failed to look up user", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
	}
}

func (b *ResidentBot) regAccountNumber(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	account, err := b.validator.AccountNumber(msg.Text)
	if err != nil {
		b.send(msg.Chat.ID, msgAccountDigitsOnly)
		return
	}

	data.AccountNumber = account
	b.setDialog(ctx, msg.Chat.ID, stateRegFullName, data)
	b.send(msg.Chat.ID, msgAskFullName)
}

func (b *ResidentBot) regFullName(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	fullName, err := b.validator.FullName(msg.Text)
	if err != nil {
		b.send(msg.Chat.ID, msgFullNameTooShort)
		return
	}

	data.FullName = fullName
	b.setDialog(ctx, msg.Chat.ID, stateRegAddress, data)
	b.sendWithMarkup(msg.Chat.ID, msgAskAddress, tgbotapi.NewRemoveKeyboard(true))
}

func (b *ResidentBot) regAddress(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	if msg.Text == "" {
		b.send(msg.Chat.ID, msgAskAddress)
		return
	}

	data.Address = msg.Text
	b.setDialog(ctx, msg.Chat.ID, stateRegPhone, data)
	b.sendWithMarkup(msg.Chat.ID, msgAskPhone, phoneKeyboard())
}

// regPhone accepts a typed number or a shared contact
func (b *ResidentBot) regPhone(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	if msg.Text == btnBack {
		b.setDialog(ctx, msg.Chat.ID, stateRegAddress, data)
		b.sendWithMarkup(msg.Chat.ID, msgAskAddress, tgbotapi.NewRemoveKeyboard(true))
		return
	}

	raw := msg.Text
	if msg.Contact != nil {
		raw = msg.Contact.PhoneNumber
	}

	phone, err := validator.NormalizePhone(raw)
	if err != nil {
		b.sendWithMarkup(msg.Chat.ID, msgPhoneFormat, phoneKeyboard())
		return
	}

	data.Phone = phone
	b.setDialog(ctx, msg.Chat.ID, stateRegMetersCount, data)
	b.sendWithMarkup(msg.Chat.ID, msgAskMetersCount, tgbotapi.NewRemoveKeyboard(true))
}

func (b *ResidentBot) regMetersCount(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	count, err := b.validator.MetersCount(msg.Text)
	if err != nil {
		b.send(msg.Chat.ID, msgMetersCountInvalid)
		return
	}

	data.MetersCount = count
	b.setDialog(ctx, msg.Chat.ID, stateRegConsent, data)
	b.sendWithMarkup(msg.Chat.ID, msgAskConsent, consentKeyboard())
}

// regConsent is the consent gate: nothing is persisted until the
// resident explicitly agrees
func (b *ResidentBot) regConsent(ctx context.Context, msg *tgbotapi.Message, data *dialogData) {
	chatID := msg.Chat.ID

	switch msg.Text {
	case btnConsentYes:
		user := &db.User{
			ChatID:        chatID,
			FullName:      data.FullName,
			Phone:         data.Phone,
			Address:       data.Address,
			AccountNumber: data.AccountNumber,
			MetersCount:   data.MetersCount,
		}
		if err := b.users.Register(ctx, user); err != nil {
			b.logger.Error("registration failed", zap.Error(err), zap.Int64("chat_id", chatID))
			b.send(chatID, msgGenericError)
			b.clearDialog(ctx, chatID)
			return
		}
		b.clearDialog(ctx, chatID)
		b.sendWithMarkup(chatID, msgRegistrationDone, mainMenuKeyboard())

	case btnConsentNo:
		b.clearDialog(ctx, chatID)
		b.sendWithMarkup(chatID, msgConsentDenied, tgbotapi.NewRemoveKeyboard(true))

	default:
		b.sendWithMarkup(chatID, msgConsentChoose, consentKeyboard())
	}
}
