package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/okarpenko/water-meter-bot/internal/logging"
	"github.com/okarpenko/water-meter-bot/internal/repository"
	"github.com/okarpenko/water-meter-bot/internal/service"
	"github.com/okarpenko/water-meter-bot/internal/validator"
	"go.uber.org/zap"
)

// ResidentBot is the conversational surface for residents: registration,
// reading submission and profile maintenance. All dialog positions live
// in the persisted chat-state store, so restarts keep dialogs intact.
type ResidentBot struct {
	api         *tgbotapi.BotAPI
	repo        *repository.Repository
	users       *service.Users
	readings    *service.Readings
	validator   *validator.Validator
	dialogs     *dialogStore
	logger      *zap.Logger
	pollTimeout int
}

// NewResidentBot creates the resident bot
func NewResidentBot(
	api *tgbotapi.BotAPI,
	repo *repository.Repository,
	users *service.Users,
	readings *service.Readings,
	v *validator.Validator,
	logger *zap.Logger,
	pollTimeout int,
) *ResidentBot {
	return &ResidentBot{
		api:         api,
		repo:        repo,
		users:       users,
		readings:    readings,
		validator:   v,
		dialogs:     &dialogStore{repo: repo},
		logger:      logger.With(zap.String("bot", "resident")),
		pollTimeout: pollTimeout,
	}
}

// Run polls Telegram updates until the context is cancelled
func (b *ResidentBot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("resident bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("resident bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate processes one update; a panic in a handler is contained
// so one chat's failure cannot take the bot down
func (b *ResidentBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling update",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *ResidentBot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	logger := logging.WithChatID(b.logger, chatID)

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(ctx, msg)
		case "add_counter":
			b.startAddCounter(ctx, chatID)
		default:
			b.send(chatID, msgUnknownCommand)
		}
		return
	}

	state, data, err := b.dialogs.get(ctx, chatID)
	if err != nil {
		logger.Error("failed to load dialog state", zap.Error(err))
		b.send(chatID, msgGenericError)
		return
	}

	if state != "" {
		b.handleState(ctx, msg, state, data)
		return
	}

	b.handleMenu(ctx, msg)
}

// handleState resumes a dialog at its persisted position
func (b *ResidentBot) handleState(ctx context.Context, msg *tgbotapi.Message, state string, data *dialogData) {
	switch state {
	case stateRegAccountNumber:
		b.regAccountNumber(ctx, msg, data)
	case stateRegFullName:
		b.regFullName(ctx, msg, data)
	case stateRegAddress:
		b.regAddress(ctx, msg, data)
	case stateRegPhone:
		b.regPhone(ctx, msg, data)
	case stateRegMetersCount:
		b.regMetersCount(ctx, msg, data)
	case stateRegConsent:
		b.regConsent(ctx, msg, data)
	case stateSubmitCounter:
		b.submitSelectCounter(ctx, msg)
	case stateSubmitValue:
		b.submitValue(ctx, msg, data)
	case stateAddCounterAlias:
		b.addCounterAlias(ctx, msg)
	case stateEditCounterSelect:
		b.editCounterSelect(ctx, msg)
	case stateEditCounterAction:
		b.editCounterAction(ctx, msg, data)
	case stateEditCounterName:
		b.editCounterName(ctx, msg, data)
	case stateEditFullName:
		b.editFullName(ctx, msg)
	case stateEditAddress:
		b.editAddress(ctx, msg)
	case stateEditAccountNumber:
		b.editAccountNumber(ctx, msg)
	case stateEditMetersCount:
		b.editMetersCount(ctx, msg)
	default:
		b.logger.Warn("unknown dialog state", zap.String("state", state))
		b.clearDialog(ctx, msg.Chat.ID)
		b.sendWithMarkup(msg.Chat.ID, msgMainMenu, mainMenuKeyboard())
	}
}

// handleMenu routes idle-chat button presses
func (b *ResidentBot) handleMenu(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Text {
	case btnStartBot, btnGoHome, btnBack:
		b.sendWithMarkup(chatID, msgMainMenu, mainMenuKeyboard())
	case btnSubmitReadings:
		b.startSubmitReadings(ctx, chatID)
	case btnEditProfile:
		b.startEditProfile(ctx, chatID)
	case btnFullName:
		b.promptEdit(ctx, chatID, stateEditFullName, msgAskNewFullName)
	case btnAddress:
		b.promptEdit(ctx, chatID, stateEditAddress, msgAskNewAddress)
	case btnAccountNumber:
		b.promptEdit(ctx, chatID, stateEditAccountNumber, msgAskNewAccountNumber)
	case btnCountOfMeters:
		b.promptEdit(ctx, chatID, stateEditMetersCount, msgAskNewMetersCount)
	case btnEditCounters:
		b.sendWithMarkup(chatID, msgChooseProfileField, editCountersKeyboard())
	case btnAddCounter:
		b.startAddCounter(ctx, chatID)
	case btnEditCounter:
		b.startEditCounters(ctx, chatID)
	case btnAbout:
		b.sendWithMarkup(chatID, msgAboutUs, mainMenuKeyboard())
		b.sendWithMarkup(chatID, msgAboutDeveloperAsk, aboutDeveloperKeyboard())
	default:
		if _, err := b.repo.GetUser(ctx, chatID); err != nil {
			b.send(chatID, msgRegisterFirst)
			return
		}
		b.sendWithMarkup(chatID, msgUnknownCommand, mainMenuKeyboard())
	}
}

func (b *ResidentBot) handleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Data == callbackDeveloperInfo && callback.Message != nil {
		edit := tgbotapi.NewEditMessageReplyMarkup(
			callback.Message.Chat.ID,
			callback.Message.MessageID,
			tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
		)
		if _, err := b.api.Request(edit); err != nil {
			b.logger.Warn("failed to drop inline keyboard", zap.Error(err))
		}
		b.send(callback.Message.Chat.ID, msgAboutDeveloper)
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}
}

// SendText delivers a plain message outside any dialog, used by the
// reminder scheduler
func (b *ResidentBot) SendText(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *ResidentBot) send(chatID int64, text string) {
	if err := b.SendText(chatID, text); err != nil {
		b.logger.Error("failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (b *ResidentBot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (b *ResidentBot) setDialog(ctx context.Context, chatID int64, state string, data *dialogData) {
	if err := b.dialogs.set(ctx, chatID, state, data); err != nil {
		b.logger.Error("failed to persist dialog state", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (b *ResidentBot) clearDialog(ctx context.Context, chatID int64) {
	if err := b.dialogs.clear(ctx, chatID); err != nil {
		b.logger.Error("failed to clear dialog state", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
