package bot

import (
	"context"
	"fmt"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/okarpenko/water-meter-bot/internal/logging"
	"github.com/okarpenko/water-meter-bot/internal/repository"
	"github.com/okarpenko/water-meter-bot/internal/service"
	"go.uber.org/zap"
)

// AdminBot is the administrative surface: a password challenge opening
// a persisted session, and a calendar-driven report flow. Sessions and
// dialog positions live in storage, so a restart neither drops an
// authorization nor loses a half-picked date range.
type AdminBot struct {
	api         *tgbotapi.BotAPI
	repo        *repository.Repository
	reports     *service.Reports
	dialogs     *dialogStore
	password    string
	sessionTTL  time.Duration
	logger      *zap.Logger
	pollTimeout int
}

// NewAdminBot creates the admin bot
func NewAdminBot(
	api *tgbotapi.BotAPI,
	repo *repository.Repository,
	reports *service.Reports,
	password string,
	sessionTTL time.Duration,
	logger *zap.Logger,
	pollTimeout int,
) *AdminBot {
	return &AdminBot{
		api:         api,
		repo:        repo,
		reports:     reports,
		dialogs:     &dialogStore{repo: repo},
		password:    password,
		sessionTTL:  sessionTTL,
		logger:      logger.With(zap.String("bot", "admin")),
		pollTimeout: pollTimeout,
	}
}

// Run polls Telegram updates until the context is cancelled
func (b *AdminBot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("admin bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("admin bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *AdminBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
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
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *AdminBot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	logger := logging.WithChatID(b.logger, chatID)

	if msg.IsCommand() && msg.Command() == "start" {
		b.handleStart(ctx, chatID)
		return
	}

	state, _, err := b.dialogs.get(ctx, chatID)
	if err != nil {
		logger.Error("failed to load dialog state", zap.Error(err))
		b.send(chatID, msgGenericError)
		return
	}

	if state == stateAdminPassword {
		b.checkPassword(ctx, msg)
		return
	}

	authorized, err := b.repo.IsAdminSessionActive(ctx, chatID)
	if err != nil {
		logger.Error("failed to check admin session", zap.Error(err))
		b.send(chatID, msgGenericError)
		return
	}
	if !authorized {
		b.send(chatID, msgAdminUnauthorized)
		return
	}

	switch msg.Text {
	case btnAdminReport:
		b.startReportFlow(ctx, chatID)
	case btnAdminBack:
		b.clearDialog(ctx, chatID)
		b.sendWithMarkup(chatID, msgAdminMainMenu, adminMenuKeyboard())
	default:
		b.sendWithMarkup(chatID, msgAdminUnknown, adminMenuKeyboard())
	}
}

func (b *AdminBot) handleStart(ctx context.Context, chatID int64) {
	authorized, err := b.repo.IsAdminSessionActive(ctx, chatID)
	if err != nil {
		b.logger.Error("failed to check admin session", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	if authorized {
		b.sendWithMarkup(chatID, msgAdminAlreadyAuthed, adminMenuKeyboard())
		return
	}

	b.setDialog(ctx, chatID, stateAdminPassword, nil)
	b.sendWithMarkup(chatID, msgAdminAskPassword, tgbotapi.NewRemoveKeyboard(true))
}

// checkPassword validates the shared secret and opens a session with a
// defined lifetime instead of a process-lifetime allow-list
func (b *AdminBot) checkPassword(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Text != b.password {
		b.sendWithMarkup(chatID, msgAdminWrongPassword, tgbotapi.NewRemoveKeyboard(true))
		return
	}

	if err := b.repo.OpenAdminSession(ctx, chatID, b.sessionTTL); err != nil {
		b.logger.Error("failed to open admin session", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	b.logger.Info("admin authorized", zap.Int64("chat_id", chatID))
	b.clearDialog(ctx, chatID)
	b.sendWithMarkup(chatID, msgAdminAuthorized, adminMenuKeyboard())
}

// startReportFlow shows the calendar for the range's start date
func (b *AdminBot) startReportFlow(ctx context.Context, chatID int64) {
	now := time.Now()
	b.setDialog(ctx, chatID, stateAdminStartDate, nil)
	b.sendWithMarkup(chatID, msgAdminAskStartDate, adminBackKeyboard())
	b.sendWithMarkup(chatID, msgAdminChooseDay, calendarKeyboard(now.Year(), now.Month()))
}

func (b *AdminBot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
			b.logger.Warn("failed to answer callback", zap.Error(err))
		}
	}()

	if callback.Data == callbackIgnore || callback.Message == nil {
		return
	}

	chatID := callback.Message.Chat.ID

	sel, ok := parseCalendarCallback(callback.Data)
	if !ok {
		return
	}

	if isCalendarNavigation(callback.Data) {
		edit := tgbotapi.NewEditMessageReplyMarkup(
			chatID,
			callback.Message.MessageID,
			calendarKeyboard(sel.Year, sel.Month),
		)
		if _, err := b.api.Request(edit); err != nil {
			b.logger.Warn("failed to flip calendar month", zap.Error(err))
		}
		return
	}

	state, data, err := b.dialogs.get(ctx, chatID)
	if err != nil {
		b.logger.Error("failed to load dialog state", zap.Error(err), zap.Int64("chat_id", chatID))
		b.send(chatID, msgGenericError)
		return
	}

	switch state {
	case stateAdminStartDate:
		b.pickStartDate(ctx, callback, sel)
	case stateAdminEndDate:
		b.pickEndDate(ctx, callback, sel, data)
	}
}

func (b *AdminBot) pickStartDate(ctx context.Context, callback *tgbotapi.CallbackQuery, sel calendarSelection) {
	chatID := callback.Message.Chat.ID
	startDate := sel.Date()

	edit := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID, fmt.Sprintf(msgAdminStartChosen, startDate))
	if _, err := b.api.Request(edit); err != nil {
		b.logger.Warn("failed to confirm start date", zap.Error(err))
	}

	b.setDialog(ctx, chatID, stateAdminEndDate, &dialogData{StartDate: startDate})

	now := time.Now()
	b.send(chatID, msgAdminAskEndDate)
	b.sendWithMarkup(chatID, msgAdminChooseDay, calendarKeyboard(now.Year(), now.Month()))
}

func (b *AdminBot) pickEndDate(ctx context.Context, callback *tgbotapi.CallbackQuery, sel calendarSelection, data *dialogData) {
	chatID := callback.Message.Chat.ID
	endDate := sel.Date()

	edit := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID, fmt.Sprintf(msgAdminEndChosen, endDate))
	if _, err := b.api.Request(edit); err != nil {
		b.logger.Warn("failed to confirm end date", zap.Error(err))
	}

	b.generateReport(ctx, chatID, data.StartDate, endDate)
}

// generateReport builds, exports and delivers the spreadsheet, keeping
// "no data in range" and "something failed" as distinct outcomes
func (b *AdminBot) generateReport(ctx context.Context, chatID int64, startDate, endDate string) {
	defer b.clearDialog(ctx, chatID)

	b.send(chatID, msgAdminBuilding)

	entries, err := b.reports.Build(ctx, startDate, endDate)
	if err != nil {
		b.logger.Error("report build failed",
			zap.Error(err),
			zap.String("start", startDate),
			zap.String("end", endDate),
		)
		b.sendWithMarkup(chatID, msgAdminReportFailed, adminMenuKeyboard())
		return
	}

	if len(entries) == 0 {
		b.sendWithMarkup(chatID, msgAdminNoData, adminMenuKeyboard())
		return
	}

	path, err := b.reports.Export(entries)
	if err != nil {
		b.sendWithMarkup(chatID, msgAdminReportFailed, adminMenuKeyboard())
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			b.logger.Warn("failed to remove exported report", zap.Error(err), zap.String("path", path))
		}
	}()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf(msgAdminCaption, startDate, endDate, len(entries))
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("failed to send report document", zap.Error(err), zap.String("path", path))
		b.sendWithMarkup(chatID, msgAdminReportFailed, adminMenuKeyboard())
		return
	}

	b.sendWithMarkup(chatID, msgAdminReportDone, adminMenuKeyboard())
}

func (b *AdminBot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (b *AdminBot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (b *AdminBot) setDialog(ctx context.Context, chatID int64, state string, data *dialogData) {
	if err := b.dialogs.set(ctx, chatID, state, data); err != nil {
		b.logger.Error("failed to persist dialog state", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (b *AdminBot) clearDialog(ctx context.Context, chatID int64) {
	if err := b.dialogs.clear(ctx, chatID); err != nil {
		b.logger.Error("failed to clear dialog state", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
