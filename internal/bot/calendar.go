package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Calendar callback data formats:
//
//	cal_prev_<year>_<month>   go to previous month
//	cal_next_<year>_<month>   go to next month
//	cal_day_<year>_<month>_<day>   pick a day
const (
	calPrevPrefix = "cal_prev_"
	calNextPrefix = "cal_next_"
	calDayPrefix  = "cal_day_"
)

var monthsUA = [...]string{
	"Січень", "Лютий", "Березень", "Квітень",
	"Травень", "Червень", "Липень", "Серпень",
	"Вересень", "Жовтень", "Листопад", "Грудень",
}

var weekdaysUA = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Нд"}

// calendarSelection is a decoded calendar callback
type calendarSelection struct {
	Year  int
	Month time.Month
	Day   int // 0 for month navigation
}

// Date renders the picked day in the report date format
func (s calendarSelection) Date() string {
	return fmt.Sprintf("%02d.%02d.%04d", s.Day, int(s.Month), s.Year)
}

// calendarKeyboard builds the inline month view: a header row, month
// navigation, weekday labels and one row per week with blank cells
// padding the edges
func calendarKeyboard(year int, month time.Month) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s %d", monthsUA[month-1], year),
			callbackIgnore,
		),
	))

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("%s%d_%d", calPrevPrefix, year, int(month))),
		tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("%s%d_%d", calNextPrefix, year, int(month))),
	))

	var weekdayRow []tgbotapi.InlineKeyboardButton
	for _, wd := range weekdaysUA {
		weekdayRow = append(weekdayRow, tgbotapi.NewInlineKeyboardButtonData(wd, callbackIgnore))
	}
	rows = append(rows, weekdayRow)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	startOffset := (int(first.Weekday()) + 6) % 7 // Monday-based
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var week []tgbotapi.InlineKeyboardButton
	for i := 0; i < startOffset; i++ {
		week = append(week, tgbotapi.NewInlineKeyboardButtonData(" ", callbackIgnore))
	}
	for day := 1; day <= daysInMonth; day++ {
		week = append(week, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(day),
			fmt.Sprintf("%s%d_%d_%d", calDayPrefix, year, int(month), day),
		))
		if len(week) == 7 {
			rows = append(rows, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, tgbotapi.NewInlineKeyboardButtonData(" ", callbackIgnore))
		}
		rows = append(rows, week)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// parseCalendarCallback decodes navigation callbacks into the adjacent
// month and day callbacks into a full selection
func parseCalendarCallback(data string) (calendarSelection, bool) {
	switch {
	case strings.HasPrefix(data, calPrevPrefix):
		sel, ok := parseYearMonth(strings.TrimPrefix(data, calPrevPrefix))
		if !ok {
			return calendarSelection{}, false
		}
		prev := time.Date(sel.Year, sel.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return calendarSelection{Year: prev.Year(), Month: prev.Month()}, true

	case strings.HasPrefix(data, calNextPrefix):
		sel, ok := parseYearMonth(strings.TrimPrefix(data, calNextPrefix))
		if !ok {
			return calendarSelection{}, false
		}
		next := time.Date(sel.Year, sel.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		return calendarSelection{Year: next.Year(), Month: next.Month()}, true

	case strings.HasPrefix(data, calDayPrefix):
		parts := strings.Split(strings.TrimPrefix(data, calDayPrefix), "_")
		if len(parts) != 3 {
			return calendarSelection{}, false
		}
		year, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		day, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
			return calendarSelection{}, false
		}
		return calendarSelection{Year: year, Month: time.Month(month), Day: day}, true
	}

	return calendarSelection{}, false
}

func parseYearMonth(s string) (calendarSelection, bool) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 {
		return calendarSelection{}, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return calendarSelection{}, false
	}
	return calendarSelection{Year: year, Month: time.Month(month)}, true
}

// isCalendarNavigation reports whether the callback only flips the month
func isCalendarNavigation(data string) bool {
	return strings.HasPrefix(data, calPrevPrefix) || strings.HasPrefix(data, calNextPrefix)
}
