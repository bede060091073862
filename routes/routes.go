package routes

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"

	"github.com/webwatchtech/telegram-attendance-bot/handlers"
)

// Register wires the HTTP routes (just the liveness probe).
func Register(e *echo.Echo) {
	e.GET("/health", handlers.Health)
}

// CommandFunc handles one slash command message.
type CommandFunc func(msg *tgbotapi.Message)

// Commands is the slash-command table, the bot-side equivalent of the HTTP
// route table.
func Commands(b *handlers.Bot) map[string]CommandFunc {
	return map[string]CommandFunc{
		"start": b.HandleStart,
		"help":  b.HandleHelp,

		"add_employee":    b.HandleAddEmployee,
		"list_employees":  b.HandleListEmployees,
		"remove_employee": b.HandleRemoveEmployee,

		"mark_attendance":  b.HandleMarkAttendance,
		"multiday_absence": b.HandleMultidayAbsence,

		"daily_report":    b.HandleDailyReport,
		"date_report":     b.HandleDateReport,
		"last_7_days":     b.HandleLast7Days,
		"last_30_days":    b.HandleLast30Days,
		"monthly_report":  b.HandleMonthlyReport,
		"employee_report": b.HandleEmployeeReport,

		"mark_holiday":   b.HandleMarkHoliday,
		"list_holidays":  b.HandleListHolidays,
		"remove_holiday": b.HandleRemoveHoliday,
	}
}

// Dispatch routes one update: button presses go to the attendance flow,
// commands through the table, and plain text is consumed as an absence
// reason only while one is owed.
func Dispatch(b *handlers.Bot, commands map[string]CommandFunc, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.HandleAttendanceCallback(update.CallbackQuery)
		return
	}
	msg := update.Message
	if msg == nil {
		return
	}
	if msg.IsCommand() {
		if h, ok := commands[msg.Command()]; ok {
			h(msg)
		}
		return
	}
	if msg.Text != "" && b.AwaitingReason(msg.From.ID) {
		b.HandleReasonMessage(msg)
	}
}
