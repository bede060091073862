package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/webwatchtech/telegram-attendance-bot/dateutil"
	"github.com/webwatchtech/telegram-attendance-bot/models"
	"github.com/webwatchtech/telegram-attendance-bot/session"
)

func decisionKeyboard(employeeID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Present", fmt.Sprintf("present_%d", employeeID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Absent", fmt.Sprintf("absent_%d", employeeID)),
		),
	)
}

// HandleMarkAttendance handles /mark_attendance: checks the day is
// collectable, snapshots the active employees and prompts for the first one.
func (b *Bot) HandleMarkAttendance(msg *tgbotapi.Message) {
	today := time.Now()

	if dateutil.IsRestDay(today) {
		b.send(msg.Chat.ID, "⛔ Sunday: Attendance not required")
		return
	}
	todayKey := dateutil.Key(today)
	isHoliday, err := b.holidays.Exists(todayKey)
	if err != nil {
		log.Printf("handlers: holiday lookup: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to start attendance")
		return
	}
	if isHoliday {
		b.send(msg.Chat.ID, "⛔ Today is a holiday")
		return
	}

	emps, err := b.employees.ListActive()
	if err != nil {
		log.Printf("handlers: list employees: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to start attendance")
		return
	}
	if len(emps) == 0 {
		b.send(msg.Chat.ID, "❌ No active employees")
		return
	}

	if replaced := b.sessions.Start(msg.From.ID, emps, todayKey); replaced != nil {
		log.Printf("handlers: discarded in-flight attendance session for operator %d", msg.From.ID)
	}

	first := emps[0]
	prompt := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(
		"🧑‍💼 *Employee #1: %s*\n📅 Date: %s", first.Name, dateutil.FormatLong(today)))
	prompt.ParseMode = tgbotapi.ModeMarkdown
	prompt.ReplyMarkup = decisionKeyboard(first.ID)
	if _, err := b.api.Send(prompt); err != nil {
		log.Printf("handlers: send failed: %v", err)
	}
}

// HandleAttendanceCallback consumes the Present/Absent button presses. The
// callback data carries the employee id, so a press from a stale keyboard
// cannot be mistaken for a decision on the current employee.
func (b *Bot) HandleAttendanceCallback(query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("handlers: answer callback: %v", err)
	}

	status, employeeID, ok := parseDecision(query.Data)
	if !ok || query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	next, done, err := b.sessions.Decide(query.From.ID, employeeID, status)
	switch {
	case errors.Is(err, session.ErrNoSession):
		b.send(chatID, "❌ No attendance session in progress. Use /mark_attendance")
		return
	case errors.Is(err, session.ErrReasonPending):
		b.send(chatID, "📝 Please send the absence reason first")
		return
	case errors.Is(err, session.ErrWrongEmployee):
		log.Printf("handlers: ignored stale decision %q from operator %d", query.Data, query.From.ID)
		return
	case err != nil:
		log.Printf("handlers: decision: %v", err)
		return
	}

	if status == models.StatusAbsent {
		edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, "📝 *Reason for absence:*")
		edit.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.api.Send(edit); err != nil {
			log.Printf("handlers: edit failed: %v", err)
		}
		return
	}

	if done {
		b.finalizeAttendance(query.From.ID, chatID)
		return
	}
	b.editPrompt(query.From.ID, chatID, query.Message.MessageID, *next)
}

// HandleReasonMessage consumes the free-text absence reason while one is
// pending.
func (b *Bot) HandleReasonMessage(msg *tgbotapi.Message) {
	next, done, err := b.sessions.Reason(msg.From.ID, msg.Text)
	if err != nil {
		// dispatch only routes text here while a reason is pending, so
		// this is a race with a restarted session
		log.Printf("handlers: reason: %v", err)
		return
	}

	b.send(msg.Chat.ID, "✅ Reason recorded")
	if done {
		b.finalizeAttendance(msg.From.ID, msg.Chat.ID)
		return
	}
	b.sendPrompt(msg.From.ID, msg.Chat.ID, *next)
}

// finalizeAttendance commits the session batch. Individual duplicate rows
// (raced with /multiday_absence) are skipped without touching siblings; the
// session is gone either way.
func (b *Bot) finalizeAttendance(operatorID, chatID int64) {
	records, err := b.sessions.Finish(operatorID)
	if err != nil {
		log.Printf("handlers: finalize: %v", err)
		return
	}

	inserted, err := b.attendance.InsertBatch(records)
	if err != nil {
		log.Printf("handlers: finalize insert: %v", err)
	}
	if inserted < len(records) {
		log.Printf("handlers: finalize skipped %d already-recorded rows", len(records)-inserted)
	}

	date := time.Now()
	if len(records) > 0 {
		if t, err := time.Parse(dateutil.ISO, records[0].Date); err == nil {
			date = t
		}
	}
	b.sendMarkdown(chatID, fmt.Sprintf(
		"🎉 *Attendance for %s recorded successfully!*", dateutil.FormatLong(date)))
}

func (b *Bot) promptText(operatorID int64, emp models.Employee) string {
	pos, _, ok := b.sessions.Progress(operatorID)
	if !ok {
		pos = 0
	}
	return fmt.Sprintf("🧑‍💼 *Employee #%d: %s*", pos, emp.Name)
}

func (b *Bot) sendPrompt(operatorID, chatID int64, emp models.Employee) {
	prompt := tgbotapi.NewMessage(chatID, b.promptText(operatorID, emp))
	prompt.ParseMode = tgbotapi.ModeMarkdown
	prompt.ReplyMarkup = decisionKeyboard(emp.ID)
	if _, err := b.api.Send(prompt); err != nil {
		log.Printf("handlers: send failed: %v", err)
	}
}

func (b *Bot) editPrompt(operatorID, chatID int64, messageID int, emp models.Employee) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, b.promptText(operatorID, emp), decisionKeyboard(emp.ID))
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("handlers: edit failed: %v", err)
	}
}

func parseDecision(data string) (status string, employeeID uint, ok bool) {
	parts := strings.SplitN(data, "_", 2)
	if len(parts) != 2 {
		return "", 0, false
	}
	if parts[0] != models.StatusPresent && parts[0] != models.StatusAbsent {
		return "", 0, false
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return "", 0, false
	}
	return parts[0], uint(id), true
}
