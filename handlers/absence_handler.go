package handlers

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/webwatchtech/telegram-attendance-bot/dateutil"
	"github.com/webwatchtech/telegram-attendance-bot/models"
)

const multidayUsage = "Usage: /multiday_absence [id] [start_DD-MM-YYYY] [end_DD-MM-YYYY] [reason]"

// HandleMultidayAbsence handles /multiday_absence: one absent record per
// working day in the range, skipping Sundays and holidays, submitted as a
// best-effort batch (days already recorded are left alone).
func (b *Bot) HandleMultidayAbsence(msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 3 {
		b.send(msg.Chat.ID, multidayUsage)
		return
	}

	id, ok, loaded := b.resolveShortID(msg.From.ID, args[0])
	if !loaded {
		b.send(msg.Chat.ID, "❌ Employee list not loaded. Use /list_employees first.")
		return
	}
	if !ok {
		b.send(msg.Chat.ID, "❌ Invalid employee ID")
		return
	}

	start, err := dateutil.ParseDMY(args[1])
	if err != nil {
		b.send(msg.Chat.ID, "❌ Invalid start date format. Use DD-MM-YYYY")
		return
	}
	end, err := dateutil.ParseDMY(args[2])
	if err != nil {
		b.send(msg.Chat.ID, "❌ Invalid end date format. Use DD-MM-YYYY")
		return
	}
	if start.After(end) {
		b.send(msg.Chat.ID, "❌ Error: Start date must be before end date")
		return
	}

	reason := "Not specified"
	if len(args) > 3 {
		reason = strings.Join(args[3:], " ")
	}

	holidaySet, err := b.holidays.Set(dateutil.Key(start), dateutil.Key(end))
	if err != nil {
		log.Printf("handlers: multiday absence: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to record absence")
		return
	}

	days := dateutil.WorkingDays(start, end, holidaySet)
	records := make([]models.Attendance, 0, len(days))
	for _, day := range days {
		records = append(records, models.Attendance{
			EmployeeID: id,
			Date:       day,
			Status:     models.StatusAbsent,
			Reason:     reason,
		})
	}

	inserted, err := b.attendance.InsertBatch(records)
	if err != nil {
		log.Printf("handlers: multiday absence insert: %v", err)
	}
	if inserted < len(records) {
		log.Printf("handlers: multiday absence skipped %d already-recorded days", len(records)-inserted)
	}

	b.send(msg.Chat.ID, fmt.Sprintf(
		"✅ Marked %d days absence for employee %s from %s to %s",
		inserted, args[0], dateutil.FormatShort(start), dateutil.FormatShort(end)))
}
