package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/webwatchtech/telegram-attendance-bot/dateutil"
	"github.com/webwatchtech/telegram-attendance-bot/repositories"
)

// HandleMarkHoliday handles /mark_holiday [description], declaring today a
// holiday.
func (b *Bot) HandleMarkHoliday(msg *tgbotapi.Message) {
	description := strings.TrimSpace(msg.CommandArguments())
	if description == "" {
		b.send(msg.Chat.ID, "Usage: /mark_holiday \"Holiday Name\"")
		return
	}

	today := time.Now()
	err := b.holidays.Create(dateutil.Key(today), description)
	if errors.Is(err, repositories.ErrDuplicate) {
		b.send(msg.Chat.ID, fmt.Sprintf("⚠️ %s is already marked as a holiday", dateutil.FormatLong(today)))
		return
	}
	if err != nil {
		log.Printf("handlers: mark holiday: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to mark holiday")
		return
	}
	b.send(msg.Chat.ID, fmt.Sprintf("🎉 Marked %s as holiday: %s", dateutil.FormatLong(today), description))
}

// HandleListHolidays handles /list_holidays.
func (b *Bot) HandleListHolidays(msg *tgbotapi.Message) {
	hols, err := b.holidays.List()
	if err != nil {
		log.Printf("handlers: list holidays: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to list holidays")
		return
	}
	if len(hols) == 0 {
		b.send(msg.Chat.ID, "No holidays scheduled")
		return
	}

	var sb strings.Builder
	sb.WriteString("🗓️ *Upcoming Holidays*")
	for _, h := range hols {
		fmt.Fprintf(&sb, "\n- %s: %s", dateutil.KeyToDMY(h.Date), h.Description)
	}
	b.sendMarkdown(msg.Chat.ID, sb.String())
}

// HandleRemoveHoliday handles /remove_holiday [DD-MM-YYYY].
func (b *Bot) HandleRemoveHoliday(msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		b.send(msg.Chat.ID, "Usage: /remove_holiday DD-MM-YYYY")
		return
	}

	date, err := dateutil.ParseDMY(arg)
	if err != nil {
		b.send(msg.Chat.ID, "❌ Invalid date format. Use DD-MM-YYYY")
		return
	}

	err = b.holidays.DeleteByDate(dateutil.Key(date))
	if errors.Is(err, repositories.ErrNotFound) {
		b.send(msg.Chat.ID, fmt.Sprintf("❌ No holiday found on %s", dateutil.FormatLong(date)))
		return
	}
	if err != nil {
		log.Printf("handlers: remove holiday: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to remove holiday")
		return
	}
	b.send(msg.Chat.ID, fmt.Sprintf("✅ Removed holiday on %s", dateutil.FormatLong(date)))
}
