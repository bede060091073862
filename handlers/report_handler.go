package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/webwatchtech/telegram-attendance-bot/dateutil"
	"github.com/webwatchtech/telegram-attendance-bot/models"
	"github.com/webwatchtech/telegram-attendance-bot/reports"
	"github.com/webwatchtech/telegram-attendance-bot/repositories"
)

// HandleDailyReport handles /daily_report (today).
func (b *Bot) HandleDailyReport(msg *tgbotapi.Message) {
	b.dateSummary(msg.Chat.ID, time.Now(), "📊 *Daily Report")
}

// HandleDateReport handles /date_report [DD-MM-YYYY].
func (b *Bot) HandleDateReport(msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		b.send(msg.Chat.ID, "Usage: /date_report DD-MM-YYYY")
		return
	}
	date, err := dateutil.ParseDMY(arg)
	if err != nil {
		b.send(msg.Chat.ID, "❌ Invalid date format. Use DD-MM-YYYY")
		return
	}
	b.dateSummary(msg.Chat.ID, date, "📅 *Date Report")
}

func (b *Bot) dateSummary(chatID int64, date time.Time, title string) {
	sum, err := b.reporter.Daily(date)
	if err != nil {
		log.Printf("handlers: daily report: %v", err)
		b.send(chatID, "❌ Failed to generate report")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - %s*\n", title, dateutil.FormatLong(date))
	fmt.Fprintf(&sb, "✅ Present: %d | ❌ Absent: %d\n\n", sum.Present, sum.Absent)

	if len(sum.Rows) == 0 {
		sb.WriteString("No attendance recorded on this date")
	} else {
		sb.WriteString("🧑‍💼 *Employee Details:*\n")
		for _, row := range sum.Rows {
			mark := "✅"
			if row.Status == models.StatusAbsent {
				mark = "❌"
			}
			fmt.Fprintf(&sb, "- %s: %s", row.Name, mark)
			if row.Reason != "" {
				fmt.Fprintf(&sb, " (%s)", row.Reason)
			}
			sb.WriteString("\n")
		}
	}
	b.sendMarkdown(chatID, sb.String())
}

// HandleLast7Days handles /last_7_days.
func (b *Bot) HandleLast7Days(msg *tgbotapi.Message) {
	end := time.Now()
	b.periodSummary(msg.Chat.ID, end.AddDate(0, 0, -6), end, "7 Days")
}

// HandleLast30Days handles /last_30_days.
func (b *Bot) HandleLast30Days(msg *tgbotapi.Message) {
	end := time.Now()
	b.periodSummary(msg.Chat.ID, end.AddDate(0, 0, -29), end, "30 Days")
}

func (b *Bot) periodSummary(chatID int64, start, end time.Time, name string) {
	sum, err := b.reporter.Period(start, end)
	if err != nil {
		log.Printf("handlers: period report: %v", err)
		b.send(chatID, "❌ Failed to generate report")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📈 *%s Report (%d Days)*\n", name, sum.Days)
	fmt.Fprintf(&sb, "📅 Period: %s to %s\n", dateutil.FormatShort(start), dateutil.FormatShort(end))
	fmt.Fprintf(&sb, "✅ Total Present: %d | ❌ Total Absent: %d\n\n", sum.TotalPresent, sum.TotalAbsent)

	ranked := reports.RankByRate(sum.Employees)

	sb.WriteString("🏆 *Top Performers*\n")
	for i, emp := range topN(ranked, 3) {
		fmt.Fprintf(&sb, "%d. %s: %.0f%%\n", i+1, emp.Name, emp.Rate)
	}

	sb.WriteString("\n⚠️ *Needs Improvement*\n")
	worst := make([]reports.EmployeeStat, len(ranked))
	copy(worst, ranked)
	for i, j := 0, len(worst)-1; i < j; i, j = i+1, j-1 {
		worst[i], worst[j] = worst[j], worst[i]
	}
	for i, emp := range topN(worst, 3) {
		fmt.Fprintf(&sb, "%d. %s: %.0f%%\n", i+1, emp.Name, emp.Rate)
	}

	if total := sum.TotalPresent + sum.TotalAbsent; total > 0 {
		sb.WriteString("\n📊 *Attendance Distribution*\n")
		fmt.Fprintf(&sb, "✅ Present: %d (%.0f%%)\n", sum.TotalPresent, float64(sum.TotalPresent)/float64(total)*100)
		fmt.Fprintf(&sb, "❌ Absent: %d (%.0f%%)\n", sum.TotalAbsent, float64(sum.TotalAbsent)/float64(total)*100)
	}
	b.sendMarkdown(chatID, sb.String())
}

// HandleMonthlyReport handles /monthly_report for the current calendar month.
func (b *Bot) HandleMonthlyReport(msg *tgbotapi.Message) {
	now := time.Now()
	sum, err := b.reporter.Monthly(now)
	if err != nil {
		log.Printf("handlers: monthly report: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to generate report")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📈 *Monthly Report - %s*\n", now.Format("January 2006"))
	fmt.Fprintf(&sb, "📅 Period: %s to %s\n", dateutil.FormatShort(sum.Start), dateutil.FormatShort(sum.End))
	fmt.Fprintf(&sb, "📊 Working Days: %d | Holidays: %d\n", sum.WorkingDays, len(sum.Holidays))
	fmt.Fprintf(&sb, "✅ Total Present: %d | ❌ Total Absent: %d\n\n", sum.TotalPresent, sum.TotalAbsent)

	sb.WriteString("👥 *Employee Performance:*\n")
	for _, emp := range sum.Ranking {
		fmt.Fprintf(&sb, "- %s: %d/%d (%.0f%%)", emp.Name, emp.Present, sum.WorkingDays, emp.Rate)
		if emp.Absent > 0 {
			fmt.Fprintf(&sb, " | ❌ Absences: %d", emp.Absent)
		}
		sb.WriteString("\n")
	}

	if len(sum.TopReasons) > 0 {
		sb.WriteString("\n❌ *Top Absence Reasons:*\n")
		for _, rc := range sum.TopReasons {
			plural := ""
			if rc.Count > 1 {
				plural = "s"
			}
			fmt.Fprintf(&sb, "- %s: %d time%s\n", rc.Reason, rc.Count, plural)
		}
	}

	if len(sum.Holidays) > 0 {
		sb.WriteString("\n🗓️ *Holidays:*\n")
		for _, h := range sum.Holidays {
			fmt.Fprintf(&sb, "- %s: %s\n", dateutil.KeyToDMY(h.Date), h.Description)
		}
	}
	b.sendMarkdown(msg.Chat.ID, sb.String())
}

// HandleEmployeeReport handles /employee_report [#n]: trailing 30-day
// totals, the 7-day trend strip and the latest absences.
func (b *Bot) HandleEmployeeReport(msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		b.send(msg.Chat.ID, "Usage: /employee_report [ID]")
		return
	}

	id, ok, loaded := b.resolveShortID(msg.From.ID, arg)
	if !loaded {
		b.send(msg.Chat.ID, "❌ Employee list not loaded. Use /list_employees first.")
		return
	}
	if !ok {
		b.send(msg.Chat.ID, "❌ Invalid employee ID")
		return
	}

	sum, err := b.reporter.Employee(id, time.Now(), 30)
	if errors.Is(err, repositories.ErrNotFound) {
		b.send(msg.Chat.ID, "❌ Employee not found")
		return
	}
	if err != nil {
		log.Printf("handlers: employee report: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to generate report")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 *Employee Report: %s*\n", sum.Employee.Name)
	fmt.Fprintf(&sb, "🆔 Employee ID: #%s\n\n", strings.TrimPrefix(arg, "#"))
	fmt.Fprintf(&sb, "📅 Period: %s to %s\n", dateutil.FormatShort(sum.Start), dateutil.FormatShort(sum.End))
	fmt.Fprintf(&sb, "✅ Present: %d days\n", sum.Present)
	fmt.Fprintf(&sb, "❌ Absent: %d days\n", sum.Absent)
	fmt.Fprintf(&sb, "📊 Attendance Rate: %.0f%%\n\n", sum.Rate)

	sb.WriteString("📈 *Weekly Trend:*\n")
	for _, mark := range sum.Trend {
		switch mark {
		case reports.TrendPresent:
			sb.WriteString("✅")
		case reports.TrendAbsent:
			sb.WriteString("❌")
		default:
			sb.WriteString("⬜")
		}
	}
	sb.WriteString("\n\n📝 *Recent Absences:*\n")

	if len(sum.Absences) == 0 {
		sb.WriteString("No absences in the last 30 days\n")
	} else {
		for i, a := range sum.Absences {
			reason := a.Reason
			if reason == "" {
				reason = "No reason provided"
			}
			fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, dateutil.KeyToDMY(a.Date), reason)
		}
	}
	b.sendMarkdown(msg.Chat.ID, sb.String())
}

func topN(stats []reports.EmployeeStat, n int) []reports.EmployeeStat {
	if len(stats) < n {
		return stats
	}
	return stats[:n]
}
