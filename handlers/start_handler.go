package handlers

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Sent without a parse mode: the command names contain underscores, which
// telegram's markdown parser would reject as unterminated italics.
const welcomeText = `🌟 Welcome to Attendance Tracker!

Your all-in-one solution for staff management

🚀 Quick Start Guide
1. Add team: /add_employee [Name]
2. Record attendance: /mark_attendance
3. View reports: /daily_report or /monthly_report

Type /help for full command list`

const helpText = `🔍 Attendance Bot Help Menu

Employee Management
▫️ /add_employee [Name] - Add new staff
▫️ /list_employees - Show active team
▫️ /remove_employee [ID] - Remove staff

Attendance Tracking
▫️ /mark_attendance - Record daily attendance
▫️ /multiday_absence [ID] [Start] [End] [Reason] - Bulk absence
  Example: /multiday_absence 2 15-07-2025 18-07-2025 Vacation

Reports
▫️ /daily_report - Today's summary
▫️ /date_report [DD-MM-YYYY] - Specific date report
▫️ /last_7_days - Weekly summary
▫️ /last_30_days - Monthly summary
▫️ /monthly_report - Calendar month report
▫️ /employee_report [ID] - Individual performance

Holiday Management
▫️ /mark_holiday [Description] - Mark today as holiday
▫️ /list_holidays - View all holidays
▫️ /remove_holiday [DD-MM-YYYY] - Delete holiday

📅 All dates use DD-MM-YYYY format
💡 Tip: Use /list_employees to get staff IDs`

func (b *Bot) HandleStart(msg *tgbotapi.Message) {
	b.send(msg.Chat.ID, welcomeText)
}

func (b *Bot) HandleHelp(msg *tgbotapi.Message) {
	b.send(msg.Chat.ID, helpText)
}
