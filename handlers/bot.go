package handlers

import (
	"log"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/webwatchtech/telegram-attendance-bot/reports"
	"github.com/webwatchtech/telegram-attendance-bot/repositories"
	"github.com/webwatchtech/telegram-attendance-bot/session"
)

// Bot holds the chat-facing handlers and their collaborators. One instance
// serves the single operator.
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *session.Manager

	employees  *repositories.EmployeeRepository
	attendance *repositories.AttendanceRepository
	holidays   *repositories.HolidayRepository
	reporter   *reports.Reporter

	// shortIDs is the #n → employee id mapping produced by the last
	// /list_employees, keyed per operator. It is a derived cache: add and
	// remove invalidate it, and commands that consume it demand a fresh
	// listing when it is missing.
	mu       sync.Mutex
	shortIDs map[int64][]uint
}

func NewBot(
	api *tgbotapi.BotAPI,
	sessions *session.Manager,
	employees *repositories.EmployeeRepository,
	attendance *repositories.AttendanceRepository,
	holidays *repositories.HolidayRepository,
	reporter *reports.Reporter,
) *Bot {
	return &Bot{
		api:        api,
		sessions:   sessions,
		employees:  employees,
		attendance: attendance,
		holidays:   holidays,
		reporter:   reporter,
		shortIDs:   make(map[int64][]uint),
	}
}

// AwaitingReason reports whether plain text from the operator should be
// consumed as an absence reason.
func (b *Bot) AwaitingReason(operatorID int64) bool {
	return b.sessions.AwaitingReason(operatorID)
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("handlers: send failed: %v", err)
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("handlers: send failed: %v", err)
	}
}

func (b *Bot) setShortIDs(operatorID int64, ids []uint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shortIDs[operatorID] = ids
}

func (b *Bot) invalidateShortIDs() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shortIDs = make(map[int64][]uint)
}

// resolveShortID maps "#n" (or "n") back to the employee id from the last
// listing. loaded=false means the operator must run /list_employees first.
func (b *Bot) resolveShortID(operatorID int64, arg string) (id uint, ok, loaded bool) {
	b.mu.Lock()
	ids := b.shortIDs[operatorID]
	b.mu.Unlock()

	if len(ids) == 0 {
		return 0, false, false
	}
	if len(arg) > 0 && arg[0] == '#' {
		arg = arg[1:]
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(ids) {
		return 0, false, true
	}
	return ids[n-1], true, true
}
