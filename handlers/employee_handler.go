package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/webwatchtech/telegram-attendance-bot/repositories"
)

// HandleAddEmployee handles /add_employee [name].
func (b *Bot) HandleAddEmployee(msg *tgbotapi.Message) {
	name := strings.TrimSpace(msg.CommandArguments())
	if name == "" {
		b.send(msg.Chat.ID, "Usage: /add_employee John Doe")
		return
	}

	if _, err := b.employees.Create(name); err != nil {
		log.Printf("handlers: add employee: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to add employee")
		return
	}
	b.invalidateShortIDs()
	b.send(msg.Chat.ID, fmt.Sprintf("✅ Added new employee: %s", name))
}

// HandleListEmployees handles /list_employees and (re)builds the #n cache.
func (b *Bot) HandleListEmployees(msg *tgbotapi.Message) {
	emps, err := b.employees.ListActive()
	if err != nil {
		log.Printf("handlers: list employees: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to list employees")
		return
	}
	if len(emps) == 0 {
		b.send(msg.Chat.ID, "No employees found")
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 *Employee List*\n")
	ids := make([]uint, len(emps))
	for i, emp := range emps {
		ids[i] = emp.ID
		fmt.Fprintf(&sb, "#%d: %s\n", i+1, emp.Name)
	}
	b.setShortIDs(msg.From.ID, ids)
	b.sendMarkdown(msg.Chat.ID, sb.String())
}

// HandleRemoveEmployee handles /remove_employee [#n]. The employee row is
// kept with active=false so old attendance stays attributable.
func (b *Bot) HandleRemoveEmployee(msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		b.send(msg.Chat.ID, "Usage: /remove_employee [id]")
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

	if err := b.employees.Deactivate(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			b.send(msg.Chat.ID, "❌ Employee not found")
			return
		}
		log.Printf("handlers: remove employee: %v", err)
		b.send(msg.Chat.ID, "❌ Failed to remove employee")
		return
	}
	b.invalidateShortIDs()
	b.send(msg.Chat.ID, fmt.Sprintf("✅ Removed employee %s", arg))
}
