// Package session drives the one-employee-at-a-time attendance collection
// flow. Nothing here touches the database: a session accumulates decisions
// in memory and hands the finished batch back to the caller.
package session

import (
	"errors"
	"sync"

	"github.com/webwatchtech/telegram-attendance-bot/models"
)

var (
	// ErrNoSession: the operator has no flow in progress.
	ErrNoSession = errors.New("no attendance session in progress")
	// ErrWrongEmployee: the decision references an employee other than the
	// one at the cursor (stale or forged callback).
	ErrWrongEmployee = errors.New("decision does not match current employee")
	// ErrReasonPending: a decision arrived while an absence reason is owed.
	ErrReasonPending = errors.New("absence reason pending")
	// ErrNoReasonPending: reason text arrived but no absence is open.
	ErrNoReasonPending = errors.New("no absence reason expected")
)

// Entry is one employee's collected status for the session date.
type Entry struct {
	Status string
	Reason string
}

// Session is the in-flight state of one attendance pass: the active-employee
// snapshot taken at start, a cursor, and the accumulated entries. It lives
// only in memory; an abandoned session sits until the next Start replaces it.
type Session struct {
	Date           string // storage key of the day being recorded
	Employees      []models.Employee
	Index          int
	AwaitingReason bool
	Entries        map[uint]Entry
}

// Current returns the employee at the cursor.
func (s *Session) Current() models.Employee { return s.Employees[s.Index] }

// Done reports whether every snapshotted employee has been decided.
func (s *Session) Done() bool { return s.Index >= len(s.Employees) }

// Manager owns the per-operator sessions. Every transition runs under one
// mutex: the state machine itself is not synchronized, and updates may be
// dispatched concurrently.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Start snapshots the employee list and opens a session for the operator.
// An in-flight session for the same operator is replaced unconditionally;
// the previous one is returned so the caller can log the discard.
func (m *Manager) Start(operatorID int64, employees []models.Employee, date string) (replaced *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	replaced = m.sessions[operatorID]
	snapshot := make([]models.Employee, len(employees))
	copy(snapshot, employees)
	m.sessions[operatorID] = &Session{
		Date:      date,
		Employees: snapshot,
		Entries:   make(map[uint]Entry, len(snapshot)),
	}
	return replaced
}

// Decide records present/absent for the employee at the cursor. The caller
// passes the employee id its UI referenced; anything but the current one is
// rejected with no state change. On present the cursor advances; on absent
// the session waits for Reason. Returns the next employee to prompt for, or
// done=true when the pass is complete.
func (m *Manager) Decide(operatorID int64, employeeID uint, status string) (next *models.Employee, done bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[operatorID]
	if !ok {
		return nil, false, ErrNoSession
	}
	if s.AwaitingReason {
		return nil, false, ErrReasonPending
	}
	if s.Done() || s.Current().ID != employeeID {
		return nil, false, ErrWrongEmployee
	}

	s.Entries[employeeID] = Entry{Status: status}
	if status == models.StatusAbsent {
		s.AwaitingReason = true
		return nil, false, nil
	}
	return s.advance()
}

// Reason attaches the absence reason for the employee at the cursor and
// advances. Empty text is kept as an empty reason, not rejected.
func (m *Manager) Reason(operatorID int64, text string) (next *models.Employee, done bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[operatorID]
	if !ok {
		return nil, false, ErrNoSession
	}
	if !s.AwaitingReason {
		return nil, false, ErrNoReasonPending
	}

	id := s.Current().ID
	e := s.Entries[id]
	e.Reason = text
	s.Entries[id] = e
	s.AwaitingReason = false
	return s.advance()
}

func (s *Session) advance() (next *models.Employee, done bool, err error) {
	s.Index++
	if s.Done() {
		return nil, true, nil
	}
	cur := s.Current()
	return &cur, false, nil
}

// Progress returns the 1-based cursor position and the snapshot size.
func (m *Manager) Progress(operatorID int64) (pos, total int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[operatorID]
	if !ok {
		return 0, 0, false
	}
	return s.Index + 1, len(s.Employees), true
}

// AwaitingReason reports whether the operator owes a reason text.
func (m *Manager) AwaitingReason(operatorID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[operatorID]
	return ok && s.AwaitingReason
}

// Finish tears the session down and returns its batch as attendance rows,
// in snapshot order. The session is gone regardless of what the caller does
// with the rows.
func (m *Manager) Finish(operatorID int64) ([]models.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[operatorID]
	if !ok {
		return nil, ErrNoSession
	}
	delete(m.sessions, operatorID)

	records := make([]models.Attendance, 0, len(s.Entries))
	for _, emp := range s.Employees {
		e, ok := s.Entries[emp.ID]
		if !ok {
			continue
		}
		records = append(records, models.Attendance{
			EmployeeID: emp.ID,
			Date:       s.Date,
			Status:     e.Status,
			Reason:     e.Reason,
		})
	}
	return records, nil
}
