package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webwatchtech/telegram-attendance-bot/models"
)

const op int64 = 42

func twoEmployees() []models.Employee {
	return []models.Employee{
		{ID: 1, Name: "Alice", Active: true},
		{ID: 2, Name: "Bob", Active: true},
	}
}

// The full pass: present for the first employee, absent with a reason for
// the second, then a batch with exactly one entry per snapshotted employee.
func TestFullPass(t *testing.T) {
	m := NewManager()
	m.Start(op, twoEmployees(), "2025-07-15")

	next, done, err := m.Decide(op, 1, models.StatusPresent)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, uint(2), next.ID)

	next, done, err = m.Decide(op, 2, models.StatusAbsent)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Nil(t, next)
	assert.True(t, m.AwaitingReason(op))

	next, done, err = m.Reason(op, "sick")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Nil(t, next)

	records, err := m.Finish(op)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.Attendance{EmployeeID: 1, Date: "2025-07-15", Status: models.StatusPresent}, records[0])
	assert.Equal(t, models.Attendance{EmployeeID: 2, Date: "2025-07-15", Status: models.StatusAbsent, Reason: "sick"}, records[1])

	// session is destroyed by Finish
	_, _, err = m.Decide(op, 1, models.StatusPresent)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestActionsWithoutSession(t *testing.T) {
	m := NewManager()

	_, _, err := m.Decide(op, 1, models.StatusPresent)
	assert.ErrorIs(t, err, ErrNoSession)
	_, _, err = m.Reason(op, "sick")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = m.Finish(op)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, m.AwaitingReason(op))
}

// A decision for any employee other than the cursor is rejected and changes
// nothing.
func TestWrongEmployeeRejected(t *testing.T) {
	m := NewManager()
	m.Start(op, twoEmployees(), "2025-07-15")

	_, _, err := m.Decide(op, 2, models.StatusPresent)
	assert.ErrorIs(t, err, ErrWrongEmployee)
	_, _, err = m.Decide(op, 99, models.StatusAbsent)
	assert.ErrorIs(t, err, ErrWrongEmployee)

	// cursor still on the first employee
	pos, total, ok := m.Progress(op)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.Equal(t, 2, total)
}

func TestDecisionWhileReasonPending(t *testing.T) {
	m := NewManager()
	m.Start(op, twoEmployees(), "2025-07-15")

	_, _, err := m.Decide(op, 1, models.StatusAbsent)
	require.NoError(t, err)

	_, _, err = m.Decide(op, 2, models.StatusPresent)
	assert.ErrorIs(t, err, ErrReasonPending)
}

func TestReasonWithoutAbsence(t *testing.T) {
	m := NewManager()
	m.Start(op, twoEmployees(), "2025-07-15")

	_, _, err := m.Reason(op, "sick")
	assert.ErrorIs(t, err, ErrNoReasonPending)
}

// Empty reason text is kept, not rejected.
func TestEmptyReasonAccepted(t *testing.T) {
	m := NewManager()
	m.Start(op, []models.Employee{{ID: 1, Name: "Alice"}}, "2025-07-15")

	_, _, err := m.Decide(op, 1, models.StatusAbsent)
	require.NoError(t, err)
	_, done, err := m.Reason(op, "")
	require.NoError(t, err)
	require.True(t, done)

	records, err := m.Finish(op)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Reason)
	assert.Equal(t, models.StatusAbsent, records[0].Status)
}

// A second Start replaces the in-flight session and reports the discard.
func TestRestartReplacesSession(t *testing.T) {
	m := NewManager()
	require.Nil(t, m.Start(op, twoEmployees(), "2025-07-15"))

	_, _, err := m.Decide(op, 1, models.StatusPresent)
	require.NoError(t, err)

	replaced := m.Start(op, twoEmployees(), "2025-07-15")
	require.NotNil(t, replaced)
	assert.Equal(t, 1, replaced.Index)

	// fresh cursor: the first employee is current again
	pos, _, ok := m.Progress(op)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

// Sessions are keyed per operator.
func TestSessionsIndependentPerOperator(t *testing.T) {
	m := NewManager()
	m.Start(1, twoEmployees(), "2025-07-15")

	_, _, err := m.Decide(2, 1, models.StatusPresent)
	assert.ErrorIs(t, err, ErrNoSession)

	_, _, err = m.Decide(1, 1, models.StatusPresent)
	assert.NoError(t, err)
}

// The snapshot is a copy: mutating the caller's slice after Start must not
// leak into the session.
func TestSnapshotIsolation(t *testing.T) {
	m := NewManager()
	emps := twoEmployees()
	m.Start(op, emps, "2025-07-15")
	emps[0].ID = 999

	_, _, err := m.Decide(op, 1, models.StatusPresent)
	assert.NoError(t, err)
}
