package repositories

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/webwatchtech/telegram-attendance-bot/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}, &models.Attendance{}, &models.Holiday{}))
	return db
}

func TestEmployeeLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)

	alice, err := repo.Create("Alice")
	require.NoError(t, err)
	bob, err := repo.Create("Bob")
	require.NoError(t, err)

	active, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 2)
	// insertion order
	assert.Equal(t, alice.ID, active[0].ID)
	assert.Equal(t, bob.ID, active[1].ID)

	require.NoError(t, repo.Deactivate(alice.ID))
	active, err = repo.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, bob.ID, active[0].ID)

	// soft delete: the row is still resolvable
	got, err := repo.Get(alice.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, "Alice", got.Name)

	// already inactive and unknown ids both report not found
	assert.ErrorIs(t, repo.Deactivate(alice.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Deactivate(999), ErrNotFound)
	_, err = repo.Get(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttendanceUniquePerDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)

	first := []models.Attendance{{EmployeeID: 1, Date: "2025-07-15", Status: models.StatusPresent}}
	n, err := repo.InsertBatch(first)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// same key again: skipped, not an error, nothing overwritten
	dup := []models.Attendance{{EmployeeID: 1, Date: "2025-07-15", Status: models.StatusAbsent, Reason: "late"}}
	n, err = repo.InsertBatch(dup)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	rec, err := repo.FindOne(1, "2025-07-15")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, models.StatusPresent, rec.Status)
}

// One colliding row in a batch must not take its siblings down with it.
func TestInsertBatchPartialConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)

	_, err := repo.InsertBatch([]models.Attendance{
		{EmployeeID: 2, Date: "2025-07-15", Status: models.StatusAbsent, Reason: "vacation"},
	})
	require.NoError(t, err)

	n, err := repo.InsertBatch([]models.Attendance{
		{EmployeeID: 1, Date: "2025-07-15", Status: models.StatusPresent},
		{EmployeeID: 2, Date: "2025-07-15", Status: models.StatusPresent}, // collides
		{EmployeeID: 3, Date: "2025-07-15", Status: models.StatusPresent},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := repo.FindOne(3, "2025-07-15")
	require.NoError(t, err)
	require.NotNil(t, rec, "sibling after the conflict must be persisted")

	rec, err = repo.FindOne(2, "2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAbsent, rec.Status, "pre-existing row untouched")
}

func TestAggregateByEmployee(t *testing.T) {
	db := newTestDB(t)
	emps := NewEmployeeRepository(db)
	repo := NewAttendanceRepository(db)

	alice, _ := emps.Create("Alice")
	bob, _ := emps.Create("Bob")

	_, err := repo.InsertBatch([]models.Attendance{
		{EmployeeID: alice.ID, Date: "2025-07-14", Status: models.StatusPresent},
		{EmployeeID: alice.ID, Date: "2025-07-15", Status: models.StatusPresent},
		{EmployeeID: bob.ID, Date: "2025-07-14", Status: models.StatusAbsent, Reason: "sick"},
		{EmployeeID: bob.ID, Date: "2025-07-15", Status: models.StatusPresent},
		// outside the queried range
		{EmployeeID: alice.ID, Date: "2025-06-30", Status: models.StatusAbsent},
	})
	require.NoError(t, err)

	totals, err := repo.AggregateByEmployee("2025-07-01", "2025-07-31")
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, EmployeeTotals{EmployeeID: alice.ID, Name: "Alice", Present: 2, Absent: 0}, totals[0])
	assert.Equal(t, EmployeeTotals{EmployeeID: bob.ID, Name: "Bob", Present: 1, Absent: 1}, totals[1])
}

func TestDailyQueries(t *testing.T) {
	db := newTestDB(t)
	emps := NewEmployeeRepository(db)
	repo := NewAttendanceRepository(db)

	alice, _ := emps.Create("Alice")
	bob, _ := emps.Create("Bob")
	_, err := repo.InsertBatch([]models.Attendance{
		{EmployeeID: alice.ID, Date: "2025-07-15", Status: models.StatusPresent},
		{EmployeeID: bob.ID, Date: "2025-07-15", Status: models.StatusAbsent, Reason: "sick"},
	})
	require.NoError(t, err)

	rows, err := repo.FindByDate("2025-07-15")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "sick", rows[1].Reason)

	present, err := repo.CountByDateStatus("2025-07-15", models.StatusPresent)
	require.NoError(t, err)
	absent, err := repo.CountByDateStatus("2025-07-15", models.StatusAbsent)
	require.NoError(t, err)
	assert.Equal(t, int64(1), present)
	assert.Equal(t, int64(1), absent)

	dates, err := repo.DistinctDates("2025-07-01", "2025-07-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-15"}, dates)
}

func TestTopReasonsSkipEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)

	_, err := repo.InsertBatch([]models.Attendance{
		{EmployeeID: 1, Date: "2025-07-01", Status: models.StatusAbsent, Reason: "sick"},
		{EmployeeID: 1, Date: "2025-07-02", Status: models.StatusAbsent, Reason: "sick"},
		{EmployeeID: 1, Date: "2025-07-03", Status: models.StatusAbsent, Reason: "vacation"},
		{EmployeeID: 1, Date: "2025-07-04", Status: models.StatusAbsent, Reason: ""},
		{EmployeeID: 2, Date: "2025-07-01", Status: models.StatusAbsent, Reason: "travel"},
		{EmployeeID: 2, Date: "2025-07-02", Status: models.StatusAbsent, Reason: "travel"},
		{EmployeeID: 2, Date: "2025-07-03", Status: models.StatusAbsent, Reason: "travel"},
		{EmployeeID: 3, Date: "2025-07-01", Status: models.StatusPresent, Reason: "ignored"},
	})
	require.NoError(t, err)

	reasons, err := repo.TopReasons("2025-07-01", "2025-07-31", 3)
	require.NoError(t, err)
	require.Len(t, reasons, 3)
	assert.Equal(t, ReasonCount{Reason: "travel", Count: 3}, reasons[0])
	assert.Equal(t, ReasonCount{Reason: "sick", Count: 2}, reasons[1])
	assert.Equal(t, ReasonCount{Reason: "vacation", Count: 1}, reasons[2])
}

func TestRecentAbsences(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)

	_, err := repo.InsertBatch([]models.Attendance{
		{EmployeeID: 1, Date: "2025-07-01", Status: models.StatusAbsent, Reason: "a"},
		{EmployeeID: 1, Date: "2025-07-03", Status: models.StatusAbsent, Reason: "b"},
		{EmployeeID: 1, Date: "2025-07-02", Status: models.StatusAbsent, Reason: "c"},
		{EmployeeID: 1, Date: "2025-07-04", Status: models.StatusPresent},
	})
	require.NoError(t, err)

	rows, err := repo.RecentAbsences(1, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-07-03", rows[0].Date)
	assert.Equal(t, "2025-07-02", rows[1].Date)
}

func TestHolidayRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewHolidayRepository(db)

	require.NoError(t, repo.Create("2025-07-10", "Founders Day"))
	assert.ErrorIs(t, repo.Create("2025-07-10", "Again"), ErrDuplicate)
	require.NoError(t, repo.Create("2025-01-01", "New Year"))

	hols, err := repo.List()
	require.NoError(t, err)
	require.Len(t, hols, 2)
	assert.Equal(t, "2025-01-01", hols[0].Date)

	inJuly, err := repo.ListRange("2025-07-01", "2025-07-31")
	require.NoError(t, err)
	require.Len(t, inJuly, 1)
	assert.Equal(t, "Founders Day", inJuly[0].Description)

	set, err := repo.Set("2025-01-01", "2025-12-31")
	require.NoError(t, err)
	assert.True(t, set["2025-07-10"])
	assert.False(t, set["2025-07-11"])

	exists, err := repo.Exists("2025-07-10")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByDate("2025-07-10"))
	assert.ErrorIs(t, repo.DeleteByDate("2025-07-10"), ErrNotFound)
}
