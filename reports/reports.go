// Package reports is the read side: every summary is recomputed from the
// attendance table on each call.
package reports

import (
	"sort"
	"time"

	"github.com/webwatchtech/telegram-attendance-bot/dateutil"
	"github.com/webwatchtech/telegram-attendance-bot/models"
	"github.com/webwatchtech/telegram-attendance-bot/repositories"
)

// Trend marks for the 7-day strip. NoRecord is not the same as absent: the
// day may have been a holiday or simply never collected.
const (
	TrendPresent  = "present"
	TrendAbsent   = "absent"
	TrendNoRecord = "none"
)

type DailySummary struct {
	Date    time.Time
	Present int64
	Absent  int64
	Rows    []repositories.DailyRow
}

// EmployeeStat is one employee's totals over a period. Rate is a percentage;
// an employee with no records in range rates 0, never a division fault.
type EmployeeStat struct {
	EmployeeID uint
	Name       string
	Present    int
	Absent     int
	Rate       float64
}

type PeriodSummary struct {
	Start, End   time.Time
	Days         int
	TotalPresent int
	TotalAbsent  int
	Employees    []EmployeeStat
}

type MonthlySummary struct {
	PeriodSummary
	WorkingDays int
	Holidays    []models.Holiday
	// Ranking is Employees re-sorted by rate descending; ties keep
	// ascending employee id (the aggregate query's order, sort is stable).
	Ranking    []EmployeeStat
	TopReasons []repositories.ReasonCount
}

type EmployeeSummary struct {
	Employee   models.Employee
	Start, End time.Time
	Present    int
	Absent     int
	Rate       float64
	Trend      [7]string // oldest first, ending at End
	Absences   []models.Attendance
}

type Reporter struct {
	attendance *repositories.AttendanceRepository
	holidays   *repositories.HolidayRepository
	employees  *repositories.EmployeeRepository
}

func NewReporter(
	attendance *repositories.AttendanceRepository,
	holidays *repositories.HolidayRepository,
	employees *repositories.EmployeeRepository,
) *Reporter {
	return &Reporter{attendance: attendance, holidays: holidays, employees: employees}
}

// RankByRate returns a copy of stats sorted by rate descending. The sort is
// stable, so ties keep the input order — ascending employee id, as produced
// by the aggregate query.
func RankByRate(stats []EmployeeStat) []EmployeeStat {
	out := make([]EmployeeStat, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rate > out[j].Rate
	})
	return out
}

func rate(present, absent int) float64 {
	total := present + absent
	if total == 0 {
		return 0
	}
	return float64(present) / float64(total) * 100
}

func (r *Reporter) Daily(date time.Time) (*DailySummary, error) {
	key := dateutil.Key(date)
	rows, err := r.attendance.FindByDate(key)
	if err != nil {
		return nil, err
	}
	present, err := r.attendance.CountByDateStatus(key, models.StatusPresent)
	if err != nil {
		return nil, err
	}
	absent, err := r.attendance.CountByDateStatus(key, models.StatusAbsent)
	if err != nil {
		return nil, err
	}
	return &DailySummary{Date: date, Present: present, Absent: absent, Rows: rows}, nil
}

func (r *Reporter) Period(start, end time.Time) (*PeriodSummary, error) {
	totals, err := r.attendance.AggregateByEmployee(dateutil.Key(start), dateutil.Key(end))
	if err != nil {
		return nil, err
	}

	sum := &PeriodSummary{
		Start: start,
		End:   end,
		Days:  int(end.Sub(start).Hours()/24) + 1,
	}
	for _, t := range totals {
		sum.TotalPresent += t.Present
		sum.TotalAbsent += t.Absent
		sum.Employees = append(sum.Employees, EmployeeStat{
			EmployeeID: t.EmployeeID,
			Name:       t.Name,
			Present:    t.Present,
			Absent:     t.Absent,
			Rate:       rate(t.Present, t.Absent),
		})
	}
	return sum, nil
}

func (r *Reporter) Monthly(anyDay time.Time) (*MonthlySummary, error) {
	first, last := dateutil.MonthBounds(anyDay)
	period, err := r.Period(first, last)
	if err != nil {
		return nil, err
	}

	startKey, endKey := dateutil.Key(first), dateutil.Key(last)
	workingDays, err := r.attendance.DistinctDates(startKey, endKey)
	if err != nil {
		return nil, err
	}
	hols, err := r.holidays.ListRange(startKey, endKey)
	if err != nil {
		return nil, err
	}
	topReasons, err := r.attendance.TopReasons(startKey, endKey, 3)
	if err != nil {
		return nil, err
	}

	sum := &MonthlySummary{
		PeriodSummary: *period,
		WorkingDays:   len(workingDays),
		Holidays:      hols,
		TopReasons:    topReasons,
	}
	sum.Ranking = RankByRate(period.Employees)
	return sum, nil
}

// Employee summarizes one employee over the trailing window ending today
// (inclusive): totals, a 7-day trend strip, and the 3 most recent absences.
func (r *Reporter) Employee(employeeID uint, end time.Time, windowDays int) (*EmployeeSummary, error) {
	emp, err := r.employees.Get(employeeID)
	if err != nil {
		return nil, err
	}

	start := end.AddDate(0, 0, -(windowDays - 1))
	totals, err := r.attendance.AggregateByEmployee(dateutil.Key(start), dateutil.Key(end))
	if err != nil {
		return nil, err
	}
	sum := &EmployeeSummary{Employee: *emp, Start: start, End: end}
	for _, t := range totals {
		if t.EmployeeID != employeeID {
			continue
		}
		sum.Present = t.Present
		sum.Absent = t.Absent
	}
	sum.Rate = rate(sum.Present, sum.Absent)

	// each trend day is an independent lookup; a missing row stays NoRecord
	trendStart := end.AddDate(0, 0, -6)
	for i := 0; i < 7; i++ {
		day := trendStart.AddDate(0, 0, i)
		rec, err := r.attendance.FindOne(employeeID, dateutil.Key(day))
		if err != nil {
			return nil, err
		}
		switch {
		case rec == nil:
			sum.Trend[i] = TrendNoRecord
		case rec.Status == models.StatusPresent:
			sum.Trend[i] = TrendPresent
		default:
			sum.Trend[i] = TrendAbsent
		}
	}

	absences, err := r.attendance.RecentAbsences(employeeID, 3)
	if err != nil {
		return nil, err
	}
	sum.Absences = absences
	return sum, nil
}
