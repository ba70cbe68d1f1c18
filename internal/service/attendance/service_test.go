package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirhq/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirhq/hadir-backend-go/internal/domain/policy"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/qrtoken"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/validator"
)

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*attendance.AttendanceRecord // employeeID|date

	createConflicts   int
	checkOutConflicts int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.AttendanceRecord)}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createConflicts > 0 {
		f.createConflicts--
		return attendance.AttendanceRecord{}, attendance.ErrConcurrentWriteConflict
	}

	key := recordKey(rec.EmployeeID, rec.Date)
	if _, exists := f.records[key]; exists {
		return attendance.AttendanceRecord{}, attendance.ErrConcurrentWriteConflict
	}

	rec.ID = rec.EmployeeID + "-" + rec.Date.Format("2006-01-02")
	stored := rec
	f.records[key] = &stored
	return rec, nil
}

func (f *fakeAttendanceRepo) CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, lat, lng *float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.checkOutConflicts > 0 {
		f.checkOutConflicts--
		return attendance.ErrConcurrentWriteConflict
	}

	for _, rec := range f.records {
		if rec.ID == id {
			if rec.CheckOutTime != nil {
				return attendance.ErrConcurrentWriteConflict
			}
			rec.CheckOutTime = &checkOut
			rec.CheckOutLatitude = lat
			rec.CheckOutLongitude = lng
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.ID == id {
			return *rec, nil
		}
	}
	return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.AttendanceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key, stored := range f.records {
		if stored.ID == rec.ID {
			updated := rec
			f.records[key] = &updated
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var records []attendance.AttendanceRecord
	for _, rec := range f.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		records = append(records, *rec)
	}
	return records, int64(len(records)), nil
}

func (f *fakeAttendanceRepo) SumDelayMinutes(ctx context.Context, filter attendance.AttendanceFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, rec := range f.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		total += rec.DelayMinutes
	}
	return total, nil
}

func (f *fakeAttendanceRepo) QueryRange(ctx context.Context, employeeID *string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var records []attendance.AttendanceRecord
	for _, rec := range f.records {
		if employeeID != nil && rec.EmployeeID != *employeeID {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (f *fakeAttendanceRepo) MarkAbsent(ctx context.Context, employeeID string, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := recordKey(employeeID, date)
	if _, exists := f.records[key]; exists {
		return nil
	}
	f.records[key] = &attendance.AttendanceRecord{
		ID:         key,
		EmployeeID: employeeID,
		Date:       date,
		Status:     attendance.StatusAbsent,
	}
	return nil
}

type fakePolicyRepo struct {
	pol policy.AttendancePolicy
}

func (f *fakePolicyRepo) Get(ctx context.Context) (policy.AttendancePolicy, error) {
	return f.pol, nil
}

func (f *fakePolicyRepo) Upsert(ctx context.Context, p policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	f.pol = p
	return p, nil
}

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        "employee",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeAttendanceRepo, pol policy.AttendancePolicy, now time.Time) (*AttendanceServiceImpl, *time.Time) {
	clock := now
	svc := &AttendanceServiceImpl{
		attendanceRepo: repo,
		policyRepo:     &fakePolicyRepo{pol: pol},
		now:            func() time.Time { return clock },
	}
	return svc, &clock
}

func scanRequestAt(ts time.Time, pol policy.AttendancePolicy) attendance.ScanRequest {
	return onSiteRequest(qrtoken.Encode(ts), pol)
}

func TestScan_FullDayLifecycle(t *testing.T) {
	pol := testPolicy()
	repo := newFakeAttendanceRepo()
	start := time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)
	svc, clock := newTestService(repo, pol, start)
	ctx := authedContext(t, "emp-1")

	resp, err := svc.Scan(ctx, scanRequestAt(start, pol))
	require.NoError(t, err)
	assert.Equal(t, attendance.ScanEventCheckedIn, resp.Event)
	assert.Equal(t, 5, resp.DelayMinutes)

	// A second scan a few minutes later is swallowed by the lockout.
	*clock = start.Add(10 * time.Minute)
	_, err = svc.Scan(ctx, scanRequestAt(*clock, pol))
	assert.ErrorIs(t, err, attendance.ErrAlreadyRegistered)

	// Past the lockout the scan closes the day.
	*clock = start.Add(8 * time.Hour)
	resp, err = svc.Scan(ctx, scanRequestAt(*clock, pol))
	require.NoError(t, err)
	assert.Equal(t, attendance.ScanEventCheckedOut, resp.Event)

	// And the day stays closed.
	*clock = start.Add(9 * time.Hour)
	_, err = svc.Scan(ctx, scanRequestAt(*clock, pol))
	assert.ErrorIs(t, err, attendance.ErrDayAlreadyComplete)
}

func TestScan_RetriesAfterLosingCreateRace(t *testing.T) {
	pol := testPolicy()
	repo := newFakeAttendanceRepo()
	repo.createConflicts = 1

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(repo, pol, start)
	ctx := authedContext(t, "emp-1")

	// First attempt loses the insert race; the retry re-reads an empty day
	// and succeeds.
	resp, err := svc.Scan(ctx, scanRequestAt(start, pol))
	require.NoError(t, err)
	assert.Equal(t, attendance.ScanEventCheckedIn, resp.Event)
}

func TestScan_MissingClaimsRejected(t *testing.T) {
	pol := testPolicy()
	svc, _ := newTestService(newFakeAttendanceRepo(), pol, time.Now())

	_, err := svc.Scan(context.Background(), scanRequestAt(time.Now(), pol))
	assert.Error(t, err)
}

func TestCurrentQRToken(t *testing.T) {
	pol := testPolicy()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(newFakeAttendanceRepo(), pol, now)

	resp, err := svc.CurrentQRToken(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, pol.QRLifespanSeconds, resp.LifespanSeconds)
	assert.Equal(t, now.Format(time.RFC3339), resp.IssuedAt)
}

func TestGetMyAttendance_ScopesToCaller(t *testing.T) {
	pol := testPolicy()
	repo := newFakeAttendanceRepo()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)

	for i, id := range []string{"emp-1", "emp-2"} {
		_, err := repo.CreateIfAbsent(context.Background(), attendance.AttendanceRecord{
			EmployeeID:   id,
			Date:         day,
			CheckInTime:  &checkIn,
			Status:       attendance.StatusPresent,
			DelayMinutes: (i + 1) * 10,
		})
		require.NoError(t, err)
	}

	svc, _ := newTestService(repo, pol, checkIn)
	resp, err := svc.GetMyAttendance(authedContext(t, "emp-1"), attendance.AttendanceFilter{})

	require.NoError(t, err)
	require.Len(t, resp.Attendances, 1)
	assert.Equal(t, "emp-1", resp.Attendances[0].EmployeeID)

	// The delay total is scoped to the caller too, not the whole company.
	assert.Equal(t, 10, resp.TotalDelayMinutes)
}

func TestUpdateAttendanceKeepsCheckTimesOrdered(t *testing.T) {
	pol := testPolicy()
	repo := newFakeAttendanceRepo()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)

	created, err := repo.CreateIfAbsent(context.Background(), attendance.AttendanceRecord{
		EmployeeID:  "emp-1",
		Date:        day,
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	svc, _ := newTestService(repo, pol, checkIn)

	// A check-out before the check-in must never be stored.
	early := day.Add(7 * time.Hour).Format(time.RFC3339)
	_, err = svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:           created.ID,
		CheckOutTime: &early,
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CheckOutTime)

	// Equal timestamps are rejected too; check-out is strictly after.
	same := checkIn.Format(time.RFC3339)
	_, err = svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:           created.ID,
		CheckOutTime: &same,
	})
	require.ErrorAs(t, err, &errs)

	// A later check-out is a legitimate correction.
	late := day.Add(17 * time.Hour).Format(time.RFC3339)
	resp, err := svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:           created.ID,
		CheckOutTime: &late,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, late, *resp.CheckOutTime)
}

func TestUpdateAttendanceRejectsCheckOutWithoutCheckIn(t *testing.T) {
	pol := testPolicy()
	repo := newFakeAttendanceRepo()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.MarkAbsent(context.Background(), "emp-1", day))
	rec, err := repo.GetByEmployeeAndDate(context.Background(), "emp-1", day)
	require.NoError(t, err)

	svc, _ := newTestService(repo, pol, day.Add(20*time.Hour))

	out := day.Add(17 * time.Hour).Format(time.RFC3339)
	_, err = svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:           rec.ID,
		CheckOutTime: &out,
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	stored, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CheckOutTime)
}
