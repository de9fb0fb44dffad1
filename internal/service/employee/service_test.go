package employee

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyanvix/employee-admin/internal/apperror"
	"github.com/gyanvix/employee-admin/internal/dto"
)

// memRepo mimics the storage contract in memory: unique indexes over all
// rows (deleted included), active-only reads, created_at desc listing.
type memRepo struct {
	rows map[uuid.UUID]*dto.Employee
	seq  int
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]*dto.Employee{}}
}

func (m *memRepo) duplicate(e *dto.Employee) error {
	for id, row := range m.rows {
		if id == e.ID {
			continue
		}
		if row.EmployeeID == e.EmployeeID {
			return dto.ErrDuplicateEmployeeID
		}
		if row.Email == e.Email {
			return dto.ErrDuplicateEmail
		}
	}
	return nil
}

func (m *memRepo) Create(_ context.Context, e *dto.Employee) error {
	if err := m.duplicate(e); err != nil {
		return err
	}

	m.seq++
	e.CreatedAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Minute)
	e.UpdatedAt = e.CreatedAt

	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memRepo) Update(_ context.Context, e *dto.Employee) error {
	current, ok := m.rows[e.ID]
	if !ok || current.IsDeleted {
		return dto.ErrNotFound
	}
	if err := m.duplicate(e); err != nil {
		return err
	}

	cp := *e
	cp.CreatedAt = current.CreatedAt
	m.rows[e.ID] = &cp
	return nil
}

func (m *memRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	row, ok := m.rows[id]
	if !ok {
		return dto.ErrNotFound
	}
	row.SoftDelete()
	return nil
}

func (m *memRepo) Restore(_ context.Context, id uuid.UUID) error {
	row, ok := m.rows[id]
	if !ok {
		return dto.ErrNotFound
	}
	row.Restore()
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*dto.Employee, error) {
	row, ok := m.rows[id]
	if !ok || row.IsDeleted {
		return nil, dto.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *memRepo) GetByEmployeeID(_ context.Context, employeeID string) (*dto.Employee, error) {
	key := strings.ToUpper(strings.TrimSpace(employeeID))
	for _, row := range m.rows {
		if !row.IsDeleted && row.EmployeeID == key {
			cp := *row
			return &cp, nil
		}
	}
	return nil, dto.ErrNotFound
}

func (m *memRepo) List(_ context.Context, filter dto.ListFilter) ([]dto.Employee, error) {
	var out []dto.Employee
	for _, row := range m.rows {
		if row.IsDeleted {
			continue
		}
		if filter.Department != "" && row.Department != filter.Department {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type recordedEvent struct {
	action string
	record dto.Employee
}

type memAudit struct {
	events []recordedEvent
	err    error
}

func (a *memAudit) ProduceChange(_ context.Context, _ uuid.UUID, action string, e dto.Employee) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, recordedEvent{action: action, record: e})
	return nil
}

func validInput() Input {
	return Input{
		Name:        "Jane Doe",
		EmployeeID:  "emp001",
		Email:       "JANE@X.COM",
		Phone:       "9876543210",
		Department:  "IT",
		Designation: "Engineer",
		JoiningDate: "2023-01-10",
		Salary:      "500000",
	}
}

func newTestService(t *testing.T) (*Service, *memRepo, *memAudit) {
	t.Helper()

	repo := newMemRepo()
	audit := &memAudit{}

	s := NewService(repo, audit, zerolog.Nop())
	s.now = func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	}

	return s, repo, audit
}

func TestCreateNormalizes(t *testing.T) {
	s, _, audit := newTestService(t)

	created, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "EMP001", created.EmployeeID)
	assert.Equal(t, "jane@x.com", created.Email)
	assert.Equal(t, dto.StatusActive, created.Status)
	assert.False(t, created.IsDeleted)
	assert.NotEqual(t, uuid.UUID{}, created.ID)

	require.Len(t, audit.events, 1)
	assert.Equal(t, "created", audit.events[0].action)
	assert.Equal(t, "EMP001", audit.events[0].record.EmployeeID)
}

func TestCreateValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(in *Input)
		message string
	}{
		{"empty name", func(in *Input) { in.Name = "" }, "Employee name is required"},
		{"short name", func(in *Input) { in.Name = "Al" }, "Name must be at least 3 characters long"},
		{"bad employee id", func(in *Input) { in.EmployeeID = "emp-001" }, "Employee ID must contain only letters and numbers"},
		{"bad email", func(in *Input) { in.Email = "not-an-email" }, "Please provide a valid email address"},
		{"short phone", func(in *Input) { in.Phone = "12345" }, "Please provide a valid 10-digit phone number"},
		{"unknown department", func(in *Input) { in.Department = "Legal" }, "Legal is not a valid department"},
		{"short designation", func(in *Input) { in.Designation = "X" }, "Designation must be at least 2 characters long"},
		{"bad date", func(in *Input) { in.JoiningDate = "10-01-2023" }, "Joining date must be a valid date (YYYY-MM-DD)"},
		{"future date", func(in *Input) { in.JoiningDate = "2025-06-16" }, "Joining date cannot be in the future"},
		{"salary not a number", func(in *Input) { in.Salary = "lots" }, "Salary must be a number"},
		{"negative salary", func(in *Input) { in.Salary = "-1" }, "Salary cannot be negative"},
		{"huge salary", func(in *Input) { in.Salary = "200000000" }, "Salary seems too high"},
		{"unknown status", func(in *Input) { in.Status = "Retired" }, "Retired is not a valid status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, repo, _ := newTestService(t)

			in := validInput()
			tc.mutate(&in)

			_, err := s.Create(context.Background(), in)
			require.Error(t, err)

			assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
			assert.Contains(t, err.Error(), tc.message)
			assert.Empty(t, repo.rows)
		})
	}
}

func TestCreateDuplicateEmployeeID(t *testing.T) {
	s, repo, _ := newTestService(t)

	_, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)

	second := validInput()
	second.Email = "other@x.com"

	_, err = s.Create(context.Background(), second)
	require.Error(t, err)

	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
	assert.Equal(t, "Employee ID already exists", err.Error())
	assert.Len(t, repo.rows, 1)
}

func TestCreateDuplicateEmail(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)

	second := validInput()
	second.EmployeeID = "EMP002"

	_, err = s.Create(context.Background(), second)
	require.Error(t, err)

	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
	assert.Equal(t, "Email already exists", err.Error())
}

func TestUpdateNotFound(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.Update(context.Background(), uuid.New(), validInput())
	require.Error(t, err)

	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestUpdateKeepsEmployeeID(t *testing.T) {
	s, _, audit := newTestService(t)

	created, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.EmployeeID = "HACKED1"
	in.Designation = "Senior Engineer"

	updated, err := s.Update(context.Background(), created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "EMP001", updated.EmployeeID)
	assert.Equal(t, "Senior Engineer", updated.Designation)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.Len(t, audit.events, 2)
	assert.Equal(t, "updated", audit.events[1].action)
}

func TestUpdateDuplicateEmail(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)

	other := validInput()
	other.EmployeeID = "EMP002"
	other.Email = "second@x.com"

	created, err := s.Create(context.Background(), other)
	require.NoError(t, err)

	in := other
	in.Email = "jane@x.com"

	_, err = s.Update(context.Background(), created.ID, in)
	require.Error(t, err)

	assert.Equal(t, apperror.CodeConflict, apperror.GetCode(err))
	assert.Equal(t, "Email already exists", err.Error())
}

func TestDeleteThenGet(t *testing.T) {
	s, repo, audit := newTestService(t)

	created, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), created.ID))

	row := repo.rows[created.ID]
	assert.True(t, row.IsDeleted)
	assert.Equal(t, dto.StatusInactive, row.Status)

	_, err = s.Get(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	// a second delete sees no active record
	err = s.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	require.Len(t, audit.events, 2)
	assert.Equal(t, "deleted", audit.events[1].action)
	assert.True(t, audit.events[1].record.IsDeleted)
}

func TestRestore(t *testing.T) {
	s, _, audit := newTestService(t)

	created, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), created.ID))
	require.NoError(t, s.Restore(context.Background(), created.ID))

	restored, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)

	assert.False(t, restored.IsDeleted)
	assert.Equal(t, dto.StatusInactive, restored.Status)

	require.Len(t, audit.events, 3)
	assert.Equal(t, "restored", audit.events[2].action)
}

func TestRestoreNotFound(t *testing.T) {
	s, _, _ := newTestService(t)

	err := s.Restore(context.Background(), uuid.New())
	require.Error(t, err)

	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))
}

func TestStats(t *testing.T) {
	s, _, _ := newTestService(t)

	seed := []struct {
		employeeID, email, department, status string
	}{
		{"EMP001", "a@x.com", "IT", "Active"},
		{"EMP002", "b@x.com", "IT", "Inactive"},
		{"EMP003", "c@x.com", "HR", "Active"},
	}
	for _, row := range seed {
		in := validInput()
		in.EmployeeID = row.employeeID
		in.Email = row.email
		in.Department = row.department
		in.Status = row.status

		_, err := s.Create(context.Background(), in)
		require.NoError(t, err)
	}

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
	assert.Equal(t, map[string]int{"IT": 2, "HR": 1}, stats.ByDepartment)
}

func TestStatsExcludesDeleted(t *testing.T) {
	s, _, _ := newTestService(t)

	created, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), created.ID))

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.ByDepartment)
}

func TestDashboardRecent(t *testing.T) {
	s, _, _ := newTestService(t)

	for i := 0; i < 7; i++ {
		in := validInput()
		in.EmployeeID = "EMP00" + string(rune('1'+i))
		in.Email = string(rune('a'+i)) + "@x.com"

		_, err := s.Create(context.Background(), in)
		require.NoError(t, err)
	}

	data, err := s.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, data.Stats.Total)
	assert.Equal(t, 1, data.Departments)
	require.Len(t, data.Recent, 5)
	assert.Equal(t, "EMP007", data.Recent[0].EmployeeID)
}

func TestAuditFailureDoesNotFailRequest(t *testing.T) {
	s, repo, audit := newTestService(t)
	audit.err = context.DeadlineExceeded

	created, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotNil(t, created)
	assert.Len(t, repo.rows, 1)
	assert.Empty(t, audit.events)
}

func TestNoAuditProducer(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, nil, zerolog.Nop())
	s.now = func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	}

	created, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotNil(t, created)
}
