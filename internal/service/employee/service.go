package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyanvix/employee-admin/internal/apperror"
	"github.com/gyanvix/employee-admin/internal/dto"
)

const recentLimit = 5

type Repository interface {
	Create(ctx context.Context, e *dto.Employee) error
	Update(ctx context.Context, e *dto.Employee) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*dto.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*dto.Employee, error)
	List(ctx context.Context, filter dto.ListFilter) ([]dto.Employee, error)
}

type AuditProducer interface {
	ProduceChange(ctx context.Context, messageID uuid.UUID, action string, e dto.Employee) error
}

// Input — raw record fields as submitted by the caller, before
// normalization and validation. All values arrive as strings because the
// primary caller is an HTML form.
type Input struct {
	Name        string
	EmployeeID  string
	Email       string
	Phone       string
	Department  string
	Designation string
	JoiningDate string
	Salary      string
	Status      string
}

type Service struct {
	repo  Repository
	audit AuditProducer
	log   zerolog.Logger

	// injectable for tests; joining-date validation compares against it
	now func() time.Time
}

func NewService(repo Repository, audit AuditProducer, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		audit: audit,
		log:   log.With().Str("component", "employeeService").Logger(),
		now:   time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in Input) (*dto.Employee, error) {
	e, msgs := s.buildEmployee(in)
	if len(msgs) > 0 {
		return nil, apperror.New(apperror.CodeValidation, strings.Join(msgs, ", "))
	}

	e.ID = uuid.New()

	if err := s.repo.Create(ctx, &e); err != nil {
		switch {
		case errors.Is(err, dto.ErrDuplicateEmployeeID):
			return nil, apperror.New(apperror.CodeConflict, "Employee ID already exists")
		case errors.Is(err, dto.ErrDuplicateEmail):
			return nil, apperror.New(apperror.CodeConflict, "Email already exists")
		}

		return nil, fmt.Errorf("employeeRepository.Create: %w", err)
	}

	s.emit(ctx, "created", e)

	return &e, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*dto.Employee, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Employee not found")
		}

		return nil, fmt.Errorf("employeeRepository.GetByID: %w", err)
	}

	// employeeId is immutable post-creation; the stored value always wins.
	in.EmployeeID = current.EmployeeID

	e, msgs := s.buildEmployee(in)
	if len(msgs) > 0 {
		return nil, apperror.New(apperror.CodeValidation, strings.Join(msgs, ", "))
	}

	e.ID = current.ID
	e.IsDeleted = current.IsDeleted
	e.CreatedAt = current.CreatedAt

	if err := s.repo.Update(ctx, &e); err != nil {
		switch {
		case errors.Is(err, dto.ErrNotFound):
			return nil, apperror.New(apperror.CodeNotFound, "Employee not found")
		case errors.Is(err, dto.ErrDuplicateEmail):
			return nil, apperror.New(apperror.CodeConflict, "Email already exists")
		}

		return nil, fmt.Errorf("employeeRepository.Update: %w", err)
	}

	s.emit(ctx, "updated", e)

	return &e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return apperror.New(apperror.CodeNotFound, "Employee not found")
		}

		return fmt.Errorf("employeeRepository.GetByID: %w", err)
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("employeeRepository.SoftDelete: %w", err)
	}

	current.SoftDelete()
	s.emit(ctx, "deleted", *current)

	return nil
}

func (s *Service) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return apperror.New(apperror.CodeNotFound, "Employee not found")
		}

		return fmt.Errorf("employeeRepository.Restore: %w", err)
	}

	restored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("employeeRepository.GetByID: %w", err)
	}

	s.emit(ctx, "restored", *restored)

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return nil, apperror.New(apperror.CodeNotFound, "Employee not found")
		}

		return nil, fmt.Errorf("employeeRepository.GetByID: %w", err)
	}

	return e, nil
}

func (s *Service) List(ctx context.Context, filter dto.ListFilter) ([]dto.Employee, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("employeeRepository.List: %w", err)
	}

	return rows, nil
}

func (s *Service) Stats(ctx context.Context) (dto.Stats, error) {
	active, err := s.repo.List(ctx, dto.ListFilter{})
	if err != nil {
		return dto.Stats{}, fmt.Errorf("employeeRepository.List: %w", err)
	}

	return foldStats(active), nil
}

func (s *Service) Dashboard(ctx context.Context) (dto.DashboardData, error) {
	active, err := s.repo.List(ctx, dto.ListFilter{})
	if err != nil {
		return dto.DashboardData{}, fmt.Errorf("employeeRepository.List: %w", err)
	}

	stats := foldStats(active)

	recent := active
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return dto.DashboardData{
		Stats:       stats,
		Departments: len(stats.ByDepartment),
		Recent:      recent,
	}, nil
}

func foldStats(active []dto.Employee) dto.Stats {
	stats := dto.Stats{
		Total:        len(active),
		ByDepartment: map[string]int{},
	}

	for _, e := range active {
		if e.Status == dto.StatusActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.ByDepartment[e.Department]++
	}

	return stats
}

// emit publishes an audit event. Best effort: a broken broker must never
// fail the originating request.
func (s *Service) emit(ctx context.Context, action string, e dto.Employee) {
	if s.audit == nil {
		return
	}

	if err := s.audit.ProduceChange(ctx, uuid.New(), action, e); err != nil {
		s.log.Error().
			Err(err).
			Str("action", action).
			Str("employee_id", e.EmployeeID).
			Msg("audit event failed")
	}
}
