package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gyanvix/employee-admin/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

const employeeColumns = `id, name, employee_id, email, phone, department, designation, joining_date, salary, status, is_deleted, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, e *dto.Employee) error {
	query := `
insert into employees
  (id, name, employee_id, email, phone, department, designation, joining_date, salary, status)
values
  (@id, @name, @employee_id, @email, @phone, @department, @designation, @joining_date, @salary, @status)
returning created_at, updated_at;
`
	args := pgx.NamedArgs{
		"id":           e.ID,
		"name":         e.Name,
		"employee_id":  e.EmployeeID,
		"email":        e.Email,
		"phone":        e.Phone,
		"department":   e.Department,
		"designation":  e.Designation,
		"joining_date": e.JoiningDate,
		"salary":       e.Salary,
		"status":       e.Status,
	}

	err := r.pool.QueryRow(ctx, query, args).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if dup := mapDuplicate(err); dup != nil {
			return dup
		}

		return fmt.Errorf("pool.QueryRow: %w", err)
	}

	return nil
}

// Update replaces all mutable fields of an active record. employee_id is
// immutable after creation and is deliberately absent here.
func (r *Repository) Update(ctx context.Context, e *dto.Employee) error {
	query := `
update employees set
  name         = @name,
  email        = @email,
  phone        = @phone,
  department   = @department,
  designation  = @designation,
  joining_date = @joining_date,
  salary       = @salary,
  status       = @status,
  updated_at   = now()
where id = @id and is_deleted = false;
`
	args := pgx.NamedArgs{
		"id":           e.ID,
		"name":         e.Name,
		"email":        e.Email,
		"phone":        e.Phone,
		"department":   e.Department,
		"designation":  e.Designation,
		"joining_date": e.JoiningDate,
		"salary":       e.Salary,
		"status":       e.Status,
	}

	tag, err := r.pool.Exec(ctx, query, args)
	if err != nil {
		if dup := mapDuplicate(err); dup != nil {
			return dup
		}

		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

// SoftDelete flips both lifecycle flags in one atomic write. Repeating it
// on an already deleted record leaves the same terminal state.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `update employees set is_deleted = true, status = 'Inactive', updated_at = now() where id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

// Restore clears the deletion flag only; status is not reverted.
func (r *Repository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `update employees set is_deleted = false, updated_at = now() where id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*dto.Employee, error) {
	query := `select ` + employeeColumns + ` from employees where id = $1 and is_deleted = false`

	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *Repository) GetByEmployeeID(ctx context.Context, employeeID string) (*dto.Employee, error) {
	query := `select ` + employeeColumns + ` from employees where employee_id = $1 and is_deleted = false`

	return scanEmployee(r.pool.QueryRow(ctx, query, strings.ToUpper(strings.TrimSpace(employeeID))))
}

func (r *Repository) List(ctx context.Context, filter dto.ListFilter) ([]dto.Employee, error) {
	query, args := buildListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.Employee
	for rows.Next() {
		var e dto.Employee

		err = rows.Scan(
			&e.ID,
			&e.Name,
			&e.EmployeeID,
			&e.Email,
			&e.Phone,
			&e.Department,
			&e.Designation,
			&e.JoiningDate,
			&e.Salary,
			&e.Status,
			&e.IsDeleted,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

// buildListQuery translates the filter criteria into the list query.
// The base predicate always excludes soft-deleted records; provided
// filters are ANDed on top of it.
func buildListQuery(filter dto.ListFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`select ` + employeeColumns + ` from employees where is_deleted = false`)

	var args []any

	if filter.Search != "" {
		n := len(args) + 1
		sb.WriteString(fmt.Sprintf(" and (name ilike $%d or employee_id ilike $%d or email ilike $%d)", n, n, n))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Department != "" {
		sb.WriteString(fmt.Sprintf(" and department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Status != "" {
		sb.WriteString(fmt.Sprintf(" and status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	sb.WriteString(" order by created_at desc")

	return sb.String(), args
}

func scanEmployee(row pgx.Row) (*dto.Employee, error) {
	var e dto.Employee

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.EmployeeID,
		&e.Email,
		&e.Phone,
		&e.Department,
		&e.Designation,
		&e.JoiningDate,
		&e.Salary,
		&e.Status,
		&e.IsDeleted,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &e, nil
}

// mapDuplicate turns a unique-index violation into the sentinel for the
// field that collided, so callers can name it to the user.
func mapDuplicate(err error) error {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) || pgerr.Code != "23505" {
		return nil
	}

	switch pgerr.ConstraintName {
	case "uq_employees_employee_id":
		return dto.ErrDuplicateEmployeeID
	case "uq_employees_email":
		return dto.ErrDuplicateEmail
	}

	return dto.ErrDuplicateEmployeeID
}
