package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/gyanvix/employee-admin/internal/apperror"
	"github.com/gyanvix/employee-admin/internal/dto"
	"github.com/gyanvix/employee-admin/internal/service/employee"
)

type dashboardPage struct {
	Title string
	Data  dto.DashboardData
}

type listPage struct {
	Title       string
	Employees   []dto.Employee
	Filters     dto.ListFilter
	Departments []string
	Success     string
}

type formPage struct {
	Title       string
	Mode        string // add | edit
	Action      string
	Error       string
	Form        employee.Input
	Departments []string
}

type profilePage struct {
	Title    string
	Employee *dto.Employee
	Tenure   string
	Success  string
}

func (s *Service) dashboard(ctx *fasthttp.RequestCtx) {
	data, err := s.employees.Dashboard(ctx)
	if err != nil {
		s.internalError(ctx, fmt.Errorf("employeeService.Dashboard: %w", err), "Error loading dashboard")
		return
	}

	s.renderPage(ctx, fasthttp.StatusOK, "dashboard", dashboardPage{
		Title: "Dashboard",
		Data:  data,
	})
}

func (s *Service) listEmployees(ctx *fasthttp.RequestCtx) {
	filter := dto.ListFilter{
		Search:     string(ctx.QueryArgs().Peek("search")),
		Department: string(ctx.QueryArgs().Peek("department")),
		Status:     string(ctx.QueryArgs().Peek("status")),
	}

	rows, err := s.employees.List(ctx, filter)
	if err != nil {
		s.internalError(ctx, fmt.Errorf("employeeService.List: %w", err), "Error loading employees")
		return
	}

	s.renderPage(ctx, fasthttp.StatusOK, "employee_list", listPage{
		Title:       "Employee List",
		Employees:   rows,
		Filters:     filter,
		Departments: dto.Departments(),
		Success:     string(ctx.QueryArgs().Peek("success")),
	})
}

func (s *Service) addEmployeeForm(ctx *fasthttp.RequestCtx) {
	s.renderPage(ctx, fasthttp.StatusOK, "employee_form", formPage{
		Title:       "Add Employee",
		Mode:        "add",
		Action:      "/employees",
		Departments: dto.Departments(),
	})
}

func (s *Service) employeeProfile(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		s.renderErrorPage(ctx, fasthttp.StatusNotFound, "Employee not found", notFoundDetail)
		return
	}

	e, err := s.employees.Get(ctx, id)
	if err != nil {
		if apperror.GetCode(err) == apperror.CodeNotFound {
			s.renderErrorPage(ctx, fasthttp.StatusNotFound, "Employee not found", notFoundDetail)
			return
		}

		s.internalError(ctx, fmt.Errorf("employeeService.Get: %w", err), "Error loading employee profile")
		return
	}

	s.renderPage(ctx, fasthttp.StatusOK, "employee_profile", profilePage{
		Title:    e.Name + " - Profile",
		Employee: e,
		Tenure:   e.Tenure(time.Now()),
		Success:  string(ctx.QueryArgs().Peek("success")),
	})
}

func (s *Service) editEmployeeForm(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		s.renderErrorPage(ctx, fasthttp.StatusNotFound, "Employee not found", notFoundDetail)
		return
	}

	e, err := s.employees.Get(ctx, id)
	if err != nil {
		if apperror.GetCode(err) == apperror.CodeNotFound {
			s.renderErrorPage(ctx, fasthttp.StatusNotFound, "Employee not found", notFoundDetail)
			return
		}

		s.internalError(ctx, fmt.Errorf("employeeService.Get: %w", err), "Error loading edit form")
		return
	}

	s.renderPage(ctx, fasthttp.StatusOK, "employee_form", formPage{
		Title:       "Edit " + e.Name,
		Mode:        "edit",
		Action:      editAction(e.ID),
		Form:        inputFromEmployee(e),
		Departments: dto.Departments(),
	})
}

func (s *Service) notFoundHandler(ctx *fasthttp.RequestCtx) {
	s.renderErrorPage(ctx, fasthttp.StatusNotFound, "Page Not Found",
		fmt.Sprintf("The page %s does not exist", ctx.Path()))
}

func pathID(ctx *fasthttp.RequestCtx) (uuid.UUID, bool) {
	raw, _ := ctx.UserValue("id").(string)

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, false
	}

	return id, true
}

func editAction(id uuid.UUID) string {
	return "/employees/" + id.String() + "?_method=PUT"
}

func inputFromEmployee(e *dto.Employee) employee.Input {
	return employee.Input{
		Name:        e.Name,
		EmployeeID:  e.EmployeeID,
		Email:       e.Email,
		Phone:       e.Phone,
		Department:  e.Department,
		Designation: e.Designation,
		JoiningDate: e.JoiningDate.Format("2006-01-02"),
		Salary:      strconv.FormatFloat(e.Salary, 'f', -1, 64),
		Status:      e.Status,
	}
}
