package api

import (
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/gyanvix/employee-admin/internal/apperror"
	"github.com/gyanvix/employee-admin/internal/dto"
	"github.com/gyanvix/employee-admin/internal/service/employee"
)

func formInput(ctx *fasthttp.RequestCtx) employee.Input {
	form := ctx.PostArgs()

	return employee.Input{
		Name:        string(form.Peek("name")),
		EmployeeID:  string(form.Peek("employeeId")),
		Email:       string(form.Peek("email")),
		Phone:       string(form.Peek("phone")),
		Department:  string(form.Peek("department")),
		Designation: string(form.Peek("designation")),
		JoiningDate: string(form.Peek("joiningDate")),
		Salary:      string(form.Peek("salary")),
		Status:      string(form.Peek("status")),
	}
}

func (s *Service) createEmployee(ctx *fasthttp.RequestCtx) {
	in := formInput(ctx)

	_, err := s.employees.Create(ctx, in)
	if err != nil {
		switch apperror.GetCode(err) {
		case apperror.CodeValidation, apperror.CodeConflict:
			// echo the submitted values back for correction
			s.renderPage(ctx, fasthttp.StatusBadRequest, "employee_form", formPage{
				Title:       "Add Employee",
				Mode:        "add",
				Action:      "/employees",
				Error:       err.Error(),
				Form:        in,
				Departments: dto.Departments(),
			})
		default:
			s.internalError(ctx, fmt.Errorf("employeeService.Create: %w", err), "Error adding employee")
		}
		return
	}

	ctx.Redirect("/employees?success=Employee added successfully", fasthttp.StatusFound)
}

func (s *Service) updateEmployee(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		s.renderErrorPage(ctx, fasthttp.StatusNotFound, "Employee not found", notFoundDetail)
		return
	}

	in := formInput(ctx)

	updated, err := s.employees.Update(ctx, id, in)
	if err != nil {
		switch apperror.GetCode(err) {
		case apperror.CodeNotFound:
			s.renderErrorPage(ctx, fasthttp.StatusNotFound, "Employee not found", notFoundDetail)
		case apperror.CodeValidation, apperror.CodeConflict:
			s.renderPage(ctx, fasthttp.StatusBadRequest, "employee_form", formPage{
				Title:       "Edit Employee",
				Mode:        "edit",
				Action:      editAction(id),
				Error:       err.Error(),
				Form:        in,
				Departments: dto.Departments(),
			})
		default:
			s.internalError(ctx, fmt.Errorf("employeeService.Update: %w", err), "Error updating employee")
		}
		return
	}

	ctx.Redirect("/employees/"+updated.ID.String()+"?success=Employee updated successfully", fasthttp.StatusFound)
}

func (s *Service) deleteEmployee(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		writeResult(ctx, fasthttp.StatusNotFound, false, "Employee not found")
		return
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		if apperror.GetCode(err) == apperror.CodeNotFound {
			writeResult(ctx, fasthttp.StatusNotFound, false, "Employee not found")
			return
		}

		logInternal(ctx, fmt.Errorf("employeeService.Delete: %w", err))
		writeResult(ctx, fasthttp.StatusInternalServerError, false, "Error deleting employee")
		return
	}

	writeResult(ctx, fasthttp.StatusOK, true, "Employee deleted successfully")
}

func (s *Service) restoreEmployee(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		writeResult(ctx, fasthttp.StatusNotFound, false, "Employee not found")
		return
	}

	if err := s.employees.Restore(ctx, id); err != nil {
		if apperror.GetCode(err) == apperror.CodeNotFound {
			writeResult(ctx, fasthttp.StatusNotFound, false, "Employee not found")
			return
		}

		logInternal(ctx, fmt.Errorf("employeeService.Restore: %w", err))
		writeResult(ctx, fasthttp.StatusInternalServerError, false, "Error restoring employee")
		return
	}

	writeResult(ctx, fasthttp.StatusOK, true, "Employee restored successfully")
}
