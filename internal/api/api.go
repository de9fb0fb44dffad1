package api

import (
	"context"
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/gyanvix/employee-admin/internal/dto"
	"github.com/gyanvix/employee-admin/internal/service/employee"
	"github.com/gyanvix/employee-admin/internal/web"
)

type EmployeeService interface {
	Create(ctx context.Context, in employee.Input) (*dto.Employee, error)
	Update(ctx context.Context, id uuid.UUID, in employee.Input) (*dto.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*dto.Employee, error)
	List(ctx context.Context, filter dto.ListFilter) ([]dto.Employee, error)
	Stats(ctx context.Context) (dto.Stats, error)
	Dashboard(ctx context.Context) (dto.DashboardData, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type ServiceDeps struct {
	Port        int
	Development bool

	Employees EmployeeService
	DB        Pinger
	Views     *web.Renderer
}

type Service struct {
	r    *router.Router
	port int

	development bool

	employees EmployeeService
	db        Pinger
	views     *web.Renderer
}

func NewService(d ServiceDeps) *Service {
	rt := router.New()

	s := &Service{
		r:           rt,
		port:        d.Port,
		development: d.Development,
		employees:   d.Employees,
		db:          d.DB,
		views:       d.Views,
	}

	s.mountRoutes()

	return s
}

// Handler is the full middleware chain; exposed so tests can drive it
// without a listener.
func (s *Service) Handler() fasthttp.RequestHandler {
	return s.RecoveryMiddleware(LoggingMiddleware(MethodOverride(s.r.Handler)))
}

func (s *Service) Start(ctx context.Context) error {
	server := fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "employee-admin",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 2 << 20, // 2 MiB
	}

	log.Info().Int("port", s.port).Msg("starting HTTP server")

	emergencyShutdown := make(chan error)
	go func() {
		err := server.ListenAndServe(fmt.Sprintf(":%d", s.port))
		emergencyShutdown <- err
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) mountRoutes() {
	// Pages
	s.r.GET("/", s.dashboard)
	s.r.GET("/employees", s.listEmployees)
	s.r.GET("/employees/add", s.addEmployeeForm)
	s.r.GET("/employees/{id}", s.employeeProfile)
	s.r.GET("/employees/{id}/edit", s.editEmployeeForm)

	// Commands
	s.r.POST("/employees", s.createEmployee)
	s.r.PUT("/employees/{id}", s.updateEmployee)
	s.r.DELETE("/employees/{id}", s.deleteEmployee)
	s.r.POST("/employees/{id}/restore", s.restoreEmployee)

	// JSON API
	s.r.GET("/api/employees/stats", s.employeeStats)

	// Assets & health
	s.r.GET("/static/{filepath:*}", s.staticHandler)
	s.r.GET("/health", s.healthHandler)

	s.r.NotFound = s.notFoundHandler
}
