package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/attendance"
	"github.com/trezcool/edunexus/core/batch"
	"github.com/trezcool/edunexus/core/institute"
	"github.com/trezcool/edunexus/core/payment"
	"github.com/trezcool/edunexus/core/record"
	"github.com/trezcool/edunexus/core/student"
	"github.com/trezcool/edunexus/core/teacher"
	"github.com/trezcool/edunexus/core/user"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		Store         *record.Store
		UserSvc       *user.Service
		StudentSvc    *student.Service
		TeacherSvc    *teacher.Service
		BatchSvc      *batch.Service
		PaymentSvc    *payment.Service
		AttendanceSvc *attendance.Service
		InstituteSvc  *institute.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.app.GET("/", home)

	auth := configureAuth(conf, s.deps.UserSvc)
	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, auth, s.deps)
	registerStudentAPI(v1, jwt, s.deps)
	registerTeacherAPI(v1, jwt, s.deps)
	registerBatchAPI(v1, jwt, s.deps)
	registerPaymentAPI(v1, jwt, s.deps)
	registerAttendanceAPI(v1, jwt, s.deps)
	registerInstituteAPI(v1, jwt, s.deps)
	registerReportsAPI(v1, jwt, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to EduNexus API!")
}
