// Package api is the HTTP surface of the intake service.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	commonerrors "onboarding-intake/internal/common/errors"
	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "tinkercademy-onboarding"

// Submitter accepts a decoded submission and acknowledges it.
type Submitter interface {
	Submit(ctx context.Context, sub models.Submission) (models.Acknowledgement, error)
}

type ServiceDeps struct {
	Port           int
	AllowedOrigins []string
	Production     bool
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	Submitter Submitter
	Logger    logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	router    *mux.Router
	server    *http.Server
	submitter Submitter
	errors    *commonerrors.ErrorHandler
	logger    logger.Logger
	now       func() time.Time
}

func NewService(d ServiceDeps) *Service {
	if d.Logger == nil {
		d.Logger = logger.NewNoOpLogger()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	s := &Service{
		router:    mux.NewRouter(),
		submitter: d.Submitter,
		errors:    commonerrors.NewErrorHandler(d.Logger),
		logger:    d.Logger,
		now:       d.Now,
	}
	s.mountRoutes()

	cors := CORSOptions{AllowedOrigins: d.AllowedOrigins, Production: d.Production}
	if d.Production && len(d.AllowedOrigins) == 0 {
		d.Logger.Warn("ALLOWED_ORIGINS not configured, cross-origin requests will be refused", nil)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", d.Port),
		Handler:           RecoveryMiddleware(d.Logger, LoggingMiddleware(d.Logger, CORS(cors, s.router))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       d.ReadTimeout,
		WriteTimeout:      d.WriteTimeout,
	}
	return s
}

// Handler returns the fully wrapped handler.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is cancelled, then drains open connections.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting onboarding API", map[string]interface{}{"addr": s.server.Addr})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Service) mountRoutes() {
	s.router.HandleFunc("/api/submit-onboarding", s.submitOnboarding).Methods(http.MethodPost)
	s.router.HandleFunc("/api/submit-onboarding", s.preflight).Methods(http.MethodOptions)

	s.router.HandleFunc("/api/health", s.healthHandler).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	s.router.NotFoundHandler = http.HandlerFunc(notFound)
}
