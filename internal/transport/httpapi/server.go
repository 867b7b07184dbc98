// Package httpapi exposes the services as a JSON API over gorilla/mux.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"hotelres/internal/core"
	"hotelres/pkg/domain"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger core.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGatherer exposes gatherer on /metrics.
func WithGatherer(gatherer prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = gatherer }
}

// Server routes requests to the services. Every API request holds one
// process-wide mutex so that the load, mutate, save cycles of concurrent
// requests never interleave.
type Server struct {
	svc      *core.Services
	mu       sync.Mutex
	logger   core.Logger
	gatherer prometheus.Gatherer
	router   *mux.Router
}

// New builds the handler tree.
func New(svc *core.Services, opts ...Option) *Server {
	s := &Server{svc: svc, logger: discard{}}
	for _, opt := range opts {
		opt(s)
	}
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.NewRoute().Subrouter()
	api.Use(s.serialize)
	api.HandleFunc("/customers", s.createCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers", s.listCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", s.getCustomer).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", s.updateCustomer).Methods(http.MethodPatch)
	api.HandleFunc("/customers/{id}", s.deleteCustomer).Methods(http.MethodDelete)

	api.HandleFunc("/hotels", s.createHotel).Methods(http.MethodPost)
	api.HandleFunc("/hotels", s.listHotels).Methods(http.MethodGet)
	api.HandleFunc("/hotels/{id}", s.getHotel).Methods(http.MethodGet)
	api.HandleFunc("/hotels/{id}", s.updateHotel).Methods(http.MethodPatch)
	api.HandleFunc("/hotels/{id}", s.deleteHotel).Methods(http.MethodDelete)

	api.HandleFunc("/reservations", s.createReservation).Methods(http.MethodPost)
	api.HandleFunc("/reservations", s.listReservations).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}", s.getReservation).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}", s.cancelReservation).Methods(http.MethodDelete)

	api.HandleFunc("/reconcile", s.reconcile).Methods(http.MethodPost)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) reconcile(w http.ResponseWriter, r *http.Request) {
	repair := false
	if raw := r.URL.Query().Get("repair"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.fail(w, domain.Invalid(domain.EntityHotel, "", fmt.Sprintf("repair must be a boolean, got %q", raw)))
			return
		}
		repair = v
	}
	var (
		report core.Report
		err    error
	)
	if repair {
		report, err = s.svc.Reconcile.Repair(r.Context())
	} else {
		report, err = s.svc.Reconcile.Audit(r.Context())
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps an error category to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func (s *Server) badRequest(w http.ResponseWriter, entity domain.EntityType, err error) {
	s.fail(w, domain.Invalid(entity, "", "invalid request body: "+err.Error()))
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type discard struct{}

func (discard) Debug(string, ...any) {}
func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}
