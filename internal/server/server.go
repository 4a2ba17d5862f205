//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=server_repository
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/metrics"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/service"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

type ReturnsService interface {
	CreateReturn(ctx context.Context, cmd service.CreateReturnCommand) (*storage.Return, error)
	Approve(ctx context.Context, cmd service.ApproveCommand) (*storage.Return, error)
	Reject(ctx context.Context, cmd service.RejectCommand) (*storage.Return, error)
	UpdateStatus(ctx context.Context, cmd service.UpdateStatusCommand) (*storage.Return, error)
	InitiateRefund(ctx context.Context, cmd service.RefundCommand) (*storage.Return, error)
	CreateReplacement(ctx context.Context, cmd service.ReplacementCommand) (*storage.Return, error)
	AddNote(ctx context.Context, cmd service.NoteCommand) (*storage.Return, error)
	GetDetail(ctx context.Context, id uuid.UUID, role lifecycle.Role) (*service.Detail, error)
	List(ctx context.Context, filter repository.ReturnFilter) ([]storage.Return, error)
	GetStats(ctx context.Context) (map[lifecycle.Status]int64, error)
}

type StaffRepo interface {
	ValidateStaff(ctx context.Context, username, password string) (*repository.StaffUser, error)
}

type Server struct {
	service      ReturnsService
	staff        StaffRepo
	server       *http.Server
	AuditManager *AuditManager
}

func New(service ReturnsService, staff StaffRepo) *Server {
	auditManager := NewAuditManager(2, 5, 500*time.Millisecond)
	return &Server{
		service:      service,
		staff:        staff,
		AuditManager: auditManager,
	}
}

// Run serves until ctx is cancelled or the listener fails, then drains.
func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Printf("HTTP server starting on port %s", port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Println("HTTP server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	log.Println("Server shutdown completed successfully")

	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/returns", s.handleCreateReturn).Methods(http.MethodPost)

	admin := router.PathPrefix("/").Subrouter()
	admin.Use(s.basicAuthMiddleware)
	admin.HandleFunc("/returns/admin", s.handleListReturns).Methods(http.MethodGet)
	admin.HandleFunc("/returns/admin/stats", s.handleStats).Methods(http.MethodGet)
	admin.HandleFunc("/returns/admin/{id}", s.handleGetReturn).Methods(http.MethodGet)
	admin.HandleFunc("/returns/admin/{id}/approve", s.handleApprove).Methods(http.MethodPut)
	admin.HandleFunc("/returns/admin/{id}/reject", s.handleReject).Methods(http.MethodPut)
	admin.HandleFunc("/returns/admin/{id}/status", s.handleUpdateStatus).Methods(http.MethodPut)
	admin.HandleFunc("/returns/admin/{id}/notes", s.handleAddNote).Methods(http.MethodPost)
	admin.HandleFunc("/refunds/admin", s.handleCreateRefund).Methods(http.MethodPost)
	admin.HandleFunc("/replacements/admin", s.handleCreateReplacement).Methods(http.MethodPost)

	return s.auditLogMiddleware(router)
}

type staffContextKey struct{}

type staffIdentity struct {
	Username string
	Role     lifecycle.Role
}

func withStaff(ctx context.Context, username string, role lifecycle.Role) context.Context {
	return context.WithValue(ctx, staffContextKey{}, staffIdentity{Username: username, Role: role})
}

func staffFromContext(ctx context.Context) (staffIdentity, bool) {
	identity, ok := ctx.Value(staffContextKey{}).(staffIdentity)
	return identity, ok
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := s.staff.ValidateStaff(r.Context(), username, password)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := withStaff(r.Context(), user.Username, lifecycle.Role(user.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, repository.ErrStaleState):
		return http.StatusConflict
	case errors.Is(err, service.ErrSideEffectFailed):
		return http.StatusBadGateway
	case errors.Is(err, lifecycle.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError maps a service error onto the HTTP surface. Stale and
// side-effect failures carry retry guidance since the engine never retries on
// its own.
func (s *Server) respondServiceError(w http.ResponseWriter, operation string, err error) {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()

	message := err.Error()
	switch {
	case errors.Is(err, repository.ErrStaleState):
		message = "return request was modified concurrently, re-fetch and retry"
	case errors.Is(err, service.ErrSideEffectFailed):
		message = "collaborator call failed, nothing was committed, safe to retry: " + err.Error()
	}

	respondError(w, statusFromError(err), message)
}
