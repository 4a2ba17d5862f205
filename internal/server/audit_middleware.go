package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		entry := AuditLogEntry{
			Timestamp: time.Now(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   handlerName(r.URL.Path, r.Method),
			ReturnID:  returnIDFromPath(r.URL.Path),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.Actor = username
		}

		if r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)
			entry.NewStatus = targetStatus(r.URL.Path, requestBody)

			if entry.ReturnID == "" {
				var linked struct {
					ReturnID string `json:"return_id"`
				}
				if err := json.Unmarshal(requestBody, &linked); err == nil {
					entry.ReturnID = linked.ReturnID
				}
			}
		}

		arw := &auditResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(arw, r)

		entry.StatusCode = arw.status
		entry.Response = arw.body.String()

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

// returnIDFromPath pulls the {id} segment out of /returns/admin/{id}[/...].
func returnIDFromPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 3 && parts[0] == "returns" && parts[1] == "admin" {
		if parts[2] != "stats" {
			return parts[2]
		}
	}
	return ""
}

// targetStatus reports which status a mutating request drives toward, when
// that is knowable from the route and body alone.
func targetStatus(path string, body []byte) string {
	switch {
	case strings.HasSuffix(path, "/approve"):
		return "approved"
	case strings.HasSuffix(path, "/reject"):
		return "rejected"
	case strings.HasSuffix(path, "/status"):
		var req struct {
			NewStatus string `json:"new_status"`
		}
		if err := json.Unmarshal(body, &req); err == nil {
			return req.NewStatus
		}
	}
	return ""
}

func handlerName(path string, method string) string {
	switch {
	case strings.HasSuffix(path, "/approve"):
		return "handleApprove"
	case strings.HasSuffix(path, "/reject"):
		return "handleReject"
	case strings.HasSuffix(path, "/status"):
		return "handleUpdateStatus"
	case strings.HasSuffix(path, "/notes"):
		return "handleAddNote"
	case path == "/returns/admin/stats":
		return "handleStats"
	case strings.HasPrefix(path, "/returns/admin") && method == http.MethodGet:
		if path == "/returns/admin" {
			return "handleListReturns"
		}
		return "handleGetReturn"
	case path == "/returns" && method == http.MethodPost:
		return "handleCreateReturn"
	case strings.HasPrefix(path, "/refunds/admin"):
		return "handleCreateRefund"
	case strings.HasPrefix(path, "/replacements/admin"):
		return "handleCreateReplacement"
	}
	return "unknown"
}
