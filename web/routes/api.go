package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ReportHandle returns the utilization report of every screen as JSON.
func (s *ServerHandler) ReportHandle(w http.ResponseWriter, _ *http.Request) {
	reports := s.Layout().Reports()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(reports); err != nil {
		slog.Error("Could not encode reports", "error", err)
	}
}
