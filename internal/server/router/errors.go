package router

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/caresync/pkg/api"
)

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, api.ErrorNotFound, "route not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, api.ErrorBadRequest, "method not allowed", http.StatusMethodNotAllowed)
}

func writeJSONError(w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: code, Message: message})
}
