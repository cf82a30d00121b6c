package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/caresync/pkg/api"
)

// writeError отвечает в формате api.ErrorResponse, как и handlers
func writeError(w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: code, Message: message})
}
