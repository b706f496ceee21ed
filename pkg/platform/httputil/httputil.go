// Package httputil writes the JSON envelope shared by every API endpoint:
//
//	{"success": bool, "message": "...", "data": [...], "id": 1, "stats": {...}}
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "aquads/pkg/domain-errors"
)

// Envelope is the response body of every /api endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      *int64 `json:"id,omitempty"`
	Data    any    `json:"data,omitempty"`
	Stats   any    `json:"stats,omitempty"`
}

// internalMessage is the only message clients see for unexpected failures.
const internalMessage = "database error"

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a 200 envelope with success=true.
func WriteSuccess(w http.ResponseWriter, env Envelope) {
	env.Success = true
	WriteJSON(w, http.StatusOK, env)
}

// WriteError translates err into a failed envelope. Domain errors keep their
// message unless they map to a 5xx, in which case the cause stays server-side.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := internalMessage
	if de, ok := dErrors.As(err); ok {
		status = dErrors.ToHTTPStatus(de.Code)
		if status < http.StatusInternalServerError {
			message = de.Message
		}
	}
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}
