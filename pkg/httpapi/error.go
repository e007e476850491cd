package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/floodops/pafs/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteDomainError maps a domain error value to the envelope. Anything that
// is not a *serrors.Error is treated as an infrastructure fault.
func WriteDomainError(w http.ResponseWriter, err error) error {
	var de *serrors.Error
	if errors.As(err, &de) {
		return WriteError(w, de.Status, de.Code, de.Message, de.Meta())
	}
	return WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
