package http

import (
	"encoding/json"
	"net/http"

	apperrors "staybook/pkg/errors"
)

// Every API response carries a success flag. Handler-level failures are
// reported with success=false and HTTP 200; clients inspect the flag, not
// the status code. The settlement webhook is the exception and answers
// with plain status codes.
type Envelope map[string]any

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes {"success": true} merged with the given payload.
func WriteSuccess(w http.ResponseWriter, payload Envelope) error {
	body := Envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return WriteJSON(w, http.StatusOK, body)
}

// WriteMessage writes a success envelope with only a message.
func WriteMessage(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, Envelope{
		"success": true,
		"message": message,
	})
}

// WriteFailure reports a handler-level failure. The status code stays 200;
// only the AppError's client-safe message is exposed.
func WriteFailure(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, http.StatusOK, Envelope{
		"success": false,
		"message": appErr.Message,
	})
}

// WriteBadRequest answers with a real 400. Used by the settlement webhook,
// where the gateway retries on non-2xx status codes.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusBadRequest, Envelope{
		"success": false,
		"message": message,
	})
}
