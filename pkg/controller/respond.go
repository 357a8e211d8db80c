package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"registrar/pkg/logger"
	"registrar/pkg/serrors"

	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed JSON request.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// WriteJSON encodes body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps err onto its HTTP status and writes the error envelope.
// Internal errors are logged and their cause is hidden from the client.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := serrors.KindOf(err)
	status := serrors.StatusCode(err)
	resp := ErrorResponse{Code: kind.Error(), Message: http.StatusText(status)}

	var se *serrors.Error
	if errors.As(err, &se) {
		if se.Message() != "" && status < http.StatusInternalServerError {
			resp.Message = se.Message()
		}
		if fields := se.Fields(); !fields.Empty() {
			resp.Errors = fields
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}

	WriteJSON(w, status, resp)
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}
