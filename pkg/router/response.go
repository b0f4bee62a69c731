package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

type errorResponse struct {
	Success bool        `json:"success"`
	Code    errorx.Code `json:"code,omitempty"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
}

func newErrorResponse(err error) errorResponse {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	resp := errorResponse{
		Success: false,
		Code:    errx.Code,
		Message: errx.Message,
		Error:   errx.Detail,
	}

	if resp.Error == "" {
		resp.Error = errx.Message
	}

	return resp
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if err := writeJSON(w, errorx.HTTPStatus(err), newErrorResponse(err)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
	}
}

func writeNotFound(w http.ResponseWriter) {
	_ = writeJSON(w, http.StatusNotFound, errorResponse{
		Success: false,
		Message: "Endpoint not found",
	})
}

func writeJSON(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
