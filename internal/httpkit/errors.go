package httpkit

import (
	"net/http"

	"lifedemo/internal/pkg/errors"
	"lifedemo/internal/pkg/logger"
)

// WriteError logs err and writes it as a Failure. A zero status derives one from the error code.
func WriteError(w http.ResponseWriter, r *http.Request, log *logger.Logger, status int, err error) {
	if status == 0 {
		status = errors.GetHTTPStatus(err)
	}
	reqLog := log.FromContext(r.Context())

	fields := []any{
		"error", err.Error(),
		"code", string(errors.GetCode(err)),
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
	}
	for k, v := range errors.GetFields(err) {
		fields = append(fields, k, v)
	}

	if status >= 500 {
		var e *errors.Error
		if errors.As(err, &e) && len(e.Stack) > 0 {
			fields = append(fields, "stack", e.StackTrace())
		}
		reqLog.Error("request failed", fields...)
	} else {
		reqLog.Warn("request error", fields...)
	}

	WriteFailure(w, status, errors.Message(err))
}
