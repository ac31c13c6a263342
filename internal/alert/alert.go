// Package alert surfaces failed list requests to the user without hiding
// them from the caller.
//
// Run executes an operation; when it fails, the most useful message is
// extracted and handed to an Alerter, and the original error is returned
// unchanged so retries and propagation still see it.
package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/roach88/spquery/internal/logging"
)

// HTTPError is a failed request to a list host.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("list request failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Alerter shows a message to the user.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(ctx context.Context, message string)

// Alert calls f.
func (f AlerterFunc) Alert(ctx context.Context, message string) { f(ctx, message) }

// SlogAlerter reports alerts as error records.
type SlogAlerter struct {
	logger *slog.Logger
}

// NewSlogAlerter creates an alerter logging to logger. A nil logger
// discards alerts.
func NewSlogAlerter(logger *slog.Logger) *SlogAlerter {
	return &SlogAlerter{logger: logging.Default(logger).With("component", "alert")}
}

// Alert logs message at error level.
func (a *SlogAlerter) Alert(ctx context.Context, message string) {
	a.logger.ErrorContext(ctx, "request failed", "message", message)
}

// Run calls op. A failure is alerted and then returned as is.
func Run[T any](ctx context.Context, a Alerter, op func(context.Context) (T, error)) (T, error) {
	v, err := op(ctx)
	if err != nil {
		a.Alert(ctx, Message(err))
	}
	return v, err
}

// Message returns the text to show for err: the server message of an
// HTTPError whose body carries one, otherwise err's own text.
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := serverMessage(httpErr.Body); ok {
			return msg
		}
	}
	return err.Error()
}

// odataError is the verbose error body, {"odata.error": {"message":
// {"value": "..."}}}.
type odataError struct {
	Error *struct {
		Message struct {
			Value string `json:"value"`
		} `json:"message"`
	} `json:"odata.error"`
}

func serverMessage(body []byte) (string, bool) {
	var parsed odataError
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == nil || parsed.Error.Message.Value == "" {
		return "", false
	}
	return parsed.Error.Message.Value, true
}
