package payload

import (
	"encoding/json"
	"errors"
	"io"
	"runtime/debug"

	"github.com/marvin-wtt/BalloonOrganizer/core/assign"
)

// Error kinds surfaced on the error channel.
const (
	KindInputMalformed   = "InputMalformed"
	KindConfiguration    = "ConfigurationError"
	KindSolverInfeasible = "SolverInfeasible"
	KindInternal         = "InternalError"
)

// ErrorPayload is the structured error object written to stderr.
type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Trace   string `json:"trace"`
}

// ErrorKind classifies err into the boundary taxonomy. Parse failures are the
// caller's to classify; everything unrecognized is internal.
func ErrorKind(err error) string {
	switch {
	case assign.IsConfigError(err):
		return KindConfiguration
	case errors.Is(err, assign.ErrInfeasible):
		return KindSolverInfeasible
	default:
		return KindInternal
	}
}

// WriteError serializes err as a one-line JSON object to w, capturing the
// current stack as the trace.
func WriteError(w io.Writer, kind string, err error) {
	payload := ErrorPayload{
		Type:    kind,
		Message: err.Error(),
		Trace:   string(debug.Stack()),
	}
	_ = json.NewEncoder(w).Encode(payload)
}
