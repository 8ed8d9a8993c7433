package display

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dotbrew/pkg/dispatcher"
	"github.com/arthur-debert/dotbrew/pkg/errors"
)

// JSONRenderer provides JSON output for machine consumption
type JSONRenderer struct {
	encoder *json.Encoder
}

// NewJSONRenderer creates a new JSON renderer
func NewJSONRenderer(output io.Writer) *JSONRenderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &JSONRenderer{encoder: encoder}
}

// RenderResult renders the result as JSON
func (r *JSONRenderer) RenderResult(result *dispatcher.Result) error {
	return r.encoder.Encode(result)
}

// RenderDirectives renders the directive listing as JSON
func (r *JSONRenderer) RenderDirectives(directives []DirectiveInfo) error {
	return r.encoder.Encode(map[string]interface{}{
		"directives": directives,
	})
}

// RenderError renders an error as JSON, with its code when it has one
func (r *JSONRenderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		errorObj["code"] = code
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a simple message as JSON
func (r *JSONRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{
		"message": msg,
	})
}
