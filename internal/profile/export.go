package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed export_schema.json
var exportSchema string

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every schema violation of an export document.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid profile export: " + strings.Join(parts, "; ")
}

// ParseExport validates a JSON profile export and decodes it.
func ParseExport(data []byte) (Profile, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(exportSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return Profile{}, fmt.Errorf("validate profile export: %w", err)
	}
	if !result.Valid() {
		verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return Profile{}, verr
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Profile{}, fmt.Errorf("decode profile export: %w", err)
	}

	var p Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Profile{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Profile{}, fmt.Errorf("decode profile export: %w", err)
	}
	return p, nil
}
