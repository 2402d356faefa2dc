package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMissingField is matched by every request validation failure.
var ErrMissingField = errors.New("missing or invalid field")

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingField
}

type Schema string

const (
	CheckoutSchema     Schema = "checkout"
	VerifySchema       Schema = "verify"
	CancellationSchema Schema = "cancellation"
)

// Validator checks raw request bodies against the embedded schemas before
// they are decoded.
type Validator struct {
	schemas map[Schema]*gojsonschema.Schema
}

func NewValidator() (*Validator, error) {
	sources := map[Schema]string{
		CheckoutSchema:     checkoutSchema,
		VerifySchema:       verifySchema,
		CancellationSchema: cancellationSchema,
	}

	schemas := make(map[Schema]*gojsonschema.Schema, len(sources))
	for name, source := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
		}
		schemas[name] = schema
	}

	return &Validator{schemas: schemas}, nil
}

func (v *Validator) Validate(name Schema, body []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	if len(body) == 0 {
		body = []byte("{}")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationError{Problems: []string{"request body must be valid JSON"}}
	}

	if result.Valid() {
		return nil
	}

	return &ValidationError{Problems: describe(result.Errors())}
}

// rootContext is how gojsonschema names the document root in Field().
const rootContext = "(root)"

// amountOrItems are the properties covered by the checkout anyOf; their
// branch errors are folded into a single message.
var amountOrItems = map[string]bool{"amount": true, "items": true}

// describe puts missing required fields first so the most actionable message
// leads.
func describe(resultErrors []gojsonschema.ResultError) []string {
	anyOfFailed := false
	for _, resultErr := range resultErrors {
		if resultErr.Type() == "number_any_of" {
			anyOfFailed = true
		}
	}

	var required, other []string
	seen := make(map[string]bool)

	for _, resultErr := range resultErrors {
		var msg string
		switch resultErr.Type() {
		case "required":
			property := fmt.Sprint(resultErr.Details()["property"])
			if anyOfFailed && resultErr.Field() == rootContext && amountOrItems[property] {
				continue
			}
			msg = fmt.Sprintf("%s is required", fieldPath(resultErr.Field(), property))
		case "number_any_of":
			msg = "either amount or a non-empty items list is required"
		default:
			msg = fmt.Sprintf("%s: %s", resultErr.Field(), resultErr.Description())
		}

		if seen[msg] {
			continue
		}
		seen[msg] = true

		if resultErr.Type() == "required" {
			required = append(required, msg)
		} else {
			other = append(other, msg)
		}
	}

	return append(required, other...)
}

func fieldPath(parent, property string) string {
	if parent == "" || parent == rootContext {
		return property
	}

	return parent + "." + property
}
