package processor

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/stripe/stripe-go/v82"
)

var ErrTimeout = errors.New("payment processor request timed out")

// APIError is a non-2xx answer from the processor. Its message is the one
// the processor returned, so it can be shown to the caller as is.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	return e.Message
}

func decodeError(statusCode int, body []byte) error {
	var envelope struct {
		Error *stripe.Error `json:"error"`
	}

	apiErr := &APIError{StatusCode: statusCode}
	if err := sonic.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		apiErr.Type = string(envelope.Error.Type)
		apiErr.Code = string(envelope.Error.Code)
		apiErr.Message = envelope.Error.Msg
		apiErr.RequestID = envelope.Error.RequestID
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("payment processor responded with status code %d", statusCode)
	}

	return apiErr
}
