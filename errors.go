package webapi

import (
	"fmt"
	"time"
)

// Error type constants used in ClientError.Type. Every failure the pipeline
// can produce is one of these; callers can switch on the type or use
// errors.Is with a ClientError carrying the same type.
const (
	// ErrorTypeUnknownCommand indicates the command name is not registered.
	ErrorTypeUnknownCommand = "UnknownCommand"

	// ErrorTypeMissingPathArgument indicates a mandatory path placeholder
	// had no matching argument.
	ErrorTypeMissingPathArgument = "MissingPathArgument"

	// ErrorTypeMissingMandatoryFields indicates one or more mandatory
	// attributes were absent from the call options.
	ErrorTypeMissingMandatoryFields = "MissingMandatoryFields"

	// ErrorTypeEncode indicates the request body could not be encoded.
	ErrorTypeEncode = "EncodeFailure"

	// ErrorTypeDecode indicates the response body could not be decoded.
	ErrorTypeDecode = "DecodeFailure"

	// ErrorTypeTransport indicates the transport reported a non-success,
	// non-redirect status or failed to complete the exchange.
	ErrorTypeTransport = "TransportFailure"

	// ErrorTypeValidation indicates invalid client or command configuration.
	ErrorTypeValidation = "Validation"
)

// ClientError represents a failure anywhere in the request pipeline.
type ClientError struct {
	Type        string
	Message     string
	Command     string
	Method      string
	URL         string
	StatusCode  int
	ContentType string
	Fields      []string
	RequestID   string
	Timestamp   time.Time
	Cause       error
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.Command != "" {
		msg = fmt.Sprintf("%s (command %q)", msg, e.Command)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *ClientError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Command != "" {
		info += fmt.Sprintf("Command: %s\n", e.Command)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if e.ContentType != "" {
		info += fmt.Sprintf("Content-Type: %s\n", e.ContentType)
	}
	if len(e.Fields) > 0 {
		info += fmt.Sprintf("Fields: %v\n", e.Fields)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}
