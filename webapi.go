package webapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client synthesizes HTTP requests for a table of declared commands. It is
// configured once at construction; concurrent calls are safe as long as the
// configuration is not mutated concurrently with use (the client does no
// locking of its own).
type Client struct {
	baseURL  *url.URL
	commands Commands

	user            string
	apiKey          string
	apiKeyField     string
	authType        AuthType
	consumerSecret  string
	accessToken     string
	accessSecret    string
	signatureMethod string
	oauthPostBody   bool

	mapping             map[string]string
	defaultMethod       string
	defaultContentType  string
	incomingContentType string
	outgoingContentType string
	extension           string
	wrapper             WrapperKeys
	header              http.Header

	encoder EncoderFunc
	decoder DecoderFunc

	transport  Transport
	httpClient *http.Client
	middleware []Middleware

	debug   *DebugConfig
	logger  Logger
	metrics *MetricsCollector

	validationError error
}

// Response is the envelope returned for every call. Error is set when the
// transport reported a non-success status or decoding failed; in the decode
// case Content falls back to the raw body as a string.
type Response struct {
	Header  http.Header
	Code    int
	Content any
	Raw     []byte
	Error   string
}

// requestEnvelope is the request under construction; it lives for one call.
type requestEnvelope struct {
	method string
	uri    *url.URL
	header http.Header
	body   string
}

// Extension-implied content types, consulted between the command overrides
// and the client-wide configuration.
var contentTypeByExtension = map[string]string{
	"json":  "application/json",
	"js":    "application/json",
	"xml":   "text/xml",
	"debug": "text/plain",
}

// New constructs a Client for the given API base URL and command table.
// A best effort validation is performed; call ValidationError for problems.
func New(baseURL string, commands Commands, options ...Option) *Client {
	client := &Client{
		commands:      commands,
		defaultMethod: "GET",
		header:        http.Header{},
		debug:         DefaultDebugConfig(),
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		client.validationError = &ClientError{
			Type:    ErrorTypeValidation,
			Message: fmt.Sprintf("invalid base URL %q", baseURL),
			Cause:   err,
		}
	}
	client.baseURL = u

	for _, option := range options {
		option(client)
	}

	if client.transport == nil {
		client.transport = newHTTPTransport(client.httpClient, client.middleware)
	}

	if client.validationError == nil {
		client.validationError = client.validateConfiguration()
	}

	return client
}

// ValidationError returns the configuration problem found at construction,
// if any.
func (c *Client) ValidationError() error { return c.validationError }

// IsValid reports whether construction-time validation passed.
func (c *Client) IsValid() bool { return c.validationError == nil }

// validateConfiguration collects every configuration problem at once.
func (c *Client) validateConfiguration() error {
	var problems []string

	if c.baseURL != nil && c.baseURL.Scheme == "" {
		problems = append(problems, "base URL must be absolute")
	}
	switch c.authType {
	case "", AuthNone, AuthBasic, AuthHashKey, AuthGetParams:
	case AuthOAuthHeader, AuthOAuthParams, AuthOAuthBody:
		if c.consumerSecret == "" {
			problems = append(problems, "consumer secret must be set for oauth auth types")
		}
	default:
		// Unknown auth types degrade to a logged no-op at call time.
	}
	if c.defaultMethod != "" && !knownMethods[strings.ToUpper(c.defaultMethod)] {
		problems = append(problems, fmt.Sprintf("unknown default method %q", c.defaultMethod))
	}
	if c.debug != nil && c.debug.Enabled && c.logger == nil {
		problems = append(problems, "logger must be set when debug is enabled")
	}

	if err := c.commands.validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", problems),
		}
	}
	return nil
}

// Call invokes a registered command with the given arguments. Arguments are
// consumed first by path placeholders; the remainder becomes query
// parameters or the request body depending on the method. The returned
// envelope is non-nil whenever a transport exchange happened, including
// failed ones, so callers can always inspect the error body.
func (c *Client) Call(ctx context.Context, name string, args map[string]any) (*Response, error) {
	if c.validationError != nil {
		return nil, c.validationError
	}

	start := time.Now()

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	cmd, ok := c.commands[name]
	if !ok {
		return nil, c.fail(&ClientError{
			Type:    ErrorTypeUnknownCommand,
			Message: fmt.Sprintf("command %q is not registered", name),
			Command: name,
		}, name, requestID)
	}

	method := strings.ToUpper(cmd.Method)
	if method == "" {
		method = strings.ToUpper(c.defaultMethod)
	}

	if c.metrics != nil {
		c.metrics.RecordRequestStart(name, method)
		defer c.metrics.RecordRequestEnd(name, method)
	}

	// Own copy: path substitution consumes arguments destructively.
	options := make(map[string]any, len(args))
	for k, v := range args {
		options[k] = v
	}

	path, err := c.buildPath(name, &cmd, options)
	if err != nil {
		return nil, c.fail(err, name, requestID)
	}

	uri, err := url.Parse(strings.TrimSuffix(c.baseURL.String(), "/") + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, c.fail(&ClientError{
			Type:    ErrorTypeValidation,
			Message: fmt.Sprintf("could not build URL for path %q", path),
			Command: name,
			Cause:   err,
		}, name, requestID)
	}

	incoming := c.resolveIncoming(&cmd)
	outgoing := c.resolveOutgoing(&cmd)

	if c.debugEnabled() && c.debug.LogRequests {
		c.logger.Debug("Starting request", "requestID", requestID, "command", name,
			"method", method, "url", uri.String(), "incoming", incoming, "outgoing", outgoing)
	}

	if needsMapping(&cmd, options, outgoing) {
		options, err = c.mapOptions(name, &cmd, method, options, incoming)
		if err != nil {
			return nil, c.fail(err, name, requestID)
		}
	}

	req := &requestEnvelope{
		method: method,
		uri:    uri,
		header: c.requestHeader(&cmd, incoming),
	}

	c.applyAuth(req, options)

	if isReadMethod(method) {
		if len(options) > 0 {
			// Builtin-only encode: a custom encoder must not fire for the
			// dispatcher's own query-string construction.
			query, err := c.encodeBody(options, "application/x-www-form-urlencoded", false)
			if err != nil {
				return nil, c.fail(err, name, requestID)
			}
			if req.uri.RawQuery != "" {
				req.uri.RawQuery += "&" + query
			} else {
				req.uri.RawQuery = query
			}
		}
	} else if len(options) > 0 {
		body, err := c.encodeBody(options, outgoing, true)
		if err != nil {
			return nil, c.fail(err, name, requestID)
		}
		req.body = body
		req.header.Set("Content-Type", outgoing)
	}

	if err := c.applyOAuth(req, options); err != nil {
		return nil, c.fail(err, name, requestID)
	}

	tr, err := c.transport.Send(ctx, req.method, req.uri.String(), req.header, req.body)
	if err != nil {
		return nil, c.fail(&ClientError{
			Type:    ErrorTypeTransport,
			Message: "request failed",
			Command: name,
			Method:  method,
			URL:     req.uri.String(),
			Cause:   err,
		}, name, requestID)
	}

	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordRequest(name, method, tr.StatusCode, duration)
	}
	if c.debugEnabled() && c.debug.LogResponses {
		c.logger.Debug("Received response", "requestID", requestID, "command", name,
			"status", tr.StatusCode, "bytes", len(tr.Body), "duration", duration)
	}

	envelope := &Response{
		Header: tr.Header,
		Code:   tr.StatusCode,
		Raw:    tr.Body,
	}

	decodeType := incoming
	if decodeType == "" {
		decodeType = tr.Header.Get("Content-Type")
	}

	var decodeErr error
	if len(tr.Body) > 0 && decodeType != "" {
		content, err := c.decodeBody(tr.Body, decodeType, true)
		if err != nil {
			decodeErr = err
			envelope.Content = string(tr.Body)
		} else {
			envelope.Content = content
		}
	} else {
		envelope.Content = string(tr.Body)
	}

	if !tr.Success {
		envelope.Error = fmt.Sprintf("request failed: %s", tr.Status)
		err := &ClientError{
			Type:       ErrorTypeTransport,
			Message:    envelope.Error,
			Command:    name,
			Method:     method,
			URL:        req.uri.String(),
			StatusCode: tr.StatusCode,
			RequestID:  requestID,
			Timestamp:  time.Now(),
		}
		c.logFailure(err, name, requestID)
		return envelope, err
	}

	if decodeErr != nil {
		envelope.Error = decodeErr.Error()
		c.logFailure(decodeErr, name, requestID)
		if ce, ok := decodeErr.(*ClientError); ok {
			ce.Command = name
			ce.RequestID = requestID
		}
		if c.metrics != nil {
			c.metrics.RecordError(ErrorTypeDecode, name)
		}
		return envelope, decodeErr
	}

	return envelope, nil
}

// needsMapping reports whether the options mapper runs for this call.
func needsMapping(cmd *Command, options map[string]any, outgoing string) bool {
	if len(options) > 0 && isBodyContentType(outgoing) {
		return true
	}
	return len(cmd.Defaults) > 0 || len(cmd.Mandatory) > 0
}

func isBodyContentType(contentType string) bool {
	return strings.Contains(contentType, "xml") ||
		strings.Contains(contentType, "json") ||
		strings.Contains(contentType, "urlencoded")
}

// resolveIncoming picks the content type for response bodies: command
// incoming override, command generic override, extension-implied type,
// client incoming, client generic.
func (c *Client) resolveIncoming(cmd *Command) string {
	for _, candidate := range []string{
		cmd.IncomingContentType,
		cmd.ContentType,
		contentTypeByExtension[c.extension],
		c.incomingContentType,
		c.defaultContentType,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// resolveOutgoing picks the content type for request bodies; same chain as
// resolveIncoming minus the extension-implied step.
func (c *Client) resolveOutgoing(cmd *Command) string {
	for _, candidate := range []string{
		cmd.OutgoingContentType,
		cmd.ContentType,
		c.outgoingContentType,
		c.defaultContentType,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// requestHeader merges client defaults with per-command headers.
func (c *Client) requestHeader(cmd *Command, incoming string) http.Header {
	header := c.header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if incoming != "" {
		header.Set("Accept", incoming)
	}
	for k, v := range cmd.Headers {
		header.Set(k, v)
	}
	return header
}

func (c *Client) debugEnabled() bool {
	return c.debug != nil && c.debug.Enabled && c.logger != nil
}

// fail records metrics and debug output for a terminal pipeline error.
func (c *Client) fail(err error, command, requestID string) error {
	if ce, ok := err.(*ClientError); ok {
		if ce.RequestID == "" {
			ce.RequestID = requestID
		}
		if ce.Timestamp.IsZero() {
			ce.Timestamp = time.Now()
		}
		if c.metrics != nil {
			c.metrics.RecordError(ce.Type, command)
		}
	}
	c.logFailure(err, command, requestID)
	return err
}

func (c *Client) logFailure(err error, command, requestID string) {
	if c.debugEnabled() && c.debug.LogErrors {
		c.logger.Error("Request pipeline failed", "requestID", requestID, "command", command, "error", err)
	}
}
