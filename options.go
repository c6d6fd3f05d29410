package webapi

import (
	"net/http"
	"net/url"
)

// Option represents a configuration option
type Option func(*Client)

// WithCredentials sets the account user and API key.
func WithCredentials(user, apiKey string) Option {
	return func(c *Client) {
		c.user = user
		c.apiKey = apiKey
	}
}

// WithAuthType selects the authentication scheme.
func WithAuthType(authType AuthType) Option {
	return func(c *Client) {
		c.authType = authType
	}
}

// WithAPIKeyField sets the body field the hash_key scheme injects the API
// key under. Defaults to "api_key".
func WithAPIKeyField(field string) Option {
	return func(c *Client) {
		c.apiKeyField = field
	}
}

// WithOAuthCredentials sets the OAuth 1.0a consumer secret and access
// token pair. The API key doubles as the consumer key.
func WithOAuthCredentials(consumerSecret, accessToken, accessSecret string) Option {
	return func(c *Client) {
		c.consumerSecret = consumerSecret
		c.accessToken = accessToken
		c.accessSecret = accessSecret
	}
}

// WithSignatureMethod sets the OAuth signature method (default HMAC-SHA1).
func WithSignatureMethod(method string) Option {
	return func(c *Client) {
		c.signatureMethod = method
	}
}

// WithOAuthPostBody makes OAuth variants sign into the POST body instead of
// the header or query string.
func WithOAuthPostBody() Option {
	return func(c *Client) {
		c.oauthPostBody = true
	}
}

// WithMapping sets the shared key/value substitution table.
func WithMapping(mapping map[string]string) Option {
	return func(c *Client) {
		c.mapping = mapping
	}
}

// WithDefaultMethod sets the HTTP method used by commands that declare none
// (default GET).
func WithDefaultMethod(method string) Option {
	return func(c *Client) {
		c.defaultMethod = method
	}
}

// WithDefaultContentType sets the client-wide generic content type.
func WithDefaultContentType(contentType string) Option {
	return func(c *Client) {
		c.defaultContentType = contentType
	}
}

// WithContentTypes sets the client-wide incoming and outgoing content
// types; either may be empty to fall through to the generic type.
func WithContentTypes(incoming, outgoing string) Option {
	return func(c *Client) {
		c.incomingContentType = incoming
		c.outgoingContentType = outgoing
	}
}

// WithExtension appends ".extension" to every request path and implies a
// content type (json, js, xml, debug).
func WithExtension(extension string) Option {
	return func(c *Client) {
		c.extension = extension
	}
}

// WithWrapper sets the client-wide payload wrapper, used by commands that
// declare none.
func WithWrapper(keys ...string) Option {
	return func(c *Client) {
		c.wrapper = WrapperKeys(keys)
	}
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithEncoder replaces the built-in encoders for request bodies.
func WithEncoder(encoder EncoderFunc) Option {
	return func(c *Client) {
		c.encoder = encoder
	}
}

// WithDecoder replaces the built-in decoders for response bodies.
func WithDecoder(decoder DecoderFunc) Option {
	return func(c *Client) {
		c.decoder = decoder
	}
}

// WithTransport sets a custom transport collaborator.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithHTTPClient backs the default transport with a custom http.Client
// (connection pooling, TLS, proxies, retries all live there).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithMiddleware adds middleware to the default transport.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a simple console logger
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// WithMetrics enables Prometheus metrics collection
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// SetBaseURL repoints the client at a different API host.
func (c *Client) SetBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "invalid base URL",
			Cause:   err,
		}
	}
	c.baseURL = u
	return nil
}

// SetCredentials replaces the account user and API key.
func (c *Client) SetCredentials(user, apiKey string) {
	c.user = user
	c.apiKey = apiKey
}

// SetMapping replaces the key/value substitution table.
func (c *Client) SetMapping(mapping map[string]string) {
	c.mapping = mapping
}

// SetHeader sets a default header sent with every request.
func (c *Client) SetHeader(key, value string) {
	c.header.Set(key, value)
}

// SetDebug toggles debug tracing.
func (c *Client) SetDebug(enabled bool) {
	if c.debug == nil {
		c.debug = DefaultDebugConfig()
	}
	c.debug.Enabled = enabled
}
