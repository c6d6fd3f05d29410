package webapi

import (
	"fmt"
	"net/url"

	"github.com/nupfel/Web-API/internal/oauth1"
)

// AuthType selects how credentials are attached to outgoing requests.
type AuthType string

// Supported authentication schemes. Anything else degrades to a logged
// no-op so a misconfigured client still produces requests.
const (
	AuthNone        AuthType = "none"
	AuthBasic       AuthType = "basic"
	AuthHashKey     AuthType = "hash_key"
	AuthGetParams   AuthType = "get_params"
	AuthOAuthHeader AuthType = "oauth_header"
	AuthOAuthParams AuthType = "oauth_params"
	AuthOAuthBody   AuthType = "oauth_body"
)

func isOAuth(t AuthType) bool {
	switch t {
	case AuthOAuthHeader, AuthOAuthParams, AuthOAuthBody:
		return true
	}
	return false
}

// effectiveAuthType folds the post-body flag into the variant: any OAuth
// type with OAuthPostBody set signs into the request body.
func (c *Client) effectiveAuthType() AuthType {
	if c.oauthPostBody && isOAuth(c.authType) {
		return AuthOAuthBody
	}
	return c.authType
}

// applyAuth mutates URI, options or headers before the body is encoded.
// OAuth variants run later (applyOAuth) because they sign the final URI.
func (c *Client) applyAuth(req *requestEnvelope, options map[string]any) {
	switch c.effectiveAuthType() {
	case AuthNone, "":
	case AuthBasic:
		req.uri.User = url.UserPassword(c.user, c.apiKey)
	case AuthHashKey:
		field := c.apiKeyField
		if field == "" {
			field = "api_key"
		}
		options[field] = c.apiKey
	case AuthGetParams:
		q := req.uri.Query()
		q.Set(c.mapKey("user"), c.user)
		q.Set(c.mapKey("api_key"), c.apiKey)
		req.uri.RawQuery = q.Encode()
	case AuthOAuthHeader, AuthOAuthParams, AuthOAuthBody:
	default:
		if c.logger != nil {
			c.logger.Warn("Unsupported auth type, sending request unauthenticated", "authType", string(c.authType))
		}
	}
}

// applyOAuth signs the request after the URI and body are final. Each call
// signs with a fresh nonce and timestamp.
func (c *Client) applyOAuth(req *requestEnvelope, options map[string]any) error {
	authType := c.effectiveAuthType()
	if !isOAuth(authType) {
		return nil
	}

	signer := &oauth1.Signer{
		ConsumerKey:     c.apiKey,
		ConsumerSecret:  c.consumerSecret,
		Token:           c.accessToken,
		TokenSecret:     c.accessSecret,
		SignatureMethod: c.signatureMethod,
	}

	var extra url.Values
	if authType == AuthOAuthBody && req.method == "POST" {
		extra = flattenOptions(options)
	}

	signed, err := signer.Sign(req.method, req.uri, extra)
	if err != nil {
		return &ClientError{
			Type:    ErrorTypeEncode,
			Message: "could not sign request",
			Method:  req.method,
			URL:     req.uri.String(),
			Cause:   err,
		}
	}

	switch authType {
	case AuthOAuthHeader:
		req.header.Set("Authorization", signed.AuthorizationHeader())
	case AuthOAuthParams:
		uri, err := url.Parse(signed.URL())
		if err != nil {
			return &ClientError{Type: ErrorTypeEncode, Message: "could not parse signed URL", Cause: err}
		}
		req.uri = uri
	case AuthOAuthBody:
		if req.method == "POST" {
			// The canonical POST body replaces whatever was encoded.
			req.body = signed.PostBody()
			req.header.Set("Content-Type", "application/x-www-form-urlencoded")
		} else {
			req.header.Set("Authorization", signed.AuthorizationHeader())
		}
	}
	return nil
}

// flattenOptions projects top-level option entries into url.Values for
// signing and form bodies.
func flattenOptions(options map[string]any) url.Values {
	values := url.Values{}
	for k, v := range options {
		values.Set(k, fmt.Sprint(v))
	}
	return values
}
