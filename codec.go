package webapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	mxj "github.com/clbanning/mxj/v2"
)

// EncoderFunc converts a structured payload into a request body for the
// given content type. A configured EncoderFunc fully replaces the built-in
// codecs.
type EncoderFunc func(value any, contentType string) (string, error)

// DecoderFunc converts a response body into structured data for the given
// content type. A configured DecoderFunc fully replaces the built-in codecs.
type DecoderFunc func(payload []byte, contentType string) (any, error)

// encodeBody encodes value according to the content type. useCustom is false
// for the dispatcher's own auxiliary encodes (query strings, auth bodies) so
// a custom encoder fires at most once per call.
func (c *Client) encodeBody(value any, contentType string, useCustom bool) (string, error) {
	if useCustom && c.encoder != nil {
		payload, err := c.encoder(value, contentType)
		if err != nil {
			return "", encodeError(contentType, value, err)
		}
		return payload, nil
	}

	switch {
	case strings.Contains(contentType, "plain"):
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(value), nil
	case strings.Contains(contentType, "urlencoded"):
		m, ok := value.(map[string]any)
		if !ok {
			return "", encodeError(contentType, value, fmt.Errorf("urlencoded payload must be a map, got %T", value))
		}
		return encodeForm(m), nil
	case strings.Contains(contentType, "json"):
		data, err := json.Marshal(value)
		if err != nil {
			return "", encodeError(contentType, value, err)
		}
		return string(data), nil
	case strings.Contains(contentType, "xml"):
		m, ok := value.(map[string]any)
		if !ok {
			return "", encodeError(contentType, value, fmt.Errorf("xml payload must be a map, got %T", value))
		}
		data, err := mxj.Map(m).Xml()
		if err != nil {
			return "", encodeError(contentType, value, err)
		}
		return string(data), nil
	}
	return "", encodeError(contentType, value, fmt.Errorf("no codec for content type %q", contentType))
}

// decodeBody decodes a response body according to the content type.
func (c *Client) decodeBody(payload []byte, contentType string, useCustom bool) (any, error) {
	if useCustom && c.decoder != nil {
		value, err := c.decoder(payload, contentType)
		if err != nil {
			return nil, decodeError(contentType, payload, err)
		}
		return value, nil
	}

	switch {
	case strings.Contains(contentType, "plain"):
		return string(payload), nil
	case strings.Contains(contentType, "urlencoded"):
		return decodeForm(string(payload))
	case strings.Contains(contentType, "json"):
		var value any
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, decodeError(contentType, payload, err)
		}
		return value, nil
	case strings.Contains(contentType, "xml"):
		m, err := mxj.NewMapXml(payload)
		if err != nil {
			return nil, decodeError(contentType, payload, err)
		}
		return map[string]any(m), nil
	}
	return nil, decodeError(contentType, payload, fmt.Errorf("no codec for content type %q", contentType))
}

// encodeForm flattens top-level key/value pairs into k=v joined by &, with
// both components percent-encoded. Keys are sorted so output is stable.
func encodeForm(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(fmt.Sprint(m[k])))
	}
	return strings.Join(pairs, "&")
}

func decodeForm(s string) (any, error) {
	out := make(map[string]any)
	if s == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, "&") {
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, decodeError("urlencoded", []byte(s), err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, decodeError("urlencoded", []byte(s), err)
		}
		out[key] = value
	}
	return out, nil
}

func encodeError(contentType string, value any, cause error) error {
	return &ClientError{
		Type:        ErrorTypeEncode,
		Message:     "could not encode payload " + truncate(fmt.Sprint(value), 200),
		ContentType: contentType,
		Cause:       cause,
	}
}

func decodeError(contentType string, payload []byte, cause error) error {
	return &ClientError{
		Type:        ErrorTypeDecode,
		Message:     "could not decode payload " + truncate(string(payload), 200),
		ContentType: contentType,
		Cause:       cause,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
