// Package oauth1 implements the OAuth 1.0a signature machinery (RFC 5849)
// needed to authorize outgoing requests: nonce generation, signature base
// string construction, HMAC-SHA1 / PLAINTEXT signing, and the three
// presentation forms (Authorization header, signed URL, signed POST body).
package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Signature methods supported by Sign.
const (
	SignatureHMACSHA1  = "HMAC-SHA1"
	SignaturePlaintext = "PLAINTEXT"
)

const oauthVersion = "1.0"

const nonceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Signer holds the long-lived credentials used to sign requests.
type Signer struct {
	ConsumerKey     string
	ConsumerSecret  string
	Token           string
	TokenSecret     string
	SignatureMethod string
}

// Signed is the outcome of signing one request. It captures the protocol
// parameters (including the computed oauth_signature) together with the
// request parameters that participated in the signature.
type Signed struct {
	base  *url.URL
	oauth []param
	extra []param
}

type param struct {
	key   string
	value string
}

// Nonce returns a fresh 16-character random alphanumeric nonce. A new nonce
// must be generated for every signed request.
func Nonce() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp-derived value rather than panicking mid-request.
		return fmt.Sprintf("%016d", time.Now().UnixNano()%1e16)
	}
	for i, b := range buf {
		buf[i] = nonceAlphabet[int(b)%len(nonceAlphabet)]
	}
	return string(buf)
}

// Sign computes the OAuth 1.0a signature for method + requestURL + extra
// request parameters. The query component of requestURL is folded into the
// signature; extra carries any additional request parameters (form body or
// to-be-appended query values).
func (s *Signer) Sign(method string, requestURL *url.URL, extra url.Values) (*Signed, error) {
	sigMethod := s.SignatureMethod
	if sigMethod == "" {
		sigMethod = SignatureHMACSHA1
	}

	oauth := []param{
		{"oauth_consumer_key", s.ConsumerKey},
		{"oauth_nonce", Nonce()},
		{"oauth_signature_method", sigMethod},
		{"oauth_timestamp", strconv.FormatInt(time.Now().Unix(), 10)},
		{"oauth_token", s.Token},
		{"oauth_version", oauthVersion},
	}

	var extraParams []param
	for k, vs := range extra {
		for _, v := range vs {
			extraParams = append(extraParams, param{k, v})
		}
	}
	for k, vs := range requestURL.Query() {
		for _, v := range vs {
			extraParams = append(extraParams, param{k, v})
		}
	}

	key := percentEncode(s.ConsumerSecret) + "&" + percentEncode(s.TokenSecret)

	var signature string
	switch sigMethod {
	case SignaturePlaintext:
		signature = key
	case SignatureHMACSHA1:
		base := baseString(method, requestURL, append(append([]param{}, oauth...), extraParams...))
		mac := hmac.New(sha1.New, []byte(key))
		mac.Write([]byte(base))
		signature = base64.StdEncoding.EncodeToString(mac.Sum(nil))
	default:
		return nil, fmt.Errorf("oauth1: unsupported signature method %q", sigMethod)
	}

	oauth = append(oauth, param{"oauth_signature", signature})

	return &Signed{base: requestURL, oauth: oauth, extra: extraParams}, nil
}

// AuthorizationHeader renders the protocol parameters as an OAuth
// Authorization header value.
func (r *Signed) AuthorizationHeader() string {
	parts := make([]string, 0, len(r.oauth))
	for _, p := range r.oauth {
		parts = append(parts, fmt.Sprintf("%s=%q", percentEncode(p.key), percentEncode(p.value)))
	}
	return "OAuth " + strings.Join(parts, ", ")
}

// URL returns the request URL with every signed parameter (protocol and
// request) carried in the query component.
func (r *Signed) URL() string {
	u := *r.base
	u.RawQuery = encodeParams(append(append([]param{}, r.extra...), r.oauth...))
	return u.String()
}

// PostBody returns every signed parameter form-encoded for use as an
// application/x-www-form-urlencoded request body.
func (r *Signed) PostBody() string {
	return encodeParams(append(append([]param{}, r.extra...), r.oauth...))
}

// baseString builds the RFC 5849 section 3.4.1 signature base string.
func baseString(method string, requestURL *url.URL, params []param) string {
	encoded := make([]param, 0, len(params))
	for _, p := range params {
		encoded = append(encoded, param{percentEncode(p.key), percentEncode(p.value)})
	}
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i].key != encoded[j].key {
			return encoded[i].key < encoded[j].key
		}
		return encoded[i].value < encoded[j].value
	})
	pairs := make([]string, 0, len(encoded))
	for _, p := range encoded {
		pairs = append(pairs, p.key+"="+p.value)
	}

	return strings.ToUpper(method) + "&" +
		percentEncode(normalizedURL(requestURL)) + "&" +
		percentEncode(strings.Join(pairs, "&"))
}

// normalizedURL is scheme://host/path with default ports elided and the
// query component dropped (query parameters are signed separately).
func normalizedURL(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

func encodeParams(params []param) string {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, percentEncode(p.key)+"="+percentEncode(p.value))
	}
	return strings.Join(pairs, "&")
}

// percentEncode applies the strict RFC 3986 encoding OAuth requires: only
// ALPHA, DIGIT, '-', '.', '_' and '~' pass through unencoded.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '.' || c == '_' || c == '~':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
