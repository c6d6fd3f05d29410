package oauth1

import (
	"net/url"
	"strings"
	"testing"
)

func TestNonce(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		nonce := Nonce()
		if len(nonce) != 16 {
			t.Fatalf("Expected 16-character nonce, got %q", nonce)
		}
		for _, r := range nonce {
			if !strings.ContainsRune(nonceAlphabet, r) {
				t.Fatalf("Unexpected nonce character %q in %q", r, nonce)
			}
		}
		seen[nonce] = true
	}
	if len(seen) != 100 {
		t.Errorf("Expected unique nonces, got %d distinct out of 100", len(seen))
	}
}

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abcABC123", "abcABC123"},
		{"-._~", "-._~"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"ä", "%C3%A4"},
		{"a/b?c=d&e", "a%2Fb%3Fc%3Dd%26e"},
	}
	for _, tt := range tests {
		if got := percentEncode(tt.in); got != tt.want {
			t.Errorf("percentEncode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseString(t *testing.T) {
	u, _ := url.Parse("http://example.com/request?b5=%3D%253D&a3=a&c%40=&a2=r%20b")
	params := []param{
		{"oauth_consumer_key", "9djdj82h48djs9d2"},
		{"oauth_token", "kkk9d7dh3k39sjv7"},
		{"oauth_signature_method", "HMAC-SHA1"},
		{"oauth_timestamp", "137131201"},
		{"oauth_nonce", "7d8f3e4a"},
		{"c2", ""},
		{"a3", "2 q"},
	}
	for k, vs := range u.Query() {
		for _, v := range vs {
			params = append(params, param{k, v})
		}
	}

	got := baseString("post", u, params)

	// RFC 5849 section 3.4.1.1 example (minus realm, which is not signed).
	want := "POST&http%3A%2F%2Fexample.com%2Frequest&a2%3Dr%2520b%26a3%3D2%2520q" +
		"%26a3%3Da%26b5%3D%253D%25253D%26c%2540%3D%26c2%3D%26oauth_consumer_" +
		"key%3D9djdj82h48djs9d2%26oauth_nonce%3D7d8f3e4a%26oauth_signature_m" +
		"ethod%3DHMAC-SHA1%26oauth_timestamp%3D137131201%26oauth_token%3Dkkk" +
		"9d7dh3k39sjv7"
	if got != want {
		t.Errorf("baseString mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestNormalizedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP://Example.com:80/path", "http://example.com/path"},
		{"https://example.com:443/path", "https://example.com/path"},
		{"https://example.com:8443/path", "https://example.com:8443/path"},
		{"http://example.com", "http://example.com/"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.in)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", tt.in, err)
		}
		if got := normalizedURL(u); got != tt.want {
			t.Errorf("normalizedURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSignHMACSHA1(t *testing.T) {
	signer := &Signer{
		ConsumerKey:    "consumer-key",
		ConsumerSecret: "consumer-secret",
		Token:          "access-token",
		TokenSecret:    "access-secret",
	}
	u, _ := url.Parse("https://api.example.com/resource?page=2")

	signed, err := signer.Sign("GET", u, nil)
	if err != nil {
		t.Fatalf("Sign() returned error: %v", err)
	}

	header := signed.AuthorizationHeader()
	if !strings.HasPrefix(header, "OAuth ") {
		t.Errorf("Expected OAuth header prefix, got %q", header)
	}
	for _, name := range []string{
		"oauth_consumer_key", "oauth_nonce", "oauth_signature_method",
		"oauth_timestamp", "oauth_token", "oauth_version", "oauth_signature",
	} {
		if !strings.Contains(header, name+"=") {
			t.Errorf("Expected %s in header, got %q", name, header)
		}
	}

	signedURL, err := url.Parse(signed.URL())
	if err != nil {
		t.Fatalf("Failed to parse signed URL: %v", err)
	}
	q := signedURL.Query()
	if q.Get("page") != "2" {
		t.Errorf("Expected original query parameter in signed URL, got %q", signedURL.RawQuery)
	}
	if q.Get("oauth_signature") == "" {
		t.Error("Expected oauth_signature in signed URL")
	}

	body := signed.PostBody()
	if !strings.Contains(body, "oauth_signature=") || !strings.Contains(body, "page=2") {
		t.Errorf("Expected signed POST body, got %q", body)
	}
}

func TestSignPlaintext(t *testing.T) {
	signer := &Signer{
		ConsumerSecret:  "cs",
		TokenSecret:     "ts",
		SignatureMethod: SignaturePlaintext,
	}
	u, _ := url.Parse("https://api.example.com/resource")

	signed, err := signer.Sign("POST", u, nil)
	if err != nil {
		t.Fatalf("Sign() returned error: %v", err)
	}
	if !strings.Contains(signed.PostBody(), "oauth_signature=cs%26ts") {
		t.Errorf("Expected plaintext signature cs&ts, got %q", signed.PostBody())
	}
}

func TestSignUnsupportedMethod(t *testing.T) {
	signer := &Signer{SignatureMethod: "RSA-SHA1"}
	u, _ := url.Parse("https://api.example.com/resource")
	if _, err := signer.Sign("GET", u, nil); err == nil {
		t.Error("Expected error for unsupported signature method")
	}
}
