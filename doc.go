// Package webapi is a declarative framework for building REST API client
// bindings. A consumer declares a table of commands — endpoint name, HTTP
// method, path template, payload wrapping and mapping rules, content types —
// and the client synthesizes each request uniformly:
//
//   - Path templates with mandatory (:name) and optional (:name?) segments
//   - JSON / XML / URL-encoded / plain codecs, with custom overrides
//   - Mandatory-field validation, including dotted nested paths
//   - Attribute renaming and payload wrapping (single or nested keys)
//   - Pluggable auth: basic, key-in-body, key-in-query, OAuth 1.0a
//     (header, query and POST-body variants)
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Every failure is a returned error value; nothing panics mid-call
//   - The HTTP transport is an injected collaborator, so pooling, TLS,
//     cookies and retry policy stay outside the core
//
// Typical usage:
//
//	client := webapi.New("https://api.example.com/v1", webapi.Commands{
//	    "get_user":    {Method: "GET", Path: "user/:id"},
//	    "create_user": {Method: "POST", Mandatory: []string{"name"}, Wrapper: webapi.WrapperKeys{"user"}},
//	},
//	    webapi.WithCredentials("alice", "s3cret"),
//	    webapi.WithDefaultContentType("application/json"),
//	)
//	resp, err := client.Call(ctx, "get_user", map[string]any{"id": "42"})
//
// Command tables can also be declared in YAML and loaded with LoadCommands.
package webapi
