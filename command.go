package webapi

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Command describes one API operation: how to build its path, which
// attributes it requires, and how its payload is shaped. Commands are
// registered at construction and never mutated by the client.
type Command struct {
	// Method is the HTTP method; empty falls back to the client default.
	Method string `yaml:"method"`

	// Path is a template with :name (mandatory) and :name? (optional)
	// placeholders. Empty means the command name itself is the path.
	Path string `yaml:"path"`

	// RequireID is the legacy shorthand predating templates: the call must
	// supply an "id" argument, placed between PreIDPath and PostIDPath.
	RequireID  bool   `yaml:"require_id"`
	PreIDPath  string `yaml:"pre_id_path"`
	PostIDPath string `yaml:"post_id_path"`

	// Mandatory lists attributes that must be present before any network
	// I/O; entries may be dot-separated paths for structured payloads.
	Mandatory []string `yaml:"mandatory"`

	// Defaults are merged under the caller's options.
	Defaults map[string]any `yaml:"default_attributes"`

	// Wrapper nests the whole payload under one or more keys, first key
	// outermost. YAML accepts a scalar or a sequence.
	Wrapper WrapperKeys `yaml:"wrapper"`

	// NoMapping disables the client mapping table for this command.
	NoMapping bool `yaml:"no_mapping"`

	// Headers are merged over the client's default headers.
	Headers map[string]string `yaml:"headers"`

	// Content type overrides, each taking precedence over the client-wide
	// configuration. ContentType covers both directions.
	IncomingContentType string `yaml:"incoming_content_type"`
	OutgoingContentType string `yaml:"outgoing_content_type"`
	ContentType         string `yaml:"content_type"`
}

// Commands is the table of registered operations, keyed by command name.
type Commands map[string]Command

// WrapperKeys is an ordered list of payload wrapper keys. It unmarshals
// from a YAML scalar (one key) or sequence (nested keys).
type WrapperKeys []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *WrapperKeys) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var key string
		if err := node.Decode(&key); err != nil {
			return err
		}
		if key != "" {
			*w = WrapperKeys{key}
		}
		return nil
	case yaml.SequenceNode:
		var keys []string
		if err := node.Decode(&keys); err != nil {
			return err
		}
		*w = WrapperKeys(keys)
		return nil
	}
	return fmt.Errorf("wrapper must be a string or a list of strings")
}

// ParseCommands reads a YAML command table of the form:
//
//	get_user:
//	  method: GET
//	  path: user/:id
//	create_user:
//	  method: POST
//	  mandatory: [name, email]
//	  wrapper: user
func ParseCommands(data []byte) (Commands, error) {
	var cmds Commands
	if err := yaml.Unmarshal(data, &cmds); err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeValidation,
			Message: "could not parse command table",
			Cause:   err,
		}
	}
	if err := cmds.validate(); err != nil {
		return nil, err
	}
	return cmds, nil
}

// LoadCommands reads a YAML command table from a file.
func LoadCommands(path string) (Commands, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeValidation,
			Message: fmt.Sprintf("could not read command table %q", path),
			Cause:   err,
		}
	}
	return ParseCommands(data)
}

var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// validate reports every problem in the table at once, in the spirit of
// failing at construction rather than mid-call.
func (cmds Commands) validate() error {
	var problems []string
	for name, cmd := range cmds {
		if name == "" {
			problems = append(problems, "command with empty name")
			continue
		}
		if cmd.Method != "" && !knownMethods[strings.ToUpper(cmd.Method)] {
			problems = append(problems, fmt.Sprintf("%s: unknown method %q", name, cmd.Method))
		}
		if cmd.Path != "" && cmd.RequireID {
			problems = append(problems, fmt.Sprintf("%s: path template and require_id are mutually exclusive", name))
		}
		if cmd.Path != "" && !placeholderRe.MatchString(cmd.Path) && strings.Contains(cmd.Path, ":") {
			problems = append(problems, fmt.Sprintf("%s: malformed placeholder in path %q", name, cmd.Path))
		}
		for _, field := range cmd.Mandatory {
			if field == "" {
				problems = append(problems, fmt.Sprintf("%s: empty mandatory field", name))
			}
		}
	}
	if len(problems) > 0 {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "command table validation failed",
			Cause:   fmt.Errorf("validation errors: %v", problems),
		}
	}
	return nil
}
