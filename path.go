package webapi

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Placeholders are :name (mandatory) or :name? (optional). The single-pass
// rebuild below keeps one placeholder name from matching inside another
// (":id" never fires inside ":idempotency") and keeps substituted values
// from being rescanned.
var placeholderRe = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)(\?)?`)

// buildPath resolves a command's path against the call arguments. Arguments
// consumed by a placeholder are removed from args; the remainder flows on to
// the options mapper.
func (c *Client) buildPath(name string, cmd *Command, args map[string]any) (string, error) {
	var path string
	switch {
	case cmd.Path != "":
		resolved, err := resolveTemplate(cmd.Path, args)
		if err != nil {
			if ce, ok := err.(*ClientError); ok {
				ce.Command = name
			}
			return "", err
		}
		path = resolved
	case cmd.RequireID:
		id, ok := args["id"]
		if !ok {
			return "", &ClientError{
				Type:    ErrorTypeMissingPathArgument,
				Message: `missing "id" argument`,
				Command: name,
				Fields:  []string{"id"},
			}
		}
		delete(args, "id")
		pre := cmd.PreIDPath
		if pre == "" {
			pre = name
		}
		segments := []string{pre, url.PathEscape(fmt.Sprint(id))}
		if cmd.PostIDPath != "" {
			segments = append(segments, cmd.PostIDPath)
		}
		path = strings.Join(segments, "/")
	default:
		path = name
	}

	if c.extension != "" {
		path += "." + c.extension
	}
	return path, nil
}

// resolveTemplate substitutes placeholders left to right. A mandatory
// placeholder without an argument fails; an optional one disappears together
// with its leading separator so no empty segment is left behind.
func resolveTemplate(template string, args map[string]any) (string, error) {
	var out strings.Builder
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(template, -1) {
		literal := template[last:m[0]]
		name := template[m[2]:m[3]]
		optional := m[4] != -1

		value, present := args[name]
		switch {
		case present:
			out.WriteString(literal)
			out.WriteString(url.PathEscape(fmt.Sprint(value)))
			delete(args, name)
		case optional:
			// Drop the placeholder and the separator that introduced it.
			out.WriteString(strings.TrimSuffix(literal, "/"))
		default:
			return "", &ClientError{
				Type:    ErrorTypeMissingPathArgument,
				Message: fmt.Sprintf("missing %q argument for path %q", name, template),
				Fields:  []string{name},
			}
		}
		last = m[1]
	}
	out.WriteString(template[last:])
	return out.String(), nil
}
