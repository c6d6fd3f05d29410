package webapi

import (
	"fmt"
	"strings"
)

// mapOptions runs the option pipeline for one call: mandatory-field
// validation, default merge, key/value mapping and payload wrapping.
// options is the caller's argument set after path placeholders have been
// consumed.
func (c *Client) mapOptions(name string, cmd *Command, method string, options map[string]any, incomingType string) (map[string]any, error) {
	if missing := missingFields(cmd.Mandatory, options, incomingType); len(missing) > 0 {
		return nil, &ClientError{
			Type:    ErrorTypeMissingMandatoryFields,
			Message: fmt.Sprintf("missing mandatory fields: %s", strings.Join(missing, ", ")),
			Command: name,
			Fields:  missing,
		}
	}

	result := make(map[string]any, len(cmd.Defaults)+len(options))
	for k, v := range cmd.Defaults {
		result[k] = v
	}

	if len(c.mapping) > 0 && !cmd.NoMapping {
		for k, v := range options {
			result[c.mapKey(k)] = c.mapValue(v)
		}
	} else {
		for k, v := range options {
			result[k] = v
		}
	}

	// Read-style methods ship options as query parameters; wrapping only
	// applies to bodied requests.
	if isReadMethod(method) {
		return result, nil
	}

	wrapper := cmd.Wrapper
	if len(wrapper) == 0 {
		wrapper = c.wrapper
	}
	return wrap(result, wrapper, strings.Contains(incomingType, "xml")), nil
}

// missingFields reports every mandatory field absent from options. For
// structured content types the field is a dot-separated path into nested
// maps; otherwise it names a flat top-level key. A field is present when the
// full chain resolves, even to a falsy leaf.
func missingFields(mandatory []string, options map[string]any, contentType string) []string {
	structured := strings.Contains(contentType, "json") || strings.Contains(contentType, "xml")
	var missing []string
	for _, field := range mandatory {
		if structured {
			if !hasPath(options, strings.Split(field, ".")) {
				missing = append(missing, field)
			}
			continue
		}
		if _, ok := options[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

func hasPath(m map[string]any, path []string) bool {
	current := m
	for i, key := range path {
		value, ok := current[key]
		if !ok {
			return false
		}
		if i == len(path)-1 {
			return true
		}
		next, ok := value.(map[string]any)
		if !ok {
			return false
		}
		current = next
	}
	return true
}

// mapKey renames an option key through the shared mapping table.
func (c *Client) mapKey(key string) string {
	if mapped, ok := c.mapping[key]; ok {
		return mapped
	}
	return key
}

// mapValue translates an option value through the same table. Key and value
// lookups are independent; a string value matching a table entry is replaced
// even when its key was also renamed.
func (c *Client) mapValue(value any) any {
	if s, ok := value.(string); ok {
		if mapped, ok := c.mapping[s]; ok {
			return mapped
		}
	}
	return value
}

// wrap nests options under the wrapper keys, last key innermost. For XML
// each level holds a single-element list so the codec round-trips the
// nesting faithfully.
func wrap(options map[string]any, wrapper []string, xml bool) map[string]any {
	if len(wrapper) == 0 {
		return options
	}
	var nested any = options
	for i := len(wrapper) - 1; i >= 0; i-- {
		if xml {
			nested = map[string]any{wrapper[i]: []any{nested}}
		} else {
			nested = map[string]any{wrapper[i]: nested}
		}
	}
	return nested.(map[string]any)
}

func isReadMethod(method string) bool {
	switch method {
	case "GET", "HEAD", "DELETE":
		return true
	}
	return false
}
