package webapi

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const commandTableYAML = `
get_user:
  method: GET
  path: user/:id
list_users:
  method: GET
create_user:
  method: POST
  mandatory:
    - name
    - email
  wrapper: user
  default_attributes:
    active: true
create_report:
  method: POST
  wrapper:
    - report
    - data
  no_mapping: true
  content_type: text/xml
legacy_user:
  method: GET
  require_id: true
  pre_id_path: people
`

func TestParseCommands(t *testing.T) {
	cmds, err := ParseCommands([]byte(commandTableYAML))
	if err != nil {
		t.Fatalf("ParseCommands() returned error: %v", err)
	}
	if len(cmds) != 5 {
		t.Fatalf("Expected 5 commands, got %d", len(cmds))
	}

	create := cmds["create_user"]
	if !reflect.DeepEqual(create.Mandatory, []string{"name", "email"}) {
		t.Errorf("Unexpected mandatory fields: %v", create.Mandatory)
	}
	if !reflect.DeepEqual(create.Wrapper, WrapperKeys{"user"}) {
		t.Errorf("Expected scalar wrapper to parse as one key, got %v", create.Wrapper)
	}
	if create.Defaults["active"] != true {
		t.Errorf("Unexpected defaults: %v", create.Defaults)
	}

	report := cmds["create_report"]
	if !reflect.DeepEqual(report.Wrapper, WrapperKeys{"report", "data"}) {
		t.Errorf("Expected list wrapper, got %v", report.Wrapper)
	}
	if !report.NoMapping || report.ContentType != "text/xml" {
		t.Errorf("Unexpected command: %+v", report)
	}

	legacy := cmds["legacy_user"]
	if !legacy.RequireID || legacy.PreIDPath != "people" {
		t.Errorf("Unexpected legacy command: %+v", legacy)
	}
}

func TestLoadCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	if err := os.WriteFile(path, []byte(commandTableYAML), 0o600); err != nil {
		t.Fatalf("Failed to write command table: %v", err)
	}

	cmds, err := LoadCommands(path)
	if err != nil {
		t.Fatalf("LoadCommands() returned error: %v", err)
	}
	if _, ok := cmds["get_user"]; !ok {
		t.Error("Expected get_user command to load")
	}

	if _, err := LoadCommands(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestCommandsValidate(t *testing.T) {
	tests := []struct {
		name string
		cmds Commands
	}{
		{"unknown method", Commands{"x": {Method: "FETCH"}}},
		{"path and require_id", Commands{"x": {Path: "a/:id", RequireID: true}}},
		{"empty mandatory field", Commands{"x": {Mandatory: []string{""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmds.validate()
			if !errors.Is(err, &ClientError{Type: ErrorTypeValidation}) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}

	valid := Commands{
		"get_user": {Method: "get", Path: "user/:id"},
		"status":   {},
	}
	if err := valid.validate(); err != nil {
		t.Errorf("Expected valid table, got %v", err)
	}
}

func TestParseCommandsRejectsMalformedYAML(t *testing.T) {
	_, err := ParseCommands([]byte("get_user: [not a command"))
	if !errors.Is(err, &ClientError{Type: ErrorTypeValidation}) {
		t.Errorf("Expected validation error, got %v", err)
	}
}
