package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidSchema(t *testing.T) {
	dir := writeSchemaDir(t, employeeSchema)

	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ Schema valid: 2 record(s), 8 field(s)")
	assert.Contains(t, stdout, "Employee: 6 field(s), 4 filterable, 1 lookup(s)")
	assert.Contains(t, stdout, "Department: 2 field(s), 2 filterable, 0 lookup(s)")
}

func TestValidateValidSchemaJSON(t *testing.T) {
	dir := writeSchemaDir(t, employeeSchema)

	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), dir)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, []RecordResult{
		{Name: "Employee", Fields: 6, Filterable: 4, Lookups: 1},
		{Name: "Department", Fields: 2, Filterable: 2, Lookups: 0},
	}, resp.Data.Records)
}

func TestValidateInvalidSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		code   string
	}{
		{
			name:   "unknown target",
			schema: `list: Employee: fields: Department: {kind: "lookup", target: "Dept"}`,
			code:   "S010",
		},
		{
			name:   "unknown kind",
			schema: `list: Employee: fields: Salary: kind: "currency"`,
			code:   "S007",
		},
		{
			name:   "lookup without target",
			schema: `list: Employee: fields: Manager: kind: "lookup"`,
			code:   "S008",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSchemaDir(t, "package lists\n"+tt.schema+"\n")

			stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), dir)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, stdout, "Error ["+tt.code+"]")
			assert.Contains(t, stdout, "lists.cue:", "position should be reported")
		})
	}
}

func TestValidateInvalidSchemaJSON(t *testing.T) {
	dir := writeSchemaDir(t, "package lists\nlist: Employee: fields: Department: {kind: \"lookup\", target: \"Dept\"}\n")

	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "S010", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Employee.Department")

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details["file"], "lists.cue")
}

func TestValidateLoadErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, stdout, "Error [S002]")
	})

	t.Run("no cue files", func(t *testing.T) {
		stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), t.TempDir())
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, stdout, "Error [S003]")
	})

	t.Run("syntax error", func(t *testing.T) {
		dir := writeSchemaDir(t, "package lists\nlist: {{{\n")
		stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), dir)
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, stdout, "Error [S004]")
	})
}
