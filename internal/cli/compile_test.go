package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const activeDevelopers = `
list: Employee
where:
  all:
    - {field: Title, op: starts_with, value: Dev}
    - {field: Active, op: is_true}
    - {field: Department, lookup: Budget, op: gt, value: 1000}
`

func TestCompileText(t *testing.T) {
	schemaDir := writeSchemaDir(t, employeeSchema)
	doc := writeFile(t, "active.yaml", activeDevelopers)

	stdout, _, err := execute(NewCompileCommand(&RootOptions{Format: "text"}), doc, "--schema", schemaDir)
	require.NoError(t, err)
	assert.Equal(t, "(startswith(Title, 'Dev') and Active eq 1 and Department/Budget gt 1000)\n", stdout)
}

func TestCompileJSON(t *testing.T) {
	schemaDir := writeSchemaDir(t, employeeSchema)
	doc := writeFile(t, "active.yaml", activeDevelopers)

	stdout, _, err := execute(NewCompileCommand(&RootOptions{Format: "json"}), doc, "-s", schemaDir)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   CompileResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Employee", resp.Data.List)
	assert.Equal(t, "(startswith(Title, 'Dev') and Active eq 1 and Department/Budget gt 1000)", resp.Data.Filter)
}

func TestCompileToday(t *testing.T) {
	schemaDir := writeSchemaDir(t, employeeSchema)
	doc := writeFile(t, "today.yaml", "list: Employee\nwhere: {field: Hired, op: today}\n")

	stdout, _, err := execute(NewCompileCommand(&RootOptions{Format: "text"}),
		doc, "--schema", schemaDir, "--today", "2023-11-23T09:30:00+01:00")
	require.NoError(t, err)
	assert.Equal(t, "(Hired ge '2023-11-22T23:00:00.000Z' and Hired le '2023-11-23T22:59:59.999Z')\n", stdout)
}

func TestCompileOutputToFile(t *testing.T) {
	schemaDir := writeSchemaDir(t, employeeSchema)
	doc := writeFile(t, "q.yaml", "list: Employee\nwhere: {field: Age, op: lt, value: 30}\n")
	outputFile := filepath.Join(t.TempDir(), "filter.txt")

	_, _, err := execute(NewCompileCommand(&RootOptions{Format: "text"}), doc, "--schema", schemaDir, "--output", outputFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "Age lt 30\n", string(data))
}

func TestCompileVerboseGoesToStderr(t *testing.T) {
	schemaDir := writeSchemaDir(t, employeeSchema)
	doc := writeFile(t, "q.yaml", "list: Employee\nwhere: {field: Age, op: lt, value: 30}\n")

	stdout, stderr, err := execute(NewCompileCommand(&RootOptions{Format: "text", Verbose: true}), doc, "--schema", schemaDir)
	require.NoError(t, err)
	assert.Equal(t, "Age lt 30\n", stdout)
	assert.Contains(t, stderr, "schema loaded")
	assert.Contains(t, stderr, "records=2")
}

func TestCompileErrors(t *testing.T) {
	schemaDir := writeSchemaDir(t, employeeSchema)

	tests := []struct {
		name     string
		doc      string
		args     []string
		exitCode int
		output   string
	}{
		{
			name:     "unknown field",
			doc:      "list: Employee\nwhere: {field: Salary, op: gt, value: 1}\n",
			exitCode: ExitFailure,
			output:   "Error [E004]: where: list Employee has no field",
		},
		{
			name:     "operator not valid for kind",
			doc:      "list: Employee\nwhere: {field: Active, op: starts_with, value: x}\n",
			exitCode: ExitFailure,
			output:   "not supported for boolean",
		},
		{
			name:     "second hop",
			doc:      "list: Employee\nwhere: {field: Department, lookup: Manager, op: eq, value: x}\n",
			exitCode: ExitFailure,
			output:   "list Department has no field",
		},
		{
			name:     "unknown yaml key",
			doc:      "list: Employee\nwhere: {field: Age, op: eq, valu: 1}\n",
			exitCode: ExitFailure,
			output:   "Error [E003]",
		},
		{
			name:     "shape error",
			doc:      "list: Employee\nwhere: {}\n",
			exitCode: ExitFailure,
			output:   "Error [E004]: where: node needs one of",
		},
		{
			name:     "bad today flag",
			doc:      "list: Employee\nwhere: {field: Hired, op: today}\n",
			args:     []string{"--today", "soon"},
			exitCode: ExitCommandError,
			output:   "Error [E006]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := writeFile(t, "q.yaml", tt.doc)
			args := append([]string{doc, "--schema", schemaDir}, tt.args...)

			stdout, _, err := execute(NewCompileCommand(&RootOptions{Format: "text"}), args...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
			assert.Contains(t, stdout, tt.output)
		})
	}
}

func TestCompileMissingFiles(t *testing.T) {
	schemaDir := writeSchemaDir(t, employeeSchema)

	t.Run("missing predicate", func(t *testing.T) {
		stdout, _, err := execute(NewCompileCommand(&RootOptions{Format: "text"}),
			filepath.Join(t.TempDir(), "missing.yaml"), "--schema", schemaDir)
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, stdout, "Error [E002]")
	})

	t.Run("missing schema dir", func(t *testing.T) {
		doc := writeFile(t, "q.yaml", activeDevelopers)
		stdout, _, err := execute(NewCompileCommand(&RootOptions{Format: "text"}),
			doc, "--schema", filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, stdout, "Error [S002]")
	})

	t.Run("schema flag required", func(t *testing.T) {
		doc := writeFile(t, "q.yaml", activeDevelopers)
		_, _, err := execute(NewCompileCommand(&RootOptions{Format: "text"}), doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema")
	})
}

func TestCompileErrorJSON(t *testing.T) {
	schemaDir := writeSchemaDir(t, employeeSchema)
	doc := writeFile(t, "q.yaml", "list: Employee\nwhere: {all: [{field: Ghost, op: is_null}]}\n")

	stdout, _, err := execute(NewCompileCommand(&RootOptions{Format: "json"}), doc, "--schema", schemaDir)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalid, resp.Error.Code)
	assert.Equal(t, map[string]interface{}{"path": "where.all[0]"}, resp.Error.Details)
}
