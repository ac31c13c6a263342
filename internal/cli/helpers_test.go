package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const employeeSchema = `
package lists

list: Employee: fields: {
	Title: kind: "text"
	Age: kind: "number"
	Active: kind: "boolean"
	Hired: kind: "date"
	Skills: kind: "text_collection"
	Department: {kind: "lookup", target: "Department"}
}

list: Department: fields: {
	Title: kind: "text"
	Budget: kind: "number"
}
`

// writeSchemaDir writes a CUE schema package to a temp dir.
func writeSchemaDir(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lists.cue"), []byte(content), 0644))
	return dir
}

// writeFile writes content to name in a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
