package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spquery/internal/samples"
)

func TestSamplesText(t *testing.T) {
	stdout, _, err := execute(NewSamplesCommand(&RootOptions{Format: "text"}), "--today", "2023-11-23T09:30:00+01:00")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "text_equality\n  # single text comparison\n  Firstname eq 'David'\n"))
	assert.Contains(t, stdout, "(Created ge '2023-11-22T23:00:00.000Z' and Created le '2023-11-23T22:59:59.999Z')")
	assert.Contains(t, stdout, "(Employed eq 0 or Employed eq null)")
}

func TestSamplesJSON(t *testing.T) {
	stdout, _, err := execute(NewSamplesCommand(&RootOptions{Format: "json"}), "--today", "2023-11-23")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   []samples.Sample `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, "text_equality", resp.Data[0].Name)
	assert.Equal(t, "Firstname eq 'David'", resp.Data[0].Filter)
}

func TestSamplesRejectsArgs(t *testing.T) {
	_, _, err := execute(NewSamplesCommand(&RootOptions{Format: "text"}), "extra")
	assert.Error(t, err)
}

func TestSamplesBadToday(t *testing.T) {
	stdout, _, err := execute(NewSamplesCommand(&RootOptions{Format: "text"}), "--today", "later")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E006]")
}
