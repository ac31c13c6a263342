package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/spquery/internal/schema"
)

// loadRegistry loads a schema directory and reports failures through
// formatter. Problems reading the directory are command errors; schemas
// that load but do not validate are failures.
func loadRegistry(formatter *OutputFormatter, dir string) (*schema.Registry, error) {
	formatter.VerboseLog("loading schema", "dir", dir)

	reg, err := schema.LoadCUE(dir)
	if err != nil {
		return nil, reportSchemaError(formatter, err)
	}

	formatter.VerboseLog("schema loaded", "records", reg.Len())
	return reg, nil
}

func reportSchemaError(formatter *OutputFormatter, err error) error {
	var se *schema.SchemaError
	if !errors.As(err, &se) {
		return formatter.Fail(ExitCommandError, schema.ErrCodeGeneric, err.Error(), nil)
	}

	exitCode := ExitFailure
	switch se.Code {
	case schema.ErrCodeNotFound, schema.ErrCodeNoFiles, schema.ErrCodeLoadFailed:
		exitCode = ExitCommandError
	}

	var details interface{}
	if se.Pos.IsValid() {
		details = map[string]interface{}{
			"file":   se.Pos.Filename(),
			"line":   se.Pos.Line(),
			"column": se.Pos.Column(),
		}
		if formatter.Format != "json" {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n", se.Pos.Filename(), se.Pos.Line(), se.Pos.Column())
		}
	}

	message := se.Message
	if where := schemaLocation(se); where != "" {
		message = where + ": " + message
	}
	return formatter.Fail(exitCode, se.Code, message, details)
}

func schemaLocation(se *schema.SchemaError) string {
	if se.Field == "" {
		return se.Record
	}
	return se.Record + "." + se.Field
}
