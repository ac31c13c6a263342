// Command spquery compiles YAML predicates into OData filter queries and
// generates typed filter keys from CUE list schemas.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/spquery/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// Commands report their own failures; cobra usage errors are silenced
	// and still need printing.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
