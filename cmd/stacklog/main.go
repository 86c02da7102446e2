// Command stacklog runs a child process inside a timed stacklog scope.
//
//	$ stacklog run -m "Building" -- make build
//	level=INFO msg=Building...
//	level=INFO msg="Building...DONE in 12.31 s"
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *childExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
