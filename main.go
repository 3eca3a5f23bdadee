package main

import (
	"fmt"
	"os"

	"github.com/ColinR77/Computer-Management-User-Audit/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main runs the local account audit and exits non-zero when the audit cannot complete.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
