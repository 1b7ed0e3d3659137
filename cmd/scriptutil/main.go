package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	cl, err := parseCommandLine(os.Args[1:])
	if err == errHelp {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(1)
	}

	if err := run(cl, afero.NewOsFs(), os.Stdout); err != nil {
		printErrorAndExit(err)
	}
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
