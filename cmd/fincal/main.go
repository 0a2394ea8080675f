package main

import (
	"io"
	"os"

	"github.com/meenmo/fincal/cmd/fincal/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return cli.Execute(args, stdin, stdout, stderr)
}
