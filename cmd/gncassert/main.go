package main

import (
	"os"

	"github.com/robinvdvleuten/gncassert/cli"
)

func main() {
	result := cli.Execute(os.Args[1:])
	os.Exit(result.ExitCode)
}
