// Command joy is a thin CLI wrapper around the joy package: it wires
// stdin/stdout/stderr and the command-line flags to an Interp and runs
// whatever files are named on the command line, falling back to stdin as
// an interactive session when none are given. Grounded on gothird's own
// main.go, which does the same flag-parse-then-Run shape for its VM.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shakfu/pyjoy/joy"
)

func main() {
	os.Exit(run())
}

func run() int {
	var undefError bool
	var autoput bool
	var echo int
	var seed int64
	flag.BoolVar(&undefError, "undeferror", false, "raise an error on undefined words instead of ignoring them")
	flag.BoolVar(&autoput, "autoput", false, "print the top of stack after each phrase")
	flag.IntVar(&echo, "echo", 0, "diagnostic echo level (>=2 dumps the stack after each phrase)")
	flag.Int64Var(&seed, "seed", 1, "seed for the rand/srand primitives")
	flag.Parse()

	it, err := joy.New(
		joy.WithStdin(os.Stdin),
		joy.WithStdout(os.Stdout),
		joy.WithStderr(os.Stderr),
		joy.WithArgs(flag.Args()),
		joy.WithSeed(seed),
		joy.WithUndefError(undefError),
		joy.WithAutoput(autoput),
		joy.WithEcho(echo),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "joy: %v\n", err)
		return 1
	}

	files := flag.Args()
	if len(files) == 0 {
		if err := it.Run("<stdin>", os.Stdin); err != nil {
			return exitCode(err)
		}
		return 0
	}

	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "joy: %v\n", err)
			return 1
		}
		runErr := it.Run(name, f)
		f.Close()
		if runErr != nil {
			return exitCode(runErr)
		}
	}
	return 0
}

func exitCode(err error) int {
	if qe, ok := err.(*joy.QuitError); ok {
		return qe.Code
	}
	fmt.Fprintf(os.Stderr, "joy: %v\n", err)
	return 1
}
