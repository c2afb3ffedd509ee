// Command gen_examples runs the example programs enumerated below
// concurrently, each against its own Interp, and writes their captured
// output to testdata/examples.golden. Grounded on gothird's
// scripts/gen_vm_expects.go: an errgroup.Group fans work out and a single
// writer goroutine serializes the result, except here the concurrent unit
// is "run one Joy program to completion" rather than "rewrite one line of
// generated Go", and the deprecated golang.org/x/net/context import is
// replaced with the standard library's context (Go 1.21 no longer needs
// the external package gothird depended on for it).
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shakfu/pyjoy/joy"
)

// example is one row of the concrete end-to-end scenarios table: a
// one-phrase program ending in the `.` terminator, and the exact line that
// autoput prints for the top of its stack afterwards.
type example struct {
	name string
	prog string
	want string
}

var examples = []example{
	{"add", `2 3 + .`, `5`},
	{"map-square", `[1 2 3 4] [dup *] map .`, `[1 4 9 16]`},
	{"primrec-factorial", `5 [1] [*] primrec .`, `120`},
	{"linrec-flatten", `[[1 2] [3] [4 5 6]] [null] [] [uncons] [concat] linrec .`, `[1 2 3 4 5 6]`},
	{"ifte-scale", `500 [1000 >] [2 /] [3 *] ifte .`, `1500`},
	{"set-and", `{1 3 5 7} {2 3 5 8} and .`, `{3 5}`},
	{"powerlist-size2", `[1 2 3] powerlist [size 2 =] filter .`, `[[1 2] [1 3] [2 3]]`},
}

var outPath = flag.String("out", "testdata/examples.golden", "path to write the golden file")

func main() {
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results := make([]string, len(examples))
	eg, ctx := errgroup.WithContext(ctx)

	for i, ex := range examples {
		i, ex := i, ex
		eg.Go(func() error {
			got, err := runExample(ctx, ex)
			if err != nil {
				return fmt.Errorf("%s: %w", ex.name, err)
			}
			if got != ex.want {
				return fmt.Errorf("%s: got %q, want %q", ex.name, got, ex.want)
			}
			results[i] = fmt.Sprintf("%s\t%s\n", ex.name, got)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalln(err)
	}
	var buf bytes.Buffer
	buf.WriteString("# generated by scripts/gen_examples.go; do not edit by hand\n")
	for _, line := range results {
		buf.WriteString(line)
	}
	if err := os.WriteFile(*outPath, buf.Bytes(), 0o644); err != nil {
		log.Fatalln(err)
	}
}

// runExample runs one program to completion against a fresh Interp and
// returns whatever it printed, trimmed of the trailing newline. Each
// example gets its own Interp so a stuck program cannot corrupt another's
// stack or file table; ctx bounds a runaway `while`/recursive definition.
func runExample(ctx context.Context, ex example) (string, error) {
	var out bytes.Buffer
	it, err := joy.New(
		joy.WithStdin(strings.NewReader("")),
		joy.WithStdout(&out),
		joy.WithStderr(&out),
		joy.WithSeed(1),
		joy.WithAutoput(true),
	)
	if err != nil {
		return "", err
	}

	done := make(chan error, 1)
	go func() { done <- it.Run(ex.name, strings.NewReader(ex.prog)) }()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			if _, ok := err.(*joy.QuitError); !ok {
				return "", err
			}
		}
	}

	return strings.TrimRight(out.String(), "\n"), nil
}
