// Lithium interprets a small imperative scripting language whose evaluator
// fuses lexing, parsing, and execution: there is no separate parse phase
// producing an AST. Statements are newline-separated within a scope;
// scopes are delimited by ':' ... '.'; '%' introduces a line comment.
//
// Usage:
//
//	lithium [path]
//
// With a path argument, that file's bytes are interpreted. Without one,
// stdin is read to EOF and interpreted.
package main

import (
	"context"
	"flag"
	"io/ioutil"
	"os"
	"time"

	"github.com/FlyingJester/go-lithium/internal/logio"
)

func main() {
	var (
		timeout time.Duration
		trace   bool
		dump    bool
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print a dump of the final scope chain after execution")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	source, err := readProgram(flag.Arg(0))
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	var opts []Option
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	ev := New(source, opts...)

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		d := newDumper(ev, lw)
		if !trace {
			// With no -trace, DUMP-level lines would be the only output on
			// stderr; also mirror the dump straight to stdout so `-dump`
			// alone is useful piped into another command.
			d.addOutput(os.Stdout)
		}
		defer d.dump()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(ev.Run(ctx))
}

// readProgram implements spec.md §6's CLI surface: a named file if path is
// non-empty, otherwise stdin read to EOF.
func readProgram(path string) (string, error) {
	if path != "" {
		b, err := ioutil.ReadFile(path)
		return string(b), err
	}
	b, err := ioutil.ReadAll(os.Stdin)
	return string(b), err
}
