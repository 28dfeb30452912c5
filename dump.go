package main

import (
	"fmt"
	"io"

	"github.com/FlyingJester/go-lithium/internal/flushio"
)

// dumper prints a post-mortem view of an Evaluator's final value stack and
// scope chain, adapted from the teacher's vmDumper -- that one walked a
// flat int-addressed memory image, this one walks the scope chain and
// value stack Lithium's execution state is actually made of. out is
// wrapped in a flushio.WriteFlusher so that a buffered destination (a
// bufio.Writer, or several destinations combined with
// flushio.WriteFlushers) is guaranteed to have the dump on it before dump
// returns, the same guarantee the teacher's CLI relies on for its own
// dump output.
type dumper struct {
	ev  *Evaluator
	out flushio.WriteFlusher
}

// newDumper wraps w in a WriteFlusher the way the teacher's NewAPI wraps its
// first output option.
func newDumper(ev *Evaluator, w io.Writer) *dumper {
	return &dumper{ev: ev, out: flushio.NewWriteFlusher(w)}
}

// addOutput appends another destination for the dump, the same way the
// teacher's Options combines a second WithOutput into vm.out: each
// destination is wrapped in its own WriteFlusher and the two are merged with
// flushio.WriteFlushers, so a single Flush reaches all of them.
func (d *dumper) addOutput(w io.Writer) {
	d.out = flushio.WriteFlushers(d.out, flushio.NewWriteFlusher(w))
}

func (d *dumper) dump() {
	wf := d.out
	if wf == nil {
		return
	}
	fmt.Fprintf(wf, "# Lithium Dump\n")
	d.dumpStackTo(wf)
	d.dumpScopesTo(wf)
	wf.Flush()
}

func (d *dumper) dumpStackTo(w io.Writer) {
	fmt.Fprintf(w, "  stack (%d):\n", len(d.ev.state.stack))
	for i := len(d.ev.state.stack) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "    [%d] %v\n", i, formatValue(d.ev.state.stack[i]))
	}
}

func (d *dumper) dumpScopesTo(w io.Writer) {
	fmt.Fprintf(w, "  scopes (%d):\n", len(d.ev.state.scopes))
	for i, sc := range d.ev.state.scopes {
		name := "global"
		if i > 0 {
			name = fmt.Sprintf("call@%d", i)
		}
		fmt.Fprintf(w, "    %s:\n", name)
		for _, key := range sc.names {
			v := sc.values[key]
			fmt.Fprintf(w, "      %s = %v\n", key, formatValue(v))
		}
	}
}

func formatValue(v Value) string {
	switch v.Kind {
	case Null:
		return "null"
	case Boolean:
		return fmt.Sprintf("bool(%v)", v.Bool)
	case Integer:
		return fmt.Sprintf("int(%d)", v.Int)
	case Floating:
		return fmt.Sprintf("float(%v)", v.Float)
	case String:
		return fmt.Sprintf("string(%q)", v.Str)
	case Array:
		return fmt.Sprintf("array(len=%d)", len(v.Arr))
	case Object:
		return fmt.Sprintf("object(keys=%d)", len(v.Obj.keys))
	case Function:
		return fmt.Sprintf("function(args=%d)", len(v.Func.Args))
	default:
		return v.Kind.String()
	}
}
