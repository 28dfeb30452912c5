package main

import "errors"

// errReturned is a control-transfer sentinel, not a failure: interpretReturn
// and interpretUp return it once the cursor and scope stack have already
// been unwound to the call site, and every enclosing interpretProgram/
// interpretIf/interpretLoop simply propagates it without trying to match its
// own closing '.' (the cursor no longer points anywhere near that '.'). Only
// interpretCall, which owns the matching scope push, treats it as success.
var errReturned = errors.New("lithium: return/up executed")

// Evaluator is the fused lexer/parser/executor (spec.md §2): it owns the
// source cursor and drives it forward production by production, rather than
// building and then walking a separate AST. Grounded on
// original_source/src/interpreter.hpp's Interpreter, which likewise holds a
// reference to the Context it evaluates against.
type Evaluator struct {
	src   *Source
	state *State
	logf  func(mess string, args ...interface{})
}

// NewEvaluator creates an Evaluator over the given program text.
func NewEvaluator(source string, opts ...Option) *Evaluator {
	ev := &Evaluator{
		src:   NewSource(source),
		state: newState(),
	}
	Options(opts...).apply(ev)
	return ev
}

func (ev *Evaluator) tracef(mess string, args ...interface{}) {
	if ev.logf != nil {
		ev.logf(mess, args...)
	}
}

// interpretTopLevel runs the program to completion: statements separated by
// whitespace/newlines, with no enclosing scope delimiter, until input is
// exhausted (spec.md §2: "Control flow: the evaluator owns the scanner and
// drives it forward").
func (ev *Evaluator) interpretTopLevel() error {
	return ev.interpretProgram(false)
}

// interpretProgram runs statements until either end of input (inScope
// false) or an unconsumed '.' is reached (inScope true, used for if/loop/
// function-call bodies). It never consumes that trailing '.' itself -- the
// caller does, since the caller is also the one who consumed the opening
// ':'.
func (ev *Evaluator) interpretProgram(inScope bool) error {
	for {
		if !ev.src.SkipWhitespaceAndNewline() {
			if inScope {
				return ev.syntaxErrorf("unexpected end of input before closing '.'")
			}
			return nil
		}
		if inScope && ev.src.Peek() == '.' {
			return nil
		}
		if err := ev.interpretStatement(); err != nil {
			return err
		}
	}
}

// interpretStatement dispatches on the leading keyword (spec.md §4.5). A
// non-keyword identifier is not consumed as a keyword at all: the cursor is
// restored and the statement is reparsed as a variable declaration, whose
// grammar also starts with an identifier (a type name).
func (ev *Evaluator) interpretStatement() error {
	save := ev.src.Position()
	kw, ok := ev.src.GetAlphaIdentifier()
	if !ok {
		return ev.syntaxErrorf("expected a statement")
	}
	switch kw {
	case "set":
		return ev.interpretSet()
	case "get":
		// Not part of the source's statement dispatch (get is only ever a
		// value production there), but spec.md §8 scenario 5 runs a bare
		// `get y` as a whole program and requires the unbound-name failure
		// to surface as a ReferenceError rather than the SyntaxError a
		// type-specifier parse of "get" would otherwise produce; see
		// DESIGN.md.
		return ev.interpretGet()
	case "call":
		return ev.interpretCallStatement()
	case "function":
		return ev.interpretFunctionDecl()
	case "if":
		return ev.interpretIf()
	case "loop":
		return ev.interpretLoop()
	case "return":
		return ev.interpretReturn()
	case "up":
		return ev.interpretUp()
	default:
		ev.src.SetPosition(save)
		return ev.interpretVarDecl()
	}
}

// parseTypeSpecifier parses a TypeSpecifier (spec.md §4.5): int/float/bool/
// string are leaves, array nests one level of element type, prototype names
// an enclosing-scope Object binding. Function-type parsing is omitted,
// matching original_source/src/interpreter.cpp's own unfinished handling of
// it (see DESIGN.md).
func (ev *Evaluator) parseTypeSpecifier() (TypeSpecifier, error) {
	name, ok := ev.src.GetAlphaIdentifier()
	if !ok {
		return TypeSpecifier{}, ev.syntaxErrorf("expected a type specifier")
	}
	switch name {
	case "int":
		return TypeSpecifier{OurType: Integer}, nil
	case "float":
		return TypeSpecifier{OurType: Floating}, nil
	case "bool":
		return TypeSpecifier{OurType: Boolean}, nil
	case "string":
		return TypeSpecifier{OurType: String}, nil
	case "array":
		ev.src.SkipWhitespace()
		elem, err := ev.parseTypeSpecifier()
		if err != nil {
			return TypeSpecifier{}, err
		}
		return TypeSpecifier{OurType: Array, ReturnType: elem.OurType}, nil
	case "prototype":
		proto, ok := ev.src.GetIdentifier()
		if !ok {
			return TypeSpecifier{}, ev.syntaxErrorf("expected a prototype name")
		}
		return TypeSpecifier{OurType: Object, Prototype: proto}, nil
	default:
		return TypeSpecifier{}, ev.syntaxErrorf("unknown type specifier %q", name)
	}
}

// verifyPrototype checks that typ, if it names a prototype, resolves to an
// Object bound in some enclosing scope (spec.md §4.5, original_source/src/
// variables.cpp's VerifyPrototypes).
func (ev *Evaluator) verifyPrototype(typ TypeSpecifier) error {
	if typ.OurType != Object || typ.Prototype == "" {
		return nil
	}
	if !ev.state.findPrototype(typ.Prototype) {
		return ev.referenceErrorf("unknown prototype %q", typ.Prototype)
	}
	return nil
}
