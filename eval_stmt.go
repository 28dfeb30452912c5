package main

// interpretSet implements `set <identifier> <expression>` (spec.md §4.5):
// evaluate the expression, then bind it in the innermost scope regardless
// of whether the name was already bound there or anywhere else. It does
// not type-check against any prior declaration -- the source has no notion
// of one.
func (ev *Evaluator) interpretSet() error {
	name, ok := ev.src.GetIdentifier()
	if !ok {
		return ev.syntaxErrorf("expected an identifier after set")
	}
	if err := ev.interpretExpression(); err != nil {
		return err
	}
	ev.state.addVariable(name, ev.state.pop())
	return nil
}

// interpretVarDecl implements the fallback production `<TypeSpecifier>
// <identifier> <expression>` (spec.md §4.5): the initializer's kind must
// equal the declared type exactly, and an Object-prototype declaration must
// resolve before the initializer is even evaluated.
func (ev *Evaluator) interpretVarDecl() error {
	typ, err := ev.parseTypeSpecifier()
	if err != nil {
		return err
	}
	if err := ev.verifyPrototype(typ); err != nil {
		return err
	}
	name, ok := ev.src.GetIdentifier()
	if !ok {
		return ev.syntaxErrorf("expected an identifier after type specifier")
	}
	if err := ev.interpretExpression(); err != nil {
		return err
	}
	v := ev.state.pop()
	if v.Kind != typ.OurType {
		return ev.typeErrorf("initializer kind %v does not match declared type %v", v.Kind, typ.OurType)
	}
	ev.state.addVariable(name, v)
	return nil
}

// interpretFunctionDecl implements `function <identifier> '(' ... ')' ':'
// ... '.'` (spec.md §4.5): parse the parameter list, record the body's
// start position (the opening ':'), then use the scope-skipper to advance
// past the body without evaluating it.
func (ev *Evaluator) interpretFunctionDecl() error {
	s := ev.src
	name, ok := s.GetIdentifier()
	if !ok {
		return ev.syntaxErrorf("expected a function name")
	}
	s.SkipWhitespace()
	if !s.Match('(') {
		return ev.syntaxErrorf("expected '(' after function name")
	}

	var params []Param
	s.SkipWhitespace()
	for s.Peek() != ')' {
		s.SkipWhitespace()
		typ, err := ev.parseTypeSpecifier()
		if err != nil {
			return err
		}
		pname, ok := s.GetIdentifier()
		if !ok {
			return ev.syntaxErrorf("expected a parameter name")
		}
		params = append(params, Param{Name: pname, Type: typ})
		s.SkipWhitespace()
		if s.Peek() != ',' {
			break
		}
		s.Get()
		s.SkipWhitespace()
	}
	if !s.Match(')') {
		return ev.syntaxErrorf("expected ')' to close parameter list")
	}

	s.SkipWhitespace()
	bodyStart := s.Position()
	if err := ev.skipScope(); err != nil {
		return err
	}
	if !s.Match('.') {
		return ev.syntaxErrorf("expected '.' to close function body")
	}

	ev.state.addVariable(name, Value{Kind: Function, Func: &FuncValue{Start: bodyStart, Args: params}})
	return nil
}

// interpretIf implements `if <expression> ':' ... '.'` (spec.md §4.5).
func (ev *Evaluator) interpretIf() error {
	if err := ev.interpretExpression(); err != nil {
		return err
	}
	cond := ev.state.pop()
	if !cond.IsConditional() {
		return ev.typeErrorf("if condition has non-conditional kind %v", cond.Kind)
	}
	ev.src.SkipWhitespace()

	if !cond.Truthy() {
		if err := ev.skipScope(); err != nil {
			return err
		}
		if !ev.src.Match('.') {
			return ev.syntaxErrorf("expected '.' to close if body")
		}
		return nil
	}
	if !ev.src.Match(':') {
		return ev.syntaxErrorf("expected ':' to open if body")
	}
	if err := ev.interpretProgram(true); err != nil {
		return err
	}
	if !ev.src.Match('.') {
		return ev.syntaxErrorf("expected '.' to close if body")
	}
	return nil
}

// interpretLoop implements `loop <expression> ':' ... '.'` (spec.md §4.5):
// the pre-expression cursor position is saved and restored on every
// truthy iteration, so the condition is reparsed from scratch each time.
func (ev *Evaluator) interpretLoop() error {
	for {
		pos := ev.src.Position()
		if err := ev.interpretExpression(); err != nil {
			return err
		}
		cond := ev.state.pop()
		if !cond.IsConditional() {
			return ev.typeErrorf("loop condition has non-conditional kind %v", cond.Kind)
		}
		ev.src.SkipWhitespace()

		if !cond.Truthy() {
			if err := ev.skipScope(); err != nil {
				return err
			}
			if !ev.src.Match('.') {
				return ev.syntaxErrorf("expected '.' to close loop")
			}
			return nil
		}

		if !ev.src.Match(':') {
			return ev.syntaxErrorf("expected ':' to open loop body")
		}
		if err := ev.interpretProgram(true); err != nil {
			return err
		}
		if !ev.src.Match('.') {
			return ev.syntaxErrorf("expected '.' to close loop body")
		}
		ev.src.SetPosition(pos)
	}
}

// interpretReturn implements `return <expression>` (spec.md §4.5): the
// expression's value is left on the value stack as the call's result, the
// cursor is restored to the call site, and the call's scope is popped.
// A return with no enclosing call is a malformed program, not a VM bug, so
// it is reported as an ordinary ReferenceError rather than left to panic on
// scope underflow.
func (ev *Evaluator) interpretReturn() error {
	if ev.state.depth() <= 1 {
		return ev.referenceErrorf("return outside of a function call")
	}
	if err := ev.interpretExpression(); err != nil {
		return err
	}
	sc := ev.state.innermost()
	ev.src.SetPosition(sc.End)
	ev.state.popScope()
	return errReturned
}

// interpretUp implements `up` (spec.md §4.5): equivalent to return with no
// value.
func (ev *Evaluator) interpretUp() error {
	if ev.state.depth() <= 1 {
		return ev.referenceErrorf("up outside of a function call")
	}
	sc := ev.state.innermost()
	ev.src.SetPosition(sc.End)
	ev.state.popScope()
	return errReturned
}
