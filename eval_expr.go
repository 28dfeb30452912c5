package main

// interpretExpression implements `expression -> term (('+'|'-') term)*`
// (spec.md §4.3), left-associative. Each production leaves exactly one
// value on ev.state's stack.
func (ev *Evaluator) interpretExpression() error {
	if err := ev.interpretTerm(); err != nil {
		return err
	}
	for {
		ev.src.SkipWhitespace()
		op := ev.src.Peek()
		if op != '+' && op != '-' {
			return nil
		}
		ev.src.Get()
		if err := ev.interpretTerm(); err != nil {
			return err
		}
		b, a := ev.state.pop(), ev.state.pop()
		v, err := ev.applyArith(op, a, b)
		if err != nil {
			return err
		}
		ev.state.push(v)
	}
}

// interpretTerm implements `term -> factor (('*'|'/') factor)*`.
func (ev *Evaluator) interpretTerm() error {
	if err := ev.interpretFactor(); err != nil {
		return err
	}
	for {
		ev.src.SkipWhitespace()
		op := ev.src.Peek()
		if op != '*' && op != '/' {
			return nil
		}
		ev.src.Get()
		if err := ev.interpretFactor(); err != nil {
			return err
		}
		b, a := ev.state.pop(), ev.state.pop()
		v, err := ev.applyArith(op, a, b)
		if err != nil {
			return err
		}
		ev.state.push(v)
	}
}

// interpretFactor implements `factor -> value (bitop value)*`; there is no
// precedence among the bitwise operators themselves (spec.md §4.3).
func (ev *Evaluator) interpretFactor() error {
	if err := ev.interpretValue(); err != nil {
		return err
	}
	for {
		ev.src.SkipWhitespace()
		op, ok := peekBitOp(ev.src)
		if !ok {
			return nil
		}
		for range op {
			ev.src.Get()
		}
		if err := ev.interpretValue(); err != nil {
			return err
		}
		b, a := ev.state.pop(), ev.state.pop()
		v, err := ev.applyBitOp(op, a, b)
		if err != nil {
			return err
		}
		ev.state.push(v)
	}
}

// peekBitOp recognizes one of & | ^ << >> <| |> at the cursor without
// consuming it. '<' begins both "<<" and "<|", and '|' is an operator on its
// own as well as the start of "|>", so this needs one byte of lookahead
// beyond Peek.
func peekBitOp(s *Source) (string, bool) {
	switch s.Peek() {
	case '&':
		return "&", true
	case '^':
		return "^", true
	case '|':
		if s.PeekAt(1) == '>' {
			return "|>", true
		}
		return "|", true
	case '<':
		switch s.PeekAt(1) {
		case '<':
			return "<<", true
		case '|':
			return "<|", true
		}
	case '>':
		if s.PeekAt(1) == '>' {
			return ">>", true
		}
	}
	return "", false
}

// applyArith casts a and b to their mutual kind and applies op (spec.md
// §4.3). Integer division by zero is reported as a TypeError, per §9's
// resolution of the source's undefined behavior there.
func (ev *Evaluator) applyArith(op byte, a, b Value) (Value, error) {
	ca, cb, ok := mutualCastValues(a, b)
	if !ok || !IsArithmetic(ca.Kind) {
		return Value{}, ev.typeErrorf("operands of kind %v and %v have no common arithmetic kind", a.Kind, b.Kind)
	}
	switch op {
	case '+':
		return arithOp(ca, cb, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y }), nil
	case '-':
		return arithOp(ca, cb, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y }), nil
	case '*':
		return arithOp(ca, cb, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y }), nil
	case '/':
		if ca.Kind == Integer && cb.Int == 0 {
			return Value{}, ev.typeErrorf("division by zero")
		}
		return arithOp(ca, cb, func(x, y int64) int64 { return x / y }, func(x, y float64) float64 { return x / y }), nil
	default:
		return Value{}, ev.syntaxErrorf("unrecognized arithmetic operator %q", string(op))
	}
}

// applyBitOp applies an Integer-only bitwise/rotate operator (spec.md
// §4.3). Shift and rotate amounts are reduced modulo 64 by bitOp itself.
func (ev *Evaluator) applyBitOp(op string, a, b Value) (Value, error) {
	if !IsBitwise(a.Kind) || !IsBitwise(b.Kind) {
		return Value{}, ev.typeErrorf("bitwise operator %q requires Integer operands, got %v and %v", op, a.Kind, b.Kind)
	}
	switch op {
	case "&":
		return plainBitOp(a, b, func(x, y int64) int64 { return x & y }), nil
	case "|":
		return plainBitOp(a, b, func(x, y int64) int64 { return x | y }), nil
	case "^":
		return plainBitOp(a, b, func(x, y int64) int64 { return x ^ y }), nil
	case "<<":
		return bitOp(a, b, func(x int64, n uint) int64 { return x << n }), nil
	case ">>":
		return bitOp(a, b, func(x int64, n uint) int64 { return x >> n }), nil
	case "<|":
		return bitOp(a, b, rotateLeft), nil
	case "|>":
		return bitOp(a, b, rotateRight), nil
	default:
		return Value{}, ev.syntaxErrorf("unrecognized bitwise operator %q", op)
	}
}

// interpretValue implements the `value` production: number, boolean, and
// string literals; parenthesized sub-expressions; array and clone(object)
// literals; and the get/call keyword forms (spec.md §4.3, §4.6, §6).
func (ev *Evaluator) interpretValue() error {
	s := ev.src
	if !s.SkipWhitespace() {
		return ev.syntaxErrorf("expected a value, found end of input")
	}

	if v, ok, err := ev.parseNumberLiteral(); err != nil {
		return err
	} else if ok {
		ev.state.push(v)
		return nil
	}

	switch s.Peek() {
	case '`':
		s.Get()
		ev.state.push(Value{Kind: Boolean, Bool: true})
		return nil
	case '~':
		s.Get()
		ev.state.push(Value{Kind: Boolean, Bool: false})
		return nil
	case '"':
		str, ok := s.GetStringLiteral()
		if !ok {
			return ev.syntaxErrorf("unterminated string literal")
		}
		ev.state.push(Value{Kind: String, Str: str})
		return nil
	case '[':
		return ev.interpretArrayLiteral()
	case '(':
		s.Get()
		if err := ev.interpretExpression(); err != nil {
			return err
		}
		s.SkipWhitespace()
		if !s.Match(')') {
			return ev.syntaxErrorf("expected ')' to close parenthesized expression")
		}
		return nil
	}

	save := s.Position()
	kw, ok := s.GetAlphaIdentifier()
	if !ok {
		return ev.syntaxErrorf("expected a value")
	}
	switch kw {
	case "get":
		return ev.interpretGet()
	case "call":
		return ev.interpretCall()
	case "clone":
		return ev.interpretObjectLiteral()
	default:
		// The source requires the "get" keyword in front of every bare
		// variable reference here; spec.md §8 scenario 2 writes a call
		// target as a bare name ("call f(...)"), so a plain identifier that
		// isn't one of the three value keywords is accepted as shorthand
		// for `get <identifier>` rather than rejected (see DESIGN.md).
		s.SetPosition(save)
		return ev.interpretGet()
	}
}

// interpretArrayLiteral implements `'[' TypeSpecifier expression (','
// expression)* ']'` (spec.md §6): every element must share the declared
// element kind.
func (ev *Evaluator) interpretArrayLiteral() error {
	s := ev.src
	if !s.Match('[') {
		return ev.syntaxErrorf("expected '[' to open array literal")
	}
	s.SkipWhitespace()
	elemType, err := ev.parseTypeSpecifier()
	if err != nil {
		return err
	}

	var elems []Value
	for {
		s.SkipWhitespace()
		if err := ev.interpretExpression(); err != nil {
			return err
		}
		v := ev.state.pop()
		if v.Kind != elemType.OurType {
			return ev.typeErrorf("array element kind %v does not match declared element type %v", v.Kind, elemType.OurType)
		}
		elems = append(elems, v)

		s.SkipWhitespace()
		if s.Peek() != ',' {
			break
		}
		s.Get()
	}

	s.SkipWhitespace()
	if !s.Match(']') {
		return ev.syntaxErrorf("expected ']' to close array literal")
	}
	ev.state.push(Value{Kind: Array, Arr: elems})
	return nil
}

// interpretObjectLiteral implements `clone <prototype-identifier> '{'
// (TypeSpecifier identifier expression)* '}'` (spec.md §6). The source's
// own InterpretObjectLiteral never actually implements clone end-to-end
// (it is dead code duplicating the array-literal path -- see DESIGN.md),
// so this follows spec.md's own supplemented grammar instead: start from a
// deep clone of the named prototype object, then apply each field
// initializer in turn, type-checked against its own declared TypeSpecifier.
func (ev *Evaluator) interpretObjectLiteral() error {
	s := ev.src
	proto, ok := s.GetIdentifier()
	if !ok {
		return ev.syntaxErrorf("expected a prototype identifier after clone")
	}
	protoVal, ok := ev.state.findObject(proto)
	if !ok || protoVal.Kind != Object {
		return ev.referenceErrorf("unknown prototype %q", proto)
	}

	s.SkipWhitespace()
	if !s.Match('{') {
		return ev.syntaxErrorf("expected '{' to open clone body")
	}

	obj := protoVal.Obj.clone()
	for {
		s.SkipWhitespace()
		if s.Peek() == '}' {
			s.Get()
			break
		}
		fieldType, err := ev.parseTypeSpecifier()
		if err != nil {
			return err
		}
		name, ok := s.GetIdentifier()
		if !ok {
			return ev.syntaxErrorf("expected a field name in clone body")
		}
		if err := ev.interpretExpression(); err != nil {
			return err
		}
		v := ev.state.pop()
		if v.Kind != fieldType.OurType {
			return ev.typeErrorf("clone field %q kind %v does not match declared type %v", name, v.Kind, fieldType.OurType)
		}
		obj.set(name, v)
	}

	ev.state.push(Value{Kind: Object, Obj: obj})
	return nil
}

// interpretGet implements `get <identifier> ['[' TypeSpecifier expression
// ']']` (spec.md §4.6).
func (ev *Evaluator) interpretGet() error {
	s := ev.src
	name, ok := s.GetIdentifier()
	if !ok {
		return ev.syntaxErrorf("expected an identifier after get")
	}
	v, ok := ev.state.findObject(name)
	if !ok {
		return ev.referenceErrorf("unbound name %q", name)
	}

	s.SkipWhitespace()
	if s.Peek() != '[' {
		ev.state.push(v)
		return nil
	}
	s.Get()
	s.SkipWhitespace()

	wantType, err := ev.parseTypeSpecifier()
	if err != nil {
		return err
	}
	if err := ev.interpretExpression(); err != nil {
		return err
	}
	idx := ev.state.pop()

	elem, err := ev.subscript(v, idx, wantType)
	if err != nil {
		return err
	}

	s.SkipWhitespace()
	if !s.Match(']') {
		return ev.syntaxErrorf("expected ']' to close subscript")
	}
	ev.state.push(elem)
	return nil
}

// subscript implements the three indexable kinds of spec.md §4.6. wantType
// is the TypeSpecifier written before the index expression in the source,
// and names the *result* kind the fetch must produce -- it has no bearing
// on what kind the index expression itself must be.
func (ev *Evaluator) subscript(v, idx Value, wantType TypeSpecifier) (Value, error) {
	switch v.Kind {
	case Array:
		if idx.Kind != Integer {
			return Value{}, ev.typeErrorf("array subscript must be Integer, got %v", idx.Kind)
		}
		if idx.Int < 0 || idx.Int >= int64(len(v.Arr)) {
			return Value{}, ev.referenceErrorf("array index %d out of range [0,%d)", idx.Int, len(v.Arr))
		}
		elem := v.Arr[idx.Int]
		if elem.Kind != wantType.OurType {
			return Value{}, ev.typeErrorf("array element kind %v does not match requested type %v", elem.Kind, wantType.OurType)
		}
		return elem, nil

	case String:
		if idx.Kind != Integer {
			return Value{}, ev.typeErrorf("string subscript must be Integer, got %v", idx.Kind)
		}
		if idx.Int < 0 || idx.Int >= int64(len(v.Str)) {
			return Value{}, ev.referenceErrorf("string index %d out of range [0,%d)", idx.Int, len(v.Str))
		}
		// The source returns the byte value as an Integer rather than a
		// length-1 String; a fetch declared with type `string` will
		// therefore always fail the result's type check (spec.md §9 notes
		// this is an open ambiguity in the source and leaves it to the
		// implementer -- this port keeps the source's Integer behavior).
		elem := Value{Kind: Integer, Int: int64(v.Str[idx.Int])}
		if elem.Kind != wantType.OurType {
			return Value{}, ev.typeErrorf("string element kind %v does not match requested type %v", elem.Kind, wantType.OurType)
		}
		return elem, nil

	case Object:
		if idx.Kind != String {
			return Value{}, ev.typeErrorf("object subscript must be String, got %v", idx.Kind)
		}
		field, ok := v.Obj.get(idx.Str)
		if !ok {
			return Value{}, ev.referenceErrorf("object has no key %q", idx.Str)
		}
		if field.Kind != wantType.OurType {
			return Value{}, ev.typeErrorf("object field kind %v does not match requested type %v", field.Kind, wantType.OurType)
		}
		return field, nil

	default:
		return Value{}, ev.typeErrorf("cannot subscript a value of kind %v", v.Kind)
	}
}

// interpretCallStatement is the statement-position entry for `call`
// (spec.md §4.5); it shares interpretCall's implementation since call is
// also a value production (its result stays on the stack either way -- an
// enclosing expression pops it, and a bare top-level call statement simply
// leaves it, as in spec.md §8 scenario 2).
func (ev *Evaluator) interpretCallStatement() error {
	return ev.interpretCall()
}

// interpretCall implements `call <expression> '(' (<expression> ',')* ')'`
// (spec.md §4.5), with a comma required after every argument including the
// last: the callee expression must
// evaluate to a Function. Each argument is type-checked against its
// parameter and bound in a fresh scope; the call then rewinds the cursor to
// the function body, runs it, and requires the scope stack to have shrunk
// by exactly one on the way out -- return/up do that shrinking themselves
// and signal it with errReturned, which this function is the one place that
// treats as ordinary success.
func (ev *Evaluator) interpretCall() error {
	s := ev.src
	if err := ev.interpretExpression(); err != nil {
		return err
	}
	callee := ev.state.pop()
	if callee.Kind != Function {
		return ev.typeErrorf("call target has kind %v, not Function", callee.Kind)
	}

	s.SkipWhitespace()
	if !s.Match('(') {
		return ev.syntaxErrorf("expected '(' after call target")
	}

	frame := newScope(s.Position(), Position{})
	for _, p := range callee.Func.Args {
		s.SkipWhitespace()
		if err := ev.interpretExpression(); err != nil {
			return err
		}
		arg := ev.state.pop()
		if arg.Kind != p.Type.OurType {
			return ev.typeErrorf("argument %q: expected kind %v, got %v", p.Name, p.Type.OurType, arg.Kind)
		}
		frame.set(p.Name, arg)

		s.SkipWhitespace()
		if !s.Match(',') {
			return ev.syntaxErrorf("expected ',' after call argument %q (the source's grammar requires a trailing comma after every argument)", p.Name)
		}
	}
	s.SkipWhitespace()
	if !s.Match(')') {
		return ev.syntaxErrorf("expected ')' to close call arguments")
	}

	frame.End = s.Position()
	depthBefore := ev.state.depth()
	ev.state.pushScope(frame)

	s.SetPosition(callee.Func.Start)
	if !s.Match(':') {
		return ev.syntaxErrorf("function body does not start with ':'")
	}

	err := ev.interpretProgram(true)
	switch {
	case err == errReturned:
		// Cursor and scope stack were already restored by return/up.
	case err != nil:
		return err
	default:
		if !s.Match('.') {
			return ev.syntaxErrorf("expected '.' to close function body")
		}
		// Reaching here means the body ran to its closing '.' without ever
		// executing return/up, so the frame we pushed is still on the
		// stack: depth is depthBefore+1, not depthBefore.
		if ev.state.depth() != depthBefore {
			return ev.referenceErrorf("function fell through its body without return or up")
		}
	}
	return nil
}
