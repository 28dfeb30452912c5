package main

// ValueKind tags the variant held by a Value (spec.md §3).
type ValueKind int

const (
	// Null is the error-sentinel kind; it is never observable from a
	// successful expression (spec.md §3).
	Null ValueKind = iota
	Boolean
	Integer
	Floating
	String
	Object
	Array
	Function
)

func (k ValueKind) String() string {
	switch k {
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Floating:
		return "Floating"
	case String:
		return "String"
	case Object:
		return "Object"
	case Array:
		return "Array"
	case Function:
		return "Function"
	default:
		return "Null"
	}
}

// FuncValue is a Function value's payload: the source position of the
// body's opening colon, plus the ordered parameter list (spec.md §3).
type FuncValue struct {
	Start Position
	Args  []Param
}

// Param is one (name, declared type) pair of a function's parameter list.
type Param struct {
	Name string
	Type TypeSpecifier
}

// objectVal is the payload of an Object value: an insertion-ordered
// string-keyed map (spec.md §3: "keys in first-insertion order"). Per
// §9's required re-architecture away from raw owning pointers and shared
// mutable payloads, Value copies deep-clone their payload rather than
// aliasing it -- see cloneValue.
type objectVal struct {
	keys   []string
	fields map[string]Value
}

func newObjectVal() *objectVal {
	return &objectVal{fields: make(map[string]Value)}
}

func (o *objectVal) set(name string, v Value) {
	if _, exists := o.fields[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.fields[name] = v
}

func (o *objectVal) get(name string) (Value, bool) {
	v, ok := o.fields[name]
	return v, ok
}

func (o *objectVal) clone() *objectVal {
	n := &objectVal{
		keys:   append([]string(nil), o.keys...),
		fields: make(map[string]Value, len(o.fields)),
	}
	for k, v := range o.fields {
		n.fields[k] = cloneValue(v)
	}
	return n
}

// Value is a tagged union over Lithium's value kinds (spec.md §3).
// Exactly one payload field is meaningful for a given Kind. String,
// Object, Array and Function payloads are heap-allocated and deep-cloned
// (via cloneValue) whenever a bound value is read out of a scope by
// findObject or cloned as a prototype, which is this port's resolution
// of §3/§9's ownership re-architecture: "either clone-on-copy, or move
// semantics with an explicit shared-ownership wrapper" -- clone-on-copy
// was chosen because Lithium values are small and short-lived, and
// because Go's GC already reclaims the clones once unreachable, so no
// reference-counting wrapper is needed.
type Value struct {
	Kind ValueKind

	Bool  bool
	Int   int64
	Float float64
	Str   string

	Obj  *objectVal
	Arr  []Value
	Func *FuncValue
}

// cloneValue returns a copy of v whose heap payload (if any) is
// independently owned.
func cloneValue(v Value) Value {
	switch v.Kind {
	case Object:
		if v.Obj != nil {
			v.Obj = v.Obj.clone()
		}
	case Array:
		if v.Arr != nil {
			arr := make([]Value, len(v.Arr))
			for i, e := range v.Arr {
				arr[i] = cloneValue(e)
			}
			v.Arr = arr
		}
	case Function:
		if v.Func != nil {
			f := *v.Func
			v.Func = &f
		}
	}
	return v
}

// TypeSpecifier is the declared type of a variable, parameter, or fetch
// (spec.md §3).
type TypeSpecifier struct {
	// OurType is the declared kind; Null means "unresolved".
	OurType ValueKind
	// ReturnType is the element type when OurType is Array, or the
	// function return type when OurType is Function.
	ReturnType ValueKind
	// Prototype names the enclosing-scope Object this type is
	// constrained to, when OurType is Object.
	Prototype string
	// ArgTypes are the parameter types when OurType is Function.
	ArgTypes []TypeSpecifier
}

// MutualCast returns the common kind two operand kinds should be
// promoted to for an arithmetic operation, or Null if there is none
// (spec.md §4.3): identical kinds cast to themselves; {Integer, Floating}
// in either order cast to Floating; everything else is incompatible.
func MutualCast(a, b ValueKind) ValueKind {
	if a == b {
		return a
	}
	if (a == Integer && b == Floating) || (a == Floating && b == Integer) {
		return Floating
	}
	return Null
}

// IsArithmetic reports whether k is a kind arithmetic operators accept.
func IsArithmetic(k ValueKind) bool { return k == Integer || k == Floating }

// IsBitwise reports whether k is a kind bitwise operators accept.
func IsBitwise(k ValueKind) bool { return k == Integer }

// CastValue converts v to newKind if possible (identical kind, or
// Integer<->Floating), reporting ok=false otherwise.
func CastValue(v Value, newKind ValueKind) (Value, bool) {
	if v.Kind == newKind {
		return v, true
	}
	switch {
	case v.Kind == Floating && newKind == Integer:
		return Value{Kind: Integer, Int: int64(v.Float)}, true
	case v.Kind == Integer && newKind == Floating:
		return Value{Kind: Floating, Float: float64(v.Int)}, true
	default:
		return Value{}, false
	}
}

// mutualCastValues casts a and b to their MutualCast kind, reporting
// ok=false if there is none.
func mutualCastValues(a, b Value) (Value, Value, bool) {
	t := MutualCast(a.Kind, b.Kind)
	if t == Null {
		return a, b, false
	}
	a, aok := CastValue(a, t)
	b, bok := CastValue(b, t)
	return a, b, aok && bok
}

// arithOp applies a two's-complement-wrapping integer op or an
// IEEE-754 floating op to a pair of same-kind operands, per spec.md
// §4.3's "the operation is performed using that kind's native
// semantics". Go's int64/float64 arithmetic already has these semantics,
// so the two branches simply call through to the native operators.
func arithOp(a, b Value, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) Value {
	if a.Kind == Integer {
		return Value{Kind: Integer, Int: intOp(a.Int, b.Int)}
	}
	return Value{Kind: Floating, Float: floatOp(a.Float, b.Float)}
}

// bitOp applies an Integer-only shift/rotate op; the amount is taken
// modulo 64 (spec.md §4.3).
func bitOp(a, b Value, op func(int64, uint) int64) Value {
	return Value{Kind: Integer, Int: op(a.Int, uint(b.Int)%64)}
}

// plainBitOp applies an Integer-only & | ^ op, where b is an ordinary
// operand rather than a shift amount.
func plainBitOp(a, b Value, op func(int64, int64) int64) Value {
	return Value{Kind: Integer, Int: op(a.Int, b.Int)}
}

func rotateLeft(a int64, n uint) int64 {
	u := uint64(a)
	n %= 64
	return int64(u<<n | u>>(64-n))
}

func rotateRight(a int64, n uint) int64 {
	u := uint64(a)
	n %= 64
	return int64(u>>n | u<<(64-n))
}

// Truthy reports whether a conditional value (spec.md glossary) is
// considered true: nonzero Integer/Floating, or a true Boolean.
// IsConditional must be checked first; Truthy panics on a non-
// conditional kind, mirroring spec.md's invariant that callers first
// verify IsConditional.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Integer:
		return v.Int != 0
	case Floating:
		return v.Float != 0
	case Boolean:
		return v.Bool
	default:
		panic("Truthy called on non-conditional value kind " + v.Kind.String())
	}
}

// IsConditional reports whether v's kind has a conditional
// interpretation (spec.md glossary: Integer, Floating, or Boolean).
func (v Value) IsConditional() bool {
	return v.Kind == Integer || v.Kind == Floating || v.Kind == Boolean
}
