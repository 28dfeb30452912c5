/* Package main: Lithium -- a fused lex/parse/eval scripting language

Lithium is a small imperative scripting language. Unlike most interpreters
there is no separate parse phase producing an AST: a single recursive
descent evaluator reads the source text directly, recognizing statements
and expressions in place, and mutating an interpreter state made of a
value stack and a chain of lexical scopes.

A function body is not compiled to anything -- it is a saved cursor
position into the same source buffer. Calling a function means rewinding
the cursor there, pushing a fresh scope, and letting the same evaluator
that got you here run the body; return and up restore the cursor to the
call site and pop the scope.

Section overview:

  - source.go     the byte cursor: peek/get/match, line tracking,
                   identifier/string/whitespace scanning
  - number.go     decimal, hex, octal, and float literal parsing
  - value.go      the tagged Value union, TypeSpecifier, mutual casts,
                   and arithmetic/bitwise operator templates
  - scope.go      the value stack, scope chain, and execution state
  - skip.go       the scope-skipper state machine used to elide untaken
                   if-branches, loop exits, and function bodies
  - eval.go       program/statement dispatch and type specifiers
  - eval_stmt.go  set, variable declarations, function, if, loop,
                   return, up
  - eval_expr.go  expression/term/factor/value/get, call, and all literals
  - errors.go     the SyntaxError/ReferenceError/TypeError taxonomy
  - dump.go       a post-mortem dump of the final scope chain and stack
  - options.go    functional options for constructing an interpreter
  - api.go        the public New/Run entry points
  - main.go       the CLI shim: load a file or stdin, run it, set the
                   exit code
*/
package main
