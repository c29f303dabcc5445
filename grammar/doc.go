/*
Package grammar implements the grammar and symbol data model for LALR(1) table
construction.

Building a Grammar

Grammars are specified using a builder object. Clients add rules, consisting of
named symbols and literal tokens. Whether a named symbol is a terminal or a
non-terminal is decided when the grammar is closed: a symbol without any rule
reducing to it is a terminal.

Example:

    b := grammar.NewBuilder("Expr")
    b.LHS("E").N("E").T("+").N("E").End()   // E  ->  E '+' E
    b.LHS("E").N("E").T("*").N("E").End()   // E  ->  E '*' E
    b.LHS("E").N("NUM").End()               // E  ->  NUM
    b.DeclarePrecedence(grammar.Left, grammar.Literal("+"))
    b.DeclarePrecedence(grammar.Left, grammar.Literal("*"))
    g, err := b.Close()

Closing the grammar prepends a synthetic rule 0

    0: $start ::= E $end $end

assigns symbol IDs (terminals first), and computes the derived symbol properties
needed by the automaton builder: heads, locations, nullability, LR(0) expansion
sets and usefulness. A closed Grammar is read-only.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.grammar")
}
