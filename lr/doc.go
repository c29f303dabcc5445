/*
Package lr builds the LALR(1) automaton for a closed grammar.

Construction of the Automaton

A characteristic finite state machine (CFSM) is built from the grammar,
starting from state 0 with core { $start ::= . S $end $end }. States are
identified by their core, i.e. the set of location pointers which reached
the state. Two parse histories ending in the same core share a single state,
which is what makes the automaton LALR instead of canonical LR(1).

    c := lr.NewCFSM(g)     // g is a closed grammar.Grammar
    err := c.ComputeNFA()  // states and gotos only

Lookahead and Conflict Resolution

Computing the DFA adds lookahead sets to the reduce items of every state which
would otherwise be ambiguous (DeRemer/Pennello relations "reads" and
"includes", solved with a digraph traversal). Then shift/reduce and
reduce/reduce conflicts are resolved using precedence and associativity, the
accept state is located and default actions are selected.

    err = c.ComputeDFA()
    for _, sr := range c.SRConflicts() {
        fmt.Println(sr)
    }

Unresolved conflicts are never fatal. Shift wins an unresolved shift/reduce
conflict, the earlier rule wins an unresolved reduce/reduce conflict.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.lr")
}
