/*
Package table creates compact transition tables from a LALR(1) automaton.

The action table and the goto table of an automaton are sparse. Both are
overlaid into single vectors, with a parallel check vector recording the owner
of each cell, and one pointer per state (action) or non-terminal (goto):

    i := t.ActionPointer[state] + token
    if t.ActionCheck[i] == state {
        return t.ActionTable[i]
    }
    return t.ActionDefault[state]

Action IDs are encoded like this:

    shift to state s     ⇒   s           (0 < s < ShiftN)
    reduce by rule r     ⇒  -r           (-ReduceN < -r < 0)
    accept               ⇒   ShiftN
    error                ⇒  -ReduceN

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package table

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.table'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.table")
}
