/*
Package lalr is a parser-generator core for LALR(1) grammars.

It builds compact, conflict-resolved parse tables, in the tradition of yacc.
Package structure is as follows:

■ grammar: Package grammar implements symbols, rules and grammars, together with
a builder for grammars.

■ lr: Package lr constructs the LALR(1) automaton for a grammar, including lookahead
sets and conflict resolution.

■ lr/table: Package table packs the automaton into a transition table, ready to be
consumed by a code generator.

The base package contains a pipeline which drives all of the above and collects
the warnings produced along the way.

    b := grammar.NewBuilder("G")
    …                               // add rules
    g, err := b.Close()
    lrgen := lalr.NewTableGenerator(g)
    err = lrgen.CreateTables()
    lrgen.Warnings().Each(func(w lalr.Warning) {
        fmt.Println(w)
    })
    tables := lrgen.Tables()

Configuration

Two flags are read with schuko/gconf:

    lalr-dump-states   trace all states after the automaton has been created
    lalr-strict        let unresolved conflicts beyond the expected number of
                       shift/reduce conflicts fail table creation

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr'.
func tracer() tracing.Trace {
	return tracing.Select("lalr")
}
