/*
Package main provides an interactive command line tool (lalrsh) for experiments
with LALR(1) grammars. Users enter rules and declarations line by line, build
the parse tables and inspect the automaton.

    lalrsh> left '+' '-'
    lalrsh> left '*'
    lalrsh> rule E : E '+' E
    lalrsh> | E '*' E
    lalrsh> | NUM
    lalrsh> build
    lalrsh> states

Enter 'help' for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.sh'
func tracer() tracing.Trace {
	return tracing.Select("lalr.sh")
}
