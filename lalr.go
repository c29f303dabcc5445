package lalr

import (
	"fmt"

	"github.com/npillmayer/lalr/grammar"
	"github.com/npillmayer/lalr/lr"
	"github.com/npillmayer/lalr/lr/table"
	"github.com/npillmayer/schuko/gconf"
)

// TableGenerator is a generator object to construct LALR(1) parser tables.
// Clients usually create a Grammar G, then a table generator for G.
// TableGenerator.CreateTables() constructs the CFSM and the transition table.
type TableGenerator struct {
	g            *grammar.Grammar
	dfa          *lr.CFSM
	tables       *table.TransitionTable
	warnings     *Warnings
	HasConflicts bool // unresolved conflicts other than the expected S/R conflicts
	Strict       bool // fail on conflicts, as does configuration flag 'lalr-strict'
}

// NewTableGenerator creates a new TableGenerator for a closed grammar.
func NewTableGenerator(g *grammar.Grammar) *TableGenerator {
	return &TableGenerator{g: g}
}

// CFSM returns the characteristic finite state machine (CFSM) for the grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously, but its states may not yet be computed.
func (lrgen *TableGenerator) CFSM() *lr.CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lr.NewCFSM(lrgen.g)
	}
	return lrgen.dfa
}

// Tables returns the transition table. CreateTables has to be called first.
func (lrgen *TableGenerator) Tables() *table.TransitionTable {
	if lrgen.tables == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.tables
}

// Warnings returns the warnings collected by CreateTables.
func (lrgen *TableGenerator) Warnings() *Warnings {
	if lrgen.warnings == nil {
		return newWarnings()
	}
	return lrgen.warnings
}

// CreateTables computes the LALR(1) automaton and packs it into a transition
// table. Fatal errors are returned as *grammar.CompileError. Conflicts are
// reported as warnings, unless lrgen is in strict mode.
func (lrgen *TableGenerator) CreateTables() error {
	dfa := lrgen.CFSM()
	if err := dfa.ComputeDFA(); err != nil {
		return fmt.Errorf("cannot create LALR(1) automaton for grammar %q: %w", lrgen.g.Name(), err)
	}
	if gconf.GetBool("lalr-dump-states") {
		dfa.Dump()
	}
	tables, err := table.Generate(dfa)
	if err != nil {
		return fmt.Errorf("cannot create tables for grammar %q: %w", lrgen.g.Name(), err)
	}
	lrgen.tables = tables
	lrgen.warnings = collectWarnings(lrgen.g, dfa)
	lrgen.HasConflicts = len(dfa.RRConflicts()) > 0 || dfa.ShouldReportSRConflicts()
	if lrgen.HasConflicts {
		tracer().Infof("grammar %q has %d S/R conflicts (%d expected) and %d R/R conflicts",
			lrgen.g.Name(), len(dfa.SRConflicts()), lrgen.g.ExpectedSRConflicts(), len(dfa.RRConflicts()))
		if lrgen.Strict || gconf.GetBool("lalr-strict") {
			return grammar.Errorf(grammar.ErrConflicts, "grammar %q has %d S/R and %d R/R conflicts",
				lrgen.g.Name(), len(dfa.SRConflicts()), len(dfa.RRConflicts()))
		}
	}
	return nil
}
