package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/grammar"
	"github.com/npillmayer/lalr/lr"
	"github.com/npillmayer/lalr/lr/table"
	"github.com/pterm/pterm"
)

var errNoTables = errors.New("no tables yet; enter 'build' first")

// ruleDef is the parsed form of a 'rule' or '|' command.
type ruleDef struct {
	lhs  string
	rhs  []token // words, literals and embedded actions
	prec *grammar.Value
}

// parseRule parses
//
//    rule LHS : sym… [%prec sym]
//    | sym… [%prec sym]
//
// where lastLHS is the LHS for the second form.
func parseRule(toks []token, lastLHS string) (*ruleDef, error) {
	rd := &ruleDef{}
	if toks[0].Type == tokBar {
		if lastLHS == "" {
			return nil, fmt.Errorf("'|' without preceding rule")
		}
		rd.lhs = lastLHS
		toks = toks[1:]
	} else {
		if len(toks) < 3 || toks[1].Type != tokWord || toks[2].Type != tokColon {
			return nil, fmt.Errorf("usage: rule LHS : sym… [%%prec sym]")
		}
		rd.lhs = toks[1].Lexeme
		toks = toks[3:]
	}
	for i := 0; i < len(toks); i++ {
		switch toks[i].Type {
		case tokWord, tokLiteral, tokMid:
			rd.rhs = append(rd.rhs, toks[i])
		case tokPrec:
			if i != len(toks)-2 {
				return nil, fmt.Errorf("%%prec must be followed by exactly one symbol at the end of a rule")
			}
			v, err := symbolValue(toks[i+1])
			if err != nil {
				return nil, err
			}
			rd.prec = &v
			i++
		default:
			return nil, fmt.Errorf("unexpected %v in rule", toks[i])
		}
	}
	return rd, nil
}

// symbolValue converts a word or literal token to a symbol value.
func symbolValue(t token) (grammar.Value, error) {
	switch t.Type {
	case tokWord:
		return grammar.Name(t.Lexeme), nil
	case tokLiteral:
		return grammar.Literal(strings.Trim(t.Lexeme, "'")), nil
	}
	return grammar.Value{}, fmt.Errorf("expected symbol, have %v", t)
}

func symbolValues(toks []token) ([]grammar.Value, error) {
	if len(toks) == 0 {
		return nil, fmt.Errorf("expected at least one symbol")
	}
	values := make([]grammar.Value, len(toks))
	for i, t := range toks {
		v, err := symbolValue(t)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (intp *Intp) addRule(rd *ruleDef) error {
	rb := intp.builder.LHS(rd.lhs)
	for _, t := range rd.rhs {
		if t.Type == tokMid {
			rb.Mid(strings.TrimSpace(strings.Trim(t.Lexeme, "{}")))
			continue
		}
		v, err := symbolValue(t)
		if err != nil {
			return err
		}
		rb.Sym(v)
	}
	if rd.prec != nil {
		rb.Prec(*rd.prec)
	}
	if err := rb.End(); err != nil {
		return err
	}
	intp.lastLHS = rd.lhs
	return nil
}

func (intp *Intp) declarePrecedence(verb string, args []token) error {
	values, err := symbolValues(args)
	if err != nil {
		return err
	}
	assoc := map[string]grammar.Assoc{
		"left":     grammar.Left,
		"right":    grammar.Right,
		"nonassoc": grammar.Nonassoc,
	}[verb]
	return intp.builder.DeclarePrecedence(assoc, values...)
}

func (intp *Intp) declareTokens(args []token) error {
	values, err := symbolValues(args)
	if err != nil {
		return err
	}
	return intp.builder.DeclareTerminal(values...)
}

func (intp *Intp) expect(args []token) error {
	if len(args) != 1 || args[0].Type != tokNumber {
		return fmt.Errorf("usage: expect N")
	}
	n, err := strconv.Atoi(args[0].Lexeme)
	if err != nil {
		return err
	}
	intp.builder.ExpectSRConflicts(n)
	return nil
}

// build closes the grammar and creates the tables. A grammar may be
// built only once; enter 'reset' to start over.
func (intp *Intp) build() error {
	if intp.lrgen != nil {
		return nil
	}
	g, err := intp.builder.Close()
	if err != nil {
		return err
	}
	intp.g = g
	lrgen := lalr.NewTableGenerator(g)
	if err := lrgen.CreateTables(); err != nil {
		return err
	}
	intp.lrgen = lrgen
	lrgen.Warnings().Each(func(w lalr.Warning) {
		pterm.Warning.Println(w.String())
	})
	pterm.Info.Println(fmt.Sprintf("grammar %s: %d rules, %d states, %d S/R and %d R/R conflicts",
		g.Name(), g.Size(), lrgen.CFSM().Size(),
		len(lrgen.CFSM().SRConflicts()), len(lrgen.CFSM().RRConflicts())))
	return nil
}

func (intp *Intp) reset() {
	intp.builder = grammar.NewBuilder(intp.name)
	intp.lastLHS = ""
	intp.g = nil
	intp.lrgen = nil
}

func (intp *Intp) showStates() error {
	if intp.lrgen == nil {
		return errNoTables
	}
	var ll pterm.LeveledList
	for _, s := range intp.lrgen.CFSM().States() {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("state %d", s.ID)})
		for _, ptr := range s.Core() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: ptr.Item()})
		}
		for _, at := range s.Actions() {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: fmt.Sprintf("%s  %v", at.Token, at.Action)})
		}
		for _, gt := range s.Gotos() {
			if gt.Symbol.IsNonterminal() {
				ll = append(ll, pterm.LeveledListItem{Level: 2, Text: fmt.Sprintf("%s  goto %d", gt.Symbol, gt.To.ID)})
			}
		}
		if def := s.DefaultAction(); def.Kind != lr.NoAction {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: fmt.Sprintf("$default  %v", def)})
		}
	}
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
	return nil
}

func (intp *Intp) showConflicts() error {
	if intp.lrgen == nil {
		return errNoTables
	}
	w := intp.lrgen.Warnings()
	for _, id := range w.ConflictStates() {
		for _, warning := range w.ForState(id) {
			pterm.Warning.Println(warning.String())
		}
	}
	if len(w.ConflictStates()) == 0 {
		pterm.Info.Println("no conflicts")
	}
	return nil
}

func (intp *Intp) showTables() error {
	if intp.lrgen == nil {
		return errNoTables
	}
	t := intp.lrgen.Tables()
	data := pterm.TableData{{"state", "ptr", "default"}}
	for s := range t.ActionPointer {
		data = append(data, []string{
			strconv.Itoa(s),
			cellString(t.ActionPointer[s]),
			t.ActionString(t.ActionDefault[s]),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Println(fmt.Sprintf("action table %v", t.ActionTable))
	pterm.Info.Println(fmt.Sprintf("action check %v", t.ActionCheck))
	pterm.Info.Println(fmt.Sprintf("goto table   %v", t.GotoTable))
	pterm.Info.Println(fmt.Sprintf("goto check   %v", t.GotoCheck))
	if fp, err := t.Fingerprint(); err == nil {
		pterm.Info.Println(fmt.Sprintf("fingerprint  %s", fp))
	}
	return nil
}

func cellString(v int) string {
	if v == table.Nil {
		return "-"
	}
	return strconv.Itoa(v)
}

// demoScript is a simple expression grammar with an unary minus.
var demoScript = []string{
	"left '+' '-'",
	"left '*' '/'",
	"right UMINUS",
	"rule E : E '+' E",
	"| E '-' E",
	"| E '*' E",
	"| E '/' E",
	"| '(' E ')'",
	"| '-' E %prec UMINUS",
	"| NUM",
}

func (intp *Intp) demo() error {
	intp.reset()
	for _, line := range demoScript {
		pterm.Info.Println(line)
		if _, err := intp.Eval(line); err != nil {
			return err
		}
	}
	return intp.build()
}

var helpText = `rule LHS : sym… [%prec sym]   add a rule; 'literals' are quoted, {…} is an embedded action
| sym… [%prec sym]            add an alternative for the last LHS
left|right|nonassoc sym…      add a line to the precedence block
token sym…                    declare terminals
start S                       declare the start symbol
expect N                      expect N shift/reduce conflicts
build                         create the parse tables
states                        list the states of the automaton
conflicts                     list conflicts
tables                        show the packed tables
demo                          load and build an expression grammar
reset                         start over with an empty grammar
quit                          leave lalrsh`
