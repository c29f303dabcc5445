package main

import (
	"errors"
	"testing"

	"github.com/npillmayer/lalr/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.sh")
	defer teardown()
	//
	lexer, err := newCommandLexer()
	if err != nil {
		t.Fatal(err)
	}
	var inputs = []struct {
		line  string
		types []int
	}{
		{"rule E : E '+' E", []int{tokWord, tokWord, tokColon, tokWord, tokLiteral, tokWord}},
		{"| '-' E %prec UMINUS", []int{tokBar, tokLiteral, tokWord, tokPrec, tokWord}},
		{"expect 1  # dangling else", []int{tokWord, tokNumber}},
		{"rule S : A {act} B", []int{tokWord, tokWord, tokColon, tokWord, tokMid, tokWord}},
		{"", nil},
	}
	for _, input := range inputs {
		toks, err := tokenize(lexer, input.line)
		if assert.NoError(t, err, input.line) {
			types := make([]int, 0, len(toks))
			for _, tok := range toks {
				types = append(types, tok.Type)
			}
			if input.types == nil {
				assert.Empty(t, types)
			} else {
				assert.Equal(t, input.types, types, input.line)
			}
		}
	}
	_, err = tokenize(lexer, "rule E : ?")
	assert.Error(t, err)
}

func TestParseRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.sh")
	defer teardown()
	//
	lexer, _ := newCommandLexer()
	toks, _ := tokenize(lexer, "| '-' E %prec UMINUS")
	rd, err := parseRule(toks, "E")
	if assert.NoError(t, err) {
		assert.Equal(t, "E", rd.lhs)
		assert.Len(t, rd.rhs, 2)
		assert.Equal(t, grammar.Name("UMINUS"), *rd.prec)
	}
	_, err = parseRule(toks, "")
	assert.Error(t, err)
	toks, _ = tokenize(lexer, "rule E : %prec UMINUS E")
	_, err = parseRule(toks, "")
	assert.Error(t, err)
}

func TestSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.sh")
	defer teardown()
	//
	intp, err := NewIntp("G")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"expect 1",
		"rule S : 'if' S",
		"| 'if' S 'else' S",
		"| 'x'",
		"build",
		"states",
		"conflicts",
		"tables",
	} {
		quit, err := intp.Eval(line)
		assert.NoError(t, err, line)
		assert.False(t, quit)
	}
	if assert.NotNil(t, intp.lrgen) {
		assert.False(t, intp.lrgen.HasConflicts)
		assert.Equal(t, 3, intp.g.Size()-1)
	}
	_, err = intp.Eval("rule S : 'y'")
	assert.True(t, errors.Is(err, grammar.ErrClosed), "expected closed grammar, have %v", err)
	quit, _ := intp.Eval("quit")
	assert.True(t, quit)
}

func TestDemo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.sh")
	defer teardown()
	//
	intp, _ := NewIntp("Expr")
	if _, err := intp.Eval("demo"); err != nil {
		t.Fatal(err)
	}
	assert.False(t, intp.lrgen.HasConflicts)
	assert.Equal(t, 0, intp.lrgen.Warnings().Len())
	_, err := intp.Eval("reset")
	assert.NoError(t, err)
	assert.Nil(t, intp.lrgen)
	_, err = intp.Eval("frobnicate")
	assert.Error(t, err)
	_, err = intp.Eval("states")
	assert.Equal(t, errNoTables, err)
}
