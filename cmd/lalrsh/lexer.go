package main

import (
	"fmt"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of the command language.
const (
	tokWord int = iota
	tokLiteral
	tokNumber
	tokColon
	tokBar
	tokPrec
	tokMid
)

var tokenNames = []string{"word", "literal", "number", "':'", "'|'", "%prec", "action"}

// token is a lexeme of a command line.
type token struct {
	Type   int
	Lexeme string
	Column int
}

func (t token) String() string {
	return fmt.Sprintf("%s(%s)", tokenNames[t.Type], t.Lexeme)
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(typ int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}

// newCommandLexer compiles the lexer for command lines.
func newCommandLexer() (*lexmachine.Lexer, error) {
	lexer := lexmachine.NewLexer()
	lexer.Add([]byte(`#[^\n]*`), skip)
	lexer.Add([]byte(`( |\t|\r|\n)+`), skip)
	lexer.Add([]byte(`%prec`), makeToken(tokPrec))
	lexer.Add([]byte(`'[^']+'`), makeToken(tokLiteral))
	lexer.Add([]byte(`\{[^}]*\}`), makeToken(tokMid))
	lexer.Add([]byte(`[0-9]+`), makeToken(tokNumber))
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken(tokWord))
	lexer.Add([]byte(`:`), makeToken(tokColon))
	lexer.Add([]byte(`\|`), makeToken(tokBar))
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return lexer, nil
}

// tokenize splits a command line into tokens.
func tokenize(lexer *lexmachine.Lexer, line string) ([]token, error) {
	scanner, err := lexer.Scanner([]byte(line))
	if err != nil {
		return nil, err
	}
	var toks []token
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, fmt.Errorf("unexpected input at column %d", ui.FailTC+1)
			}
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		tracer().Debugf("token %d | %s", t.Type, t.Lexeme)
		toks = append(toks, token{Type: t.Type, Lexeme: string(t.Lexeme), Column: t.StartColumn})
	}
	return toks, nil
}
