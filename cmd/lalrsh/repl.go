package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/grammar"
	"github.com/pterm/pterm"
	"github.com/timtadh/lexmachine"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// main() starts an interactive CLI, where users may enter rules and
// declarations for a grammar, build LALR(1) tables for it and inspect the
// result. An init file given by flag -init is executed before interactive
// mode starts.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	name := flag.String("grammar", "G", "Name of the grammar")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo)
	pterm.Info.Println("Welcome to lalrsh")
	tracer().Infof("Trace level is %s", *tlevel)
	tracer().SetTraceLevel(traceLevel(*tlevel))
	//
	intp, err := NewIntp(*name)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	repl, err := readline.New("lalrsh> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(*initf)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	name    string
	builder *grammar.Builder
	lastLHS string
	g       *grammar.Grammar
	lrgen   *lalr.TableGenerator
	lexer   *lexmachine.Lexer
	repl    *readline.Instance
}

// NewIntp creates an interpreter for a grammar with the given name.
func NewIntp(name string) (*Intp, error) {
	lexer, err := newCommandLexer()
	if err != nil {
		return nil, err
	}
	intp := &Intp{name: name, lexer: lexer}
	intp.reset()
	return intp, nil
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line != "" {
			if _, err := intp.Eval(line); err != nil {
				tracer().Errorf("Error line %d: "+err.Error(), lineno)
			}
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: " + err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a single command line.
func (intp *Intp) Eval(line string) (bool, error) {
	toks, err := tokenize(intp.lexer, line)
	if err != nil {
		return false, err
	}
	if len(toks) == 0 {
		return false, nil
	}
	if toks[0].Type == tokBar {
		return false, intp.ruleCommand(toks)
	}
	if toks[0].Type != tokWord {
		return false, fmt.Errorf("expected command, have %v", toks[0])
	}
	verb, args := toks[0].Lexeme, toks[1:]
	tracer().Debugf("command %s %v", verb, args)
	switch verb {
	case "rule":
		return false, intp.ruleCommand(toks)
	case "left", "right", "nonassoc":
		return false, intp.declarePrecedence(verb, args)
	case "token":
		return false, intp.declareTokens(args)
	case "start":
		if len(args) != 1 || args[0].Type != tokWord {
			return false, fmt.Errorf("usage: start S")
		}
		return false, intp.builder.Start(args[0].Lexeme)
	case "expect":
		return false, intp.expect(args)
	case "build":
		return false, intp.build()
	case "states":
		return false, intp.showStates()
	case "conflicts":
		return false, intp.showConflicts()
	case "tables":
		return false, intp.showTables()
	case "demo":
		return false, intp.demo()
	case "reset":
		intp.reset()
		return false, nil
	case "help":
		pterm.Println(helpText)
		return false, nil
	case "quit", "exit":
		return true, nil
	}
	return false, fmt.Errorf("unknown command %q; enter 'help' for a list of commands", verb)
}

func (intp *Intp) ruleCommand(toks []token) error {
	rd, err := parseRule(toks, intp.lastLHS)
	if err != nil {
		return err
	}
	return intp.addRule(rd)
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
