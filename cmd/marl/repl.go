package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/marl-lang/marl/internal/diag"
	"github.com/marl-lang/marl/internal/runtime"
	"github.com/marl-lang/marl/internal/typeparse"
	"github.com/marl-lang/marl/internal/typereq"
	"github.com/marl-lang/marl/internal/types"
)

const (
	historyFile    = ".marl_history"
	prompt         = "==> "
	replSourceName = "<repl>"
)

const replHelp = `Enter a type, an arrow, and a JSON value to check the value against the type:

  Dict[String, Int] <- {"a": 1}

REPL commands:
  :quit    Exit the REPL
  :help    Show this help
`

func runRepl(args []string) {
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "Usage: marl repl\n")
		os.Exit(1)
	}

	fmt.Println("marl REPL. Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		switch line {
		case ":quit", ":q":
			return
		case ":help", ":h":
			fmt.Print(replHelp)
			continue
		}

		evalLine(line)
	}
}

// evalLine checks one "<type> <- <json>" input.
func evalLine(line string) {
	typePart, valuePart, found := strings.Cut(line, "<-")
	if !found {
		fmt.Println("expected '<type> <- <json value>'; try :help")
		return
	}
	typePart = strings.TrimSpace(typePart)
	valuePart = strings.TrimSpace(valuePart)

	formatter := diag.NewFormatterTo(os.Stdout)
	formatter.SetSource(replSourceName, typePart)

	req, err := typeparse.Parse(replSourceName, typePart)
	if err != nil {
		reportReplError(formatter, err)
		return
	}

	value, err := runtime.DecodeJSON([]byte(valuePart))
	if err != nil {
		fmt.Printf("cannot decode value: %v\n", err)
		return
	}

	at := requirementSpan(req)
	outcome, err := typereq.Check(req, at, types.TypeDynamic)
	if err != nil {
		reportReplError(formatter, err)
		return
	}

	switch o := outcome.(type) {
	case typereq.TypedType:
		fmt.Printf("ok: %s\n", o.Type)
	case typereq.TypedDefer:
		if err := typereq.CheckValue(req, at, value); err != nil {
			reportReplError(formatter, err)
			return
		}
		fmt.Printf("ok: %s\n", o.Type)
	default:
		panic("marl: unknown Typed variant")
	}
}

func reportReplError(formatter *diag.Formatter, err error) {
	if d, ok := err.(diag.Diagnostic); ok {
		formatter.Format(d)
		return
	}
	fmt.Printf("error: %v\n", err)
}
