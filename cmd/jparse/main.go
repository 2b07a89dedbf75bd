// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jparse parses documents and prints the resulting values.
//
// Usage:
//
//	jparse [flags] [FILE...]
//
// Each FILE is parsed as a complete document, and its value is printed as an
// indented tree. The file name "-" denotes standard input. With no files, a
// built-in sample document is parsed.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jparse"
	"github.com/creachadair/jparse/grammar"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mattn/go-isatty"
)

const sampleDocument = `
{
  "name": "John Doe",
  "age": 30,
  "is_student": false,
  "marks": [90, -80, 85],
  "address": {
    "city": "London",
    "zip": 10001
  }
}`

// parseCommand parses each of its input files.
type parseCommand struct {
	useGrammar bool
	objectOnly bool
	maxDepth   int
	colorMode  string
	verbose    bool
	selectors  []string
	files      []string

	logger log.Logger
	out    io.Writer
}

func main() {
	cmd := &parseCommand{
		logger: log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)),
		out:    os.Stdout,
	}

	app := kingpin.New("jparse", "Parse documents and print their values.")
	app.Flag("grammar", "Use the grammar-driven parser.").BoolVar(&cmd.useGrammar)
	app.Flag("object", "Require an object at the top level.").BoolVar(&cmd.objectOnly)
	app.Flag("max-depth", "Maximum nesting depth of arrays and objects.").
		Default(strconv.Itoa(jparse.DefaultMaxDepth)).IntVar(&cmd.maxDepth)
	app.Flag("color", "Colorize output.").Default("auto").EnumVar(&cmd.colorMode, "auto", "always", "never")
	app.Flag("verbose", "Log each document parsed.").Short('v').BoolVar(&cmd.verbose)
	app.Flag("select", "Print only the value at this path element (repeatable).").StringsVar(&cmd.selectors)
	app.Arg("files", "Input files (- for stdin).").StringsVar(&cmd.files)
	app.Action(cmd.run)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		level.Error(cmd.logger).Log("msg", "command failed", "err", err)
		os.Exit(1)
	}
}

func (cmd *parseCommand) run(*kingpin.ParseContext) error {
	switch cmd.colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		fd := os.Stdout.Fd()
		color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	}
	if !cmd.verbose {
		cmd.logger = level.NewFilter(cmd.logger, level.AllowWarn())
	}

	p := cmd.newParser()
	if len(cmd.files) == 0 {
		level.Debug(cmd.logger).Log("msg", "no input files; using sample document")
		return cmd.parseOne(p, "sample", sampleDocument)
	}

	var nfail int
	for _, name := range cmd.files {
		text, err := readInput(name)
		if err != nil {
			level.Error(cmd.logger).Log("msg", "read failed", "file", name, "err", err)
			nfail++
		} else if cmd.parseOne(p, name, text) != nil {
			nfail++
		}
	}
	if nfail != 0 {
		return fmt.Errorf("%d of %d inputs failed", nfail, len(cmd.files))
	}
	return nil
}

// parser is the interface shared by the parser implementations.
type parser interface {
	jparse.DocumentParser
	RequireObject(bool)
	SetMaxDepth(int)
}

func (cmd *parseCommand) newParser() parser {
	var p parser
	if cmd.useGrammar {
		p = grammar.NewParser()
	} else {
		p = jparse.NewParser()
	}
	p.RequireObject(cmd.objectOnly)
	p.SetMaxDepth(cmd.maxDepth)
	return p
}

// parseOne parses and prints a single document. Failures are logged before
// they are returned.
func (cmd *parseCommand) parseOne(p jparse.DocumentParser, name, text string) error {
	v, err := p.Parse(text)
	if err != nil {
		logger := log.With(cmd.logger, "file", name)
		var perr *jparse.ParseError
		if errors.As(err, &perr) {
			logger = log.With(logger, "offset", perr.Offset, "pos", perr.Location, "kind", perr.Kind)
		}
		level.Error(logger).Log("msg", "parse failed", "err", err)
		return err
	}
	level.Info(cmd.logger).Log("msg", "parsed", "file", name, "kind", v.Kind(), "bytes", len(text))

	if len(cmd.selectors) != 0 {
		v, err = jparse.Path(v, selectPath(cmd.selectors)...)
		if err != nil {
			level.Error(cmd.logger).Log("msg", "select failed", "file", name, "err", err)
			return err
		}
	}
	return printValue(cmd.out, v)
}

// selectPath converts selectors into path elements. A selector indexes an
// array if it is an integer, and otherwise names an object key.
func selectPath(selectors []string) []any {
	path := make([]any, len(selectors))
	for i, sel := range selectors {
		path[i] = func(v jparse.Value) (jparse.Value, error) {
			if _, ok := v.(jparse.Array); ok {
				if n, err := strconv.Atoi(sel); err == nil {
					return jparse.Path(v, n)
				}
			}
			return jparse.Path(v, sel)
		}
	}
	return path
}

func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}
