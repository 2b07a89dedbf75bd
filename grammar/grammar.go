// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

/*
Grammar:

   document = value [trailing]
  objectdoc = object [trailing]
      value = "null" | "true" | "false" | NUMBER | STRING | array | object
      array = "[" [value {"," value}] "]"
     object = "{" [member {"," member}] "}"
     member = STRING ":" value
   trailing = TOKEN {TOKEN}

Whitespace between tokens is discarded. The Other token matches any single
rune no other rule accepts, so lexing never fails: unexpected input is
reported by the parser, at the position of the offending token.
*/

var jsonLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Keyword", Pattern: `true|false|null`},
	{Name: "Number", Pattern: `[-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Punct", Pattern: `[][{}:,]`},
	{Name: "Other", Pattern: `.`},
})

var numberToken = jsonLexer.Symbols()["Number"]

type document struct {
	Value    *value    `@@`
	Trailing *trailing `@@?`
}

type objectDocument struct {
	Object   *object   `@@`
	Trailing *trailing `@@?`
}

// trailing captures any tokens remaining after the top-level value.
type trailing struct {
	Pos lexer.Position

	Tokens []string `@(Keyword | Number | String | Punct | Other)+`
}

type value struct {
	Pos lexer.Position

	Null   bool     `  @"null"`
	Bool   *boolean `| @("true" | "false")`
	Number *string  `| @Number`
	String *string  `| @String`
	Array  *array   `| @@`
	Object *object  `| @@`
}

type array struct {
	Elements []*value `"[" ( @@ ( "," @@ )* )? "]"`
}

type object struct {
	Members []*member `"{" ( @@ ( "," @@ )* )? "}"`
}

type member struct {
	Key   string `@String ":"`
	Value *value `@@`
}

// boolean captures the text of a Boolean constant.
type boolean bool

func (b *boolean) Capture(values []string) error {
	*b = values[0] == "true"
	return nil
}

// The grammar is LL(1), so a branch is committed as soon as it consumes a
// token. Without this, a partial match inside a repetition is discarded and
// the error is reported at the start of the repetition instead of at the token
// that broke it.
var parserOptions = []participle.Option{
	participle.Lexer(jsonLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(0),
}

var (
	valueParser  = participle.MustBuild[document](parserOptions...)
	objectParser = participle.MustBuild[objectDocument](parserOptions...)
)
