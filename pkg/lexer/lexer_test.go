package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"crispy/interpreter-go/pkg/token"
)

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestLexOperatorsAreGreedy(t *testing.T) {
	tokens, errs := Lex("== != <= >= ++ -- -> = ! < > + - * / % . , : ;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Kind{
		token.EqualsEquals, token.BangEquals, token.SmallerEquals, token.GreaterEquals,
		token.PlusPlus, token.MinusMinus, token.Arrow,
		token.Equals, token.Bang, token.Smaller, token.Greater,
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Dot, token.Comma, token.Colon, token.Semicolon,
		token.EOF,
	}
	if diff := cmp.Diff(want, kindsOf(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	src := "fun val var continue break if else for while import in return true false nil and or funny _x1"
	tokens, errs := Lex(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Kind{
		token.Fun, token.Val, token.Var, token.Continue, token.Break, token.If, token.Else,
		token.For, token.While, token.Import, token.In, token.Return, token.True, token.False,
		token.Nil, token.And, token.Or, token.Identifier, token.Identifier, token.EOF,
	}
	if diff := cmp.Diff(want, kindsOf(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
	if got := tokens[17].Literal; got != "funny" {
		t.Fatalf("expected identifier literal funny, got %#v", got)
	}
}

func TestLexNumbers(t *testing.T) {
	tokens, errs := Lex("12 3.25 7.")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []any{12.0, 3.25, 7.0, nil, nil}
	got := make([]any, 0, len(tokens))
	for _, tok := range tokens {
		got = append(got, tok.Literal)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("literals mismatch (-want +got):\n%s", diff)
	}
	if tokens[3].Kind != token.Dot {
		t.Fatalf("expected trailing dot token, got %v", tokens[3].Kind)
	}
}

func TestLexMultilineStringKeepsStartLine(t *testing.T) {
	tokens, errs := Lex("\"a\nb\" x")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Kind != token.String || tokens[0].Literal != "a\nb" {
		t.Fatalf("unexpected string token %#v", tokens[0])
	}
	if tokens[0].Line != 1 {
		t.Fatalf("expected string on line 1, got %d", tokens[0].Line)
	}
	if tokens[1].Line != 2 || tokens[1].Column != 4 {
		t.Fatalf("expected x at 2:4, got %d:%d", tokens[1].Line, tokens[1].Column)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	tokens, errs := Lex("val s = \"oops\n\n")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if errs[0].Message != "Unterminated string" || errs[0].Pos.Line != 1 {
		t.Fatalf("unexpected error %+v", errs[0])
	}
	want := []token.Kind{token.Val, token.Identifier, token.Equals, token.EOF}
	if diff := cmp.Diff(want, kindsOf(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexComments(t *testing.T) {
	src := "a // trailing\n/* block\n * still */ b /* one */ /* two */ c"
	tokens, errs := Lex(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var names []string
	for _, tok := range tokens {
		if tok.Kind == token.Identifier {
			names = append(names, tok.Lexeme)
		}
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, names); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
	if tokens[1].Line != 3 {
		t.Fatalf("expected b on line 3, got %d", tokens[1].Line)
	}
}

func TestLexUnrecognizedCharacterContinues(t *testing.T) {
	tokens, errs := Lex("a @ b # c")
	if len(errs) != 2 {
		t.Fatalf("expected two errors, got %v", errs)
	}
	if errs[0].Message != "Unrecognized character: '@'" || errs[0].Pos.Column != 3 {
		t.Fatalf("unexpected first error %+v", errs[0])
	}
	if got := len(tokens); got != 4 {
		t.Fatalf("expected 3 identifiers + EOF, got %d tokens", got)
	}
}

func TestLexMultiByteCharacterReportedOnce(t *testing.T) {
	tokens, errs := Lex("a é b")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if errs[0].Message != "Unrecognized character: 'é'" || errs[0].Pos.Column != 3 {
		t.Fatalf("unexpected error %+v", errs[0])
	}
	if got := len(tokens); got != 3 {
		t.Fatalf("expected 2 identifiers + EOF, got %d tokens", got)
	}
}

func TestLexLineOffset(t *testing.T) {
	tokens, _ := Lex("a\nb", WithLineOffset(10))
	if tokens[0].Line != 11 || tokens[1].Line != 12 {
		t.Fatalf("expected lines 11 and 12, got %d and %d", tokens[0].Line, tokens[1].Line)
	}
}

func TestLexEOFAtEndOfInput(t *testing.T) {
	src := "x;\n"
	tokens, _ := Lex(src)
	eof := tokens[len(tokens)-1]
	if eof.Kind != token.EOF || eof.Start != len(src) || eof.Line != 2 {
		t.Fatalf("unexpected EOF token %+v", eof)
	}
}
