package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/parser"
)

func mustParse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, lexErrs, parseErrs := parser.ParseSource(src)
	if len(lexErrs) > 0 {
		t.Fatalf("lex errors for %q: %v", src, lexErrs)
	}
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, parseErrs)
	}
	return stmts
}

func TestParseExpressions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"precedence", "1 + 2 * 3;", "(expr (+ 1 (* 2 3)))"},
		{"left associative", "1 - 2 - 3;", "(expr (- (- 1 2) 3))"},
		{"modulo and division", "10 % 3 / 2;", "(expr (/ (% 10 3) 2))"},
		{"logical", "a or b and c;", "(expr (or a (and b c)))"},
		{"comparison below equality", "a < b == c;", "(expr (== (< a b) c))"},
		{"unary binds tighter", "!x == y;", "(expr (== (! x) y))"},
		{"postfix chain", "-a.b[0](1);", "(expr (- (call ([] (.b a) 0) 1)))"},
		{"grouping", "(1 + 2) * 3;", "(expr (* (group (+ 1 2)) 3))"},
		{"fraction", "1.5;", "(expr 1.5)"},
		{"literals", `[true, false, nil, "s"];`, `(expr (list true false nil "s"))`},
		{"dictionary", `{"a": 1, 2: [1, 2]};`, `(expr (dict (: "a" 1) (: 2 (list 1 2))))`},
		{"empty containers", "f({}, []);", "(expr (call f (dict) (list)))"},
		{"call with lambda argument", "map(xs, fun x -> x * 2);", "(expr (call map xs (fun (x) (* x 2))))"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ast.PrintProgram(mustParse(t, tc.src))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"val", "val a = 1;", "(val a 1)"},
		{"var without initializer", "var x;", "(var x)"},
		{"var with initializer", "var x = y;", "(var x y)"},
		{"assignment", "x = 1;", "(= x 1)"},
		{"set field", "d.k = 2;", "(set (.k d) 2)"},
		{"set index", "l[0] = 2;", "(set ([] l 0) 2)"},
		{"increment index", "l[0]++;", "(++ ([] l 0))"},
		{"decrement", "i--;", "(-- i)"},
		{"bare return", "return;", "(return)"},
		{"return value", "return a + 1;", "(return (+ a 1))"},
		{"break and continue", "break; continue;", "(break)\n(continue)"},
		{"block", "{ val a = 1; a; }", "(block (val a 1) (expr a))"},
		{
			"if chain",
			"if a { b; } else if c { d; } else { e; }",
			"(if a (block (expr b)) (if c (block (expr d)) (block (expr e))))",
		},
		{"while", "while i < 3 { i++; }", "(while (< i 3) (block (++ i)))"},
		{
			"for",
			"for (var i = 0; i < 3; i++) { println(i); }",
			"(block (var i 0) (while (< i 3) (block (expr (call println i))) (++ i)))",
		},
		{"empty for", "for (;;) { break; }", "(while true (block (break)))"},
		{"lambda parenthesized", "val f = fun (a, b) -> a + b;", "(val f (fun (a b) (+ a b)))"},
		{"lambda bare params", "val f = fun a, b -> a;", "(val f (fun (a b) a))"},
		{"lambda block body", "val g = fun x -> { return x; };", "(val g (fun (x) (block (return x))))"},
		{"lambda no params", "val h = fun -> nil;", "(val h (fun () nil))"},
		{"lambda empty parens", "val h = fun () -> {};", "(val h (fun () (block)))"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ast.PrintProgram(mustParse(t, tc.src))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type parseFailure struct {
	Line    int
	Message string
}

func TestParseErrorsAndRecovery(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		want       []parseFailure
		statements int
	}{
		{
			name:       "one malformed statement before valid ones",
			src:        "val = 5;\nprintln(1);\nprintln(2);",
			want:       []parseFailure{{1, "Expected variable name after 'val'"}},
			statements: 2,
		},
		{
			name:       "missing semicolon resumes at next declaration",
			src:        "val x = 1\nval y = 2;",
			want:       []parseFailure{{2, "Expected ';' after val initialization"}},
			statements: 1,
		},
		{
			name: "several malformed statements",
			src:  "val = 1; 1 + ; println(3);",
			want: []parseFailure{
				{1, "Expected variable name after 'val'"},
				{1, "Expected expression"},
			},
			statements: 1,
		},
		{
			name:       "invalid assignment target",
			src:        "1 = 2;",
			want:       []parseFailure{{1, "Invalid assignment target"}},
			statements: 0,
		},
		{
			name:       "unclosed block",
			src:        "{ val a = 1;",
			want:       []parseFailure{{1, "Expected '}' after block"}},
			statements: 0,
		},
		{
			name:       "lambda without arrow",
			src:        "val f = fun a b -> 1;",
			want:       []parseFailure{{1, "Expected '->' after parameters"}},
			statements: 0,
		},
		{
			name:       "dictionary without colon",
			src:        `val d = {"a" 1};`,
			want:       []parseFailure{{1, "Expected ':' between key and value in dictionary"}},
			statements: 0,
		},
		{
			name:       "stray else",
			src:        "else { }\nval a = 1;",
			want:       []parseFailure{{1, "Expected expression"}},
			statements: 1,
		},
		{
			name:       "malformed statement inside if body",
			src:        "if true { val = 1; }\nprintln(2);\nprintln(3);",
			want:       []parseFailure{{1, "Expected variable name after 'val'"}},
			statements: 3,
		},
		{
			name: "errors inside nested loop bodies",
			src:  "while x {\n  val = 1;\n  if y { 1 + ; }\n  y = 2;\n}\nprintln(1);",
			want: []parseFailure{
				{2, "Expected variable name after 'val'"},
				{3, "Expected expression"},
			},
			statements: 2,
		},
		{
			name:       "for without parentheses",
			src:        "for i < 3 { }",
			want:       []parseFailure{{1, "Expected '(' after 'for'"}},
			statements: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmts, lexErrs, parseErrs := parser.ParseSource(tc.src)
			if len(lexErrs) > 0 {
				t.Fatalf("unexpected lex errors: %v", lexErrs)
			}
			got := make([]parseFailure, len(parseErrs))
			for i, e := range parseErrs {
				got[i] = parseFailure{Line: e.Token.Line, Message: e.Message}
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			if len(stmts) != tc.statements {
				t.Fatalf("expected %d statements, got %d:\n%s", tc.statements, len(stmts), ast.PrintProgram(stmts))
			}
		})
	}
}

func TestParseTracksIdentityOfVariables(t *testing.T) {
	stmts := mustParse(t, "a + a;")
	bin := stmts[0].(*ast.ExpressionStatement).Expression.(*ast.Binary)
	left := bin.Left.(*ast.Variable)
	right := bin.Right.(*ast.Variable)
	if left == right {
		t.Fatalf("each variable occurrence should be a distinct node")
	}
	if left.Name.Column != 1 || right.Name.Column != 5 {
		t.Fatalf("unexpected columns %d and %d", left.Name.Column, right.Name.Column)
	}
}

func TestNewAppendsMissingEOF(t *testing.T) {
	stmts, errs := parser.New(nil).ParseProgram()
	if len(stmts) != 0 || len(errs) != 0 {
		t.Fatalf("expected empty program, got %v / %v", stmts, errs)
	}
}
