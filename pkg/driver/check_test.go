package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"crispy/interpreter-go/pkg/interpreter"
)

func TestCheckFiles(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good.crispy")
	bad := filepath.Join(root, "bad.crispy")
	missing := filepath.Join(root, "missing.crispy")
	writeFile(t, good, "val f = fun (n) -> n + 1;\nprintln(f(1));\n")
	writeFile(t, bad, "println(1);\nreturn 2;\nval = 3;\n")

	reports, err := CheckFiles(context.Background(), []string{bad, good, missing}, 2)
	if err != nil {
		t.Fatalf("CheckFiles returned error: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].Path != bad || reports[1].Path != good || reports[2].Path != missing {
		t.Fatalf("reports out of order: %q %q %q", reports[0].Path, reports[1].Path, reports[2].Path)
	}

	want := []interpreter.Diagnostic{
		{Phase: interpreter.PhaseParse, Line: 3, Column: 5, Message: "Expected variable name after 'val'"},
		{Phase: interpreter.PhaseResolve, Line: 2, Column: 1, Message: "Cannot return from top-level code"},
	}
	if diff := cmp.Diff(want, reports[0].Diagnostics); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	if reports[1].Failed() {
		t.Fatalf("expected clean report, got %+v", reports[1])
	}
	if !errors.Is(reports[2].Err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", reports[2].Err)
	}
}

func TestCheckFilesCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.crispy")
	writeFile(t, path, "1;")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckFiles(ctx, []string{path}, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadScript(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "bom.crispy")
	writeFile(t, path, "\xEF\xBB\xBFprintln(1);")
	src, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript returned error: %v", err)
	}
	if src != "println(1);" {
		t.Fatalf("unexpected source %q", src)
	}
	if !IsScript(path) || IsScript(filepath.Join(root, "notes.txt")) {
		t.Fatalf("IsScript misclassified paths")
	}
	if _, err := LoadScript(root); err == nil {
		t.Fatalf("expected directory error")
	}
}
