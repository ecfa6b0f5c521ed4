package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"
)

type fixtureManifest struct {
	Description string `yaml:"description"`
	Entry       string `yaml:"entry"`
	Stdin       string `yaml:"stdin"`
	Expect      struct {
		Stdout []string `yaml:"stdout"`
		Errors []string `yaml:"errors"`
		Exit   []int    `yaml:"exit"`
	} `yaml:"expect"`
}

func readManifest(t *testing.T, dir string) fixtureManifest {
	t.Helper()
	path := filepath.Join(dir, "manifest.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest %s: %v", path, err)
	}
	var manifest fixtureManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		t.Fatalf("parse manifest %s: %v", path, err)
	}
	if manifest.Entry == "" {
		manifest.Entry = "main.crispy"
	}
	return manifest
}

func TestFixtures(t *testing.T) {
	root := "testdata"
	walkFixtures(t, root, func(dir string) {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			t.Fatalf("computing relative path for %s: %v", dir, err)
		}
		t.Run(filepath.ToSlash(rel), func(t *testing.T) {
			runFixture(t, dir)
		})
	})
}

func runFixture(t *testing.T, dir string) {
	t.Helper()
	manifest := readManifest(t, dir)
	source, err := os.ReadFile(filepath.Join(dir, manifest.Entry))
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}

	h := newHarness(t, manifest.Stdin)
	diags := h.run(string(source))

	errs := make([]string, len(diags))
	for i, d := range diags {
		errs[i] = d.String()
	}
	if diff := cmp.Diff(manifest.Expect.Errors, errs, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("%s: errors mismatch (-want +got):\n%s", manifest.Description, diff)
	}

	var stdout []string
	if out := strings.TrimSuffix(h.out.String(), "\n"); out != "" {
		stdout = strings.Split(out, "\n")
	}
	if diff := cmp.Diff(manifest.Expect.Stdout, stdout, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("%s: stdout mismatch (-want +got):\n%s", manifest.Description, diff)
	}
	if diff := cmp.Diff(manifest.Expect.Exit, h.exits, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("%s: exit codes mismatch (-want +got):\n%s", manifest.Description, diff)
	}
}

func walkFixtures(t *testing.T, dir string, fn func(string)) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() && entry.Name() == "manifest.yml" {
			fn(dir)
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			walkFixtures(t, filepath.Join(dir, entry.Name()), fn)
		}
	}
}
