package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogDefaultCandidates(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, "operations.yml"))
	writeFile(t, filepath.Join(root, "docs", "operations.yaml"))

	got, err := Catalog(root, "")
	if err != nil {
		t.Fatalf("Catalog returned error: %v", err)
	}
	if got != filepath.Join("docs", "operations.yaml") {
		t.Fatalf("expected docs/operations.yaml to win, got %q", got)
	}
}

func TestCatalogExplicit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "catalog.yml"))

	got, err := Catalog(root, "catalog.yml")
	if err != nil {
		t.Fatalf("Catalog returned error: %v", err)
	}
	if got != "catalog.yml" {
		t.Fatalf("expected relative path, got %q", got)
	}

	externalDir := t.TempDir()
	absOutside := filepath.Join(externalDir, "external.yml")
	writeFile(t, absOutside)

	got, err = Catalog(root, absOutside)
	if err != nil {
		t.Fatalf("Catalog returned error: %v", err)
	}
	if got != absOutside {
		t.Fatalf("path mismatch: got %q expected %q", got, absOutside)
	}
}

func TestCatalogErrors(t *testing.T) {
	root := t.TempDir()

	if _, err := Catalog(root, ""); !errors.Is(err, ErrNoCatalog) {
		t.Fatalf("expected ErrNoCatalog, got %v", err)
	}

	if _, err := Catalog(root, "missing.yml"); err == nil {
		t.Fatalf("expected error for missing file")
	}

	dir := filepath.Join(root, "dir.yml")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Catalog(root, "dir.yml"); err == nil {
		t.Fatalf("expected error for directory input")
	}
}

func TestResolveDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "operations.yml"))

	in, err := Resolve(root, "", "", "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if in.Catalog != "operations.yml" {
		t.Fatalf("catalog = %q", in.Catalog)
	}
	if in.Template != filepath.Clean(DefaultTemplate) || in.Output != filepath.Clean(DefaultOutput) {
		t.Fatalf("unexpected defaults: %+v", in)
	}
	if in.Abs(in.Output) != filepath.Join(root, DefaultOutput) {
		t.Fatalf("Abs(output) = %q", in.Abs(in.Output))
	}
}

func TestResolveExplicitOutsideRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "operations.yml"))
	outside := filepath.Join(t.TempDir(), "OPERATIONS.md")

	in, err := Resolve(root, "", filepath.Join(root, "tmpl", "report.md.tmpl"), outside)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if in.Template != filepath.Join("tmpl", "report.md.tmpl") {
		t.Fatalf("template = %q", in.Template)
	}
	if in.Output != outside || in.Abs(in.Output) != outside {
		t.Fatalf("output = %q", in.Output)
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
