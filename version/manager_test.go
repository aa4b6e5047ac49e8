package version

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newProject lays out a synthetic project tree with the given canonical
// version and returns a manager config pointed at it.
func newProject(t *testing.T, canonical string) Config {
	t.Helper()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "VERSION"), []byte(canonical), 0666); err != nil {
		t.Fatalf("writing VERSION: %v", err)
	}

	return Config{
		Root:        root,
		Name:        "Unified Data Studio v2",
		VersionFile: "VERSION",
		HeaderFile:  "frontend/src/version.ts",
		Environment: "development",
	}
}

func writeTarget(t *testing.T, cfg Config, rel, content string) string {
	t.Helper()

	path := filepath.Join(cfg.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		t.Fatalf("creating target dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatalf("writing target: %v", err)
	}

	return path
}

func TestNewMissingVersionFile(t *testing.T) {
	cfg := Config{Root: t.TempDir(), VersionFile: "VERSION"}

	if _, err := New(cfg); !errors.Is(err, ErrNotFound) {
		t.Fatalf("New on empty tree = %v, expected ErrNotFound", err)
	}
}

func TestNewBadVersionFormat(t *testing.T) {
	for _, bad := range []string{"1.0", "v1.0.0", "1.0.0-beta", "garbage"} {
		cfg := newProject(t, bad)

		if _, err := New(cfg); !errors.Is(err, ErrBadFormat) {
			t.Fatalf("New with %q = %v, expected ErrBadFormat", bad, err)
		}
	}
}

func TestManagerBumpPersists(t *testing.T) {
	cfg := newProject(t, "1.2.3")

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	next, err := m.Bump("minor")
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}
	if next.String() != "1.3.0" {
		t.Fatalf("Bump(\"minor\") = %q, expected \"1.3.0\"", next.String())
	}
	if m.Version().String() != "1.3.0" {
		t.Fatalf("in-memory version is %q after bump", m.Version().String())
	}

	b, err := os.ReadFile(filepath.Join(cfg.Root, "VERSION"))
	if err != nil {
		t.Fatalf("reading VERSION: %v", err)
	}
	if got := strings.TrimSpace(string(b)); got != "1.3.0" {
		t.Fatalf("canonical file holds %q after bump, expected \"1.3.0\"", got)
	}
}

func TestManagerBumpInvalidKindLeavesFile(t *testing.T) {
	cfg := newProject(t, "1.2.3")

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.Bump("bogus"); !errors.Is(err, ErrInvalidBump) {
		t.Fatalf("Bump(\"bogus\") = %v, expected ErrInvalidBump", err)
	}

	b, _ := os.ReadFile(filepath.Join(cfg.Root, "VERSION"))
	if got := strings.TrimSpace(string(b)); got != "1.2.3" {
		t.Fatalf("canonical file holds %q after failed bump, expected \"1.2.3\"", got)
	}
	if m.Version().String() != "1.2.3" {
		t.Fatalf("in-memory version is %q after failed bump", m.Version().String())
	}
}

func TestPropagateIdempotent(t *testing.T) {
	cfg := newProject(t, "2.1.0")

	target := Target{
		Name:    "backend",
		File:    "backend/Cargo.toml",
		Pattern: `(?m)^version\s*=\s*"[^"]*"`,
		Replace: `version = "{version}"`,
	}
	path := writeTarget(t, cfg, target.File, "[package]\nname = \"backend\"\nversion = \"2.0.9\"\nedition = \"2021\"\n")

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := m.Propagate(target); err != nil {
		t.Fatalf("first Propagate: %v", err)
	}

	once, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading target: %v", err)
	}
	if !strings.Contains(string(once), "version = \"2.1.0\"") {
		t.Fatalf("target after Propagate:\n%#q", string(once))
	}

	if err := m.Propagate(target); err != nil {
		t.Fatalf("second Propagate: %v", err)
	}

	twice, _ := os.ReadFile(path)
	if string(once) != string(twice) {
		t.Fatalf("got\n%#q\n\nexpected\n%#q", string(twice), string(once))
	}
}

func TestPropagateMissingFile(t *testing.T) {
	cfg := newProject(t, "2.1.0")

	target := Target{
		Name:    "frontend-package",
		File:    "frontend/package.json",
		Pattern: `"version":\s*"[^"]*"`,
		Replace: `"version": "{version}"`,
	}

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := m.Propagate(target); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Propagate on missing file = %v, expected ErrNotFound", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Root, target.File)); !os.IsNotExist(err) {
		t.Fatalf("Propagate created the missing target file")
	}
}

func TestPropagatePatternAbsent(t *testing.T) {
	cfg := newProject(t, "2.1.0")

	target := Target{
		Name:    "readme",
		File:    "README.md",
		Pattern: `version = "[^"]*"`,
		Replace: `version = "{version}"`,
	}

	const content = "# Unified Data Studio\n\nNo version here.\n"
	path := writeTarget(t, cfg, target.File, content)

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := m.Propagate(target); !errors.Is(err, ErrPatternNotFound) {
		t.Fatalf("Propagate without pattern = %v, expected ErrPatternNotFound", err)
	}

	b, _ := os.ReadFile(path)
	if string(b) != content {
		t.Fatalf("target changed despite absent pattern:\n%#q", string(b))
	}
}

func TestWriteHeader(t *testing.T) {
	cfg := newProject(t, "2.1.0")

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// stale content must be fully replaced, not merged
	writeTarget(t, cfg, cfg.HeaderFile, "export const APP_VERSION = '0.0.1';\nexport const STALE = true;\n")

	if err := m.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(cfg.Root, cfg.HeaderFile))
	if err != nil {
		t.Fatalf("reading header: %v", err)
	}

	header := string(b)
	for _, want := range []string{
		"export const APP_VERSION = '2.1.0';",
		"export const APP_NAME = 'Unified Data Studio v2';",
		"buildDate: '",
		"environment: process.env.NODE_ENV || 'development',",
	} {
		if !strings.Contains(header, want) {
			t.Fatalf("header missing %q:\n%s", want, header)
		}
	}
	if strings.Contains(header, "STALE") {
		t.Fatalf("header merged stale content:\n%s", header)
	}
}

// TestUpdateAll runs the full batch against one matching target, one target
// with no version pattern, and the header.
func TestUpdateAll(t *testing.T) {
	cfg := newProject(t, "2.1.0")
	cfg.Targets = []Target{
		{
			Name:    "target1",
			File:    "backend/Cargo.toml",
			Pattern: `(?m)^version\s*=\s*"[^"]*"`,
			Replace: `version = "{version}"`,
		},
		{
			Name:    "target2",
			File:    "notes.txt",
			Pattern: `version = "[^"]*"`,
			Replace: `version = "{version}"`,
		},
	}

	matched := writeTarget(t, cfg, "backend/Cargo.toml", "version = \"2.0.9\"\n")
	unmatched := writeTarget(t, cfg, "notes.txt", "nothing versioned here\n")

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results, batchErr := m.UpdateAll()

	want := map[string]bool{
		"target1":  true,
		"target2":  false,
		HeaderName: true,
	}
	if len(results) != len(want) {
		t.Fatalf("result map %v, expected %v", results, want)
	}
	for name, ok := range want {
		got, present := results[name]
		if !present || got != ok {
			t.Fatalf("result map %v, expected %v", results, want)
		}
	}

	if batchErr == nil || !errors.Is(batchErr, ErrPatternNotFound) {
		t.Fatalf("batch error = %v, expected to aggregate ErrPatternNotFound", batchErr)
	}

	b, _ := os.ReadFile(matched)
	if string(b) != "version = \"2.1.0\"\n" {
		t.Fatalf("matched target holds %#q", string(b))
	}

	b, _ = os.ReadFile(unmatched)
	if string(b) != "nothing versioned here\n" {
		t.Fatalf("unmatched target changed: %#q", string(b))
	}

	if _, err := os.Stat(filepath.Join(cfg.Root, cfg.HeaderFile)); err != nil {
		t.Fatalf("header not written: %v", err)
	}
}

// TestUpdateAllAfterBump reproduces the bump command sequence: persist the
// new version, then propagate it.
func TestUpdateAllAfterBump(t *testing.T) {
	cfg := newProject(t, "1.9.9")
	cfg.Targets = []Target{
		{
			Name:    "frontend-package",
			File:    "frontend/package.json",
			Pattern: `"version":\s*"[^"]*"`,
			Replace: `"version": "{version}"`,
		},
	}

	path := writeTarget(t, cfg, "frontend/package.json", "{\n  \"name\": \"uds\",\n  \"version\": \"1.9.9\"\n}\n")

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.Bump("major"); err != nil {
		t.Fatalf("Bump: %v", err)
	}

	results, batchErr := m.UpdateAll()
	if batchErr != nil {
		t.Fatalf("UpdateAll after bump: %v", batchErr)
	}
	if !results["frontend-package"] || !results[HeaderName] {
		t.Fatalf("result map %v, expected all true", results)
	}

	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "\"version\": \"2.0.0\"") {
		t.Fatalf("package.json after bump:\n%#q", string(b))
	}
}
