package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupWorkspace writes a small documentation workspace and isolates the
// per-user settings file.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	files := map[string]string{
		"README.md":                 "# Project\n",
		"notes.txt":                 "plain notes\n",
		"docs/guide.md":             "# Guide\n",
		"docs/api-reference.md":     "# API\n",
		".hidden/secret.md":         "# Secret\n",
		"node_modules/pkg/index.md": "# Vendored\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := NewRootCmd(&Options{})
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTreeCmd(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "tree", root, "--raw", "--no-color")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	expected := strings.Join([]string{
		"/" + filepath.Base(root),
		"├── README.md",
		"├── notes.txt",
		"└── docs/",
		"    ├── api-reference.md",
		"    └── guide.md",
		"",
		"4 documents",
		"",
	}, "\n")
	if result != expected {
		t.Errorf("Expected:\n%s\n\nGot:\n%s", expected, result)
	}
}

func TestRootCmd_DefaultsToTree(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, root, "--no-color", "--acronym", "API")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	for _, want := range []string{"README", "Notes", "Docs/", "API Reference", "Guide"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, result)
		}
	}
}

func TestRootCmd_AcceptsTreeFlags(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, root, "--raw", "--no-color")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if !strings.Contains(result, "api-reference.md") {
		t.Errorf("Expected raw file names, got:\n%s", result)
	}
}

func TestTreeCmd_FlagsOverrideConfig(t *testing.T) {
	root := setupWorkspace(t)

	if _, err := execute(t, "config", "set", "directorySort", "files-first", "-C", root); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	result, err := execute(t, "tree", root, "--raw", "--no-color", "--sort", "folders-first", "--show-hidden")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	if !strings.Contains(result, ".hidden/") {
		t.Errorf("Expected hidden folder with --show-hidden, got:\n%s", result)
	}
	if strings.Contains(result, "node_modules") {
		t.Errorf("Expected node_modules to stay excluded, got:\n%s", result)
	}

	readme := strings.Index(result, "README.md")
	docs := strings.Index(result, "docs/")
	notes := strings.Index(result, "notes.txt")
	if readme >= docs || docs >= notes {
		t.Errorf("Expected README, then folders, then files, got:\n%s", result)
	}
}

func TestTreeCmd_InvalidSort(t *testing.T) {
	root := setupWorkspace(t)

	if _, err := execute(t, "tree", root, "--sort", "random"); err == nil {
		t.Error("Expected an error for an unknown sort policy")
	}
	if _, err := execute(t, "tree", root, "--max-depth", "-1"); err == nil {
		t.Error("Expected an error for a negative depth")
	}
}

func TestTreeCmd_RootUnderIgnoredName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// The workspace itself lives under a "build" directory that its own
	// .gitignore excludes.
	root := filepath.Join(t.TempDir(), "build", "ws")
	files := map[string]string{
		".gitignore":         "build/\n",
		"README.md":          "# Project\n",
		"docs/guide.md":      "# Guide\n",
		"build/generated.md": "# Generated\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	result, err := execute(t, "list", root)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if result != "README.md\ndocs/guide.md\n" {
		t.Errorf("Expected documents outside build/, got:\n%s", result)
	}
}

func TestTreeCmd_RootUnderHiddenDirectory(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := filepath.Join(t.TempDir(), ".projects", "ws")
	for name, content := range map[string]string{"README.md": "# Project\n", "docs/guide.md": "# Guide\n"} {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	result, err := execute(t, "list", root)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if result != "README.md\ndocs/guide.md\n" {
		t.Errorf("Expected both documents, got:\n%s", result)
	}
}

func TestTreeCmd_MissingDirectory(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := execute(t, "tree", filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Expected an error for a missing directory")
	}
}

func TestListCmd(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "list", root)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	expected := "README.md\nnotes.txt\ndocs/api-reference.md\ndocs/guide.md\n"
	if result != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, result)
	}

	long, err := execute(t, "list", root, "--long")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if !strings.HasPrefix(long, "PATH") || !strings.Contains(long, "plain") {
		t.Errorf("Expected a header and viewer column, got:\n%s", long)
	}
}

func TestListCmd_Extensions(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "list", root, "--ext", "txt")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	// A lone document keeps its full folder chain.
	if strings.Count(result, "\n") != 1 || !strings.HasSuffix(result, "/"+filepath.Base(root)+"/notes.txt\n") {
		t.Errorf("Expected only notes.txt, got:\n%s", result)
	}
}

func TestFindCmd(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "find", "docs/guide.md", "-C", root)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	expected := "Docs\n└── Guide\n\n" + filepath.Join(root, "docs", "guide.md") + "\n"
	if result != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, result)
	}

	if _, err := execute(t, "find", "docs/missing.md", "-C", root); err == nil {
		t.Error("Expected an error for an unknown document")
	}
}

func TestOpenCmd_Plain(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "open", "notes.txt", "-C", root)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if result != "plain notes\n" {
		t.Errorf("Expected raw file content, got %q", result)
	}
}

func TestOpenCmd_Markdown(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "open", "docs/guide.md", "--width", "40", "-C", root)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if !strings.Contains(result, "Guide") {
		t.Errorf("Expected rendered markdown, got %q", result)
	}
}

func TestOpenCmd_HTML(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "open", "docs/guide.md", "--html", "-C", root)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if !strings.Contains(result, "<h1") || !strings.Contains(result, "Guide") {
		t.Errorf("Expected an HTML page, got:\n%s", result)
	}

	if _, err := execute(t, "open", "docs/guide.md", "--html", "--edit", "-C", root); err == nil {
		t.Error("Expected --html and --edit to be mutually exclusive")
	}
}

func TestExportCmd(t *testing.T) {
	root := setupWorkspace(t)
	outputFile := filepath.Join(t.TempDir(), "bundle.txt")

	result, err := execute(t, "export", root, "-o", outputFile)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if !strings.Contains(result, "Exported") {
		t.Errorf("Expected a summary line, got:\n%s", result)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	for _, want := range []string{"DOCUMENT TREE:", "DOCUMENTS:", "FILE: docs/guide.md", "plain notes"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestExportCmd_SkipsOwnOutput(t *testing.T) {
	root := setupWorkspace(t)
	t.Chdir(root)

	for i := 0; i < 2; i++ {
		if _, err := execute(t, "export"); err != nil {
			t.Fatalf("Export %d failed: %v", i+1, err)
		}
	}

	content, err := os.ReadFile(filepath.Join(root, defaultOutputFile))
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if strings.Contains(string(content), defaultOutputFile) {
		t.Errorf("Expected the bundle to leave out its own output file, got:\n%s", content)
	}
	if !strings.Contains(string(content), "FILE: notes.txt") {
		t.Errorf("Expected other text documents to stay, got:\n%s", content)
	}
}

func TestConfigCmd(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "config", "set", "directorySort", "folders-first", "-C", root)
	if err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	if result != "Set directorySort = folders-first (project)\n" {
		t.Errorf("Unexpected set output: %q", result)
	}
	if _, err := os.Stat(filepath.Join(root, ".docwiki.yaml")); err != nil {
		t.Errorf("Expected project settings file: %v", err)
	}

	result, err = execute(t, "config", "get", "directorySort", "-C", root)
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if result != "directorySort = folders-first (project)\n" {
		t.Errorf("Unexpected get output: %q", result)
	}

	tree, err := execute(t, "tree", root, "--raw", "--no-color")
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if strings.Index(tree, "docs/") > strings.Index(tree, "notes.txt") {
		t.Errorf("Expected saved sort policy to apply, got:\n%s", tree)
	}

	if _, err := execute(t, "config", "unset", "directorySort", "-C", root); err != nil {
		t.Fatalf("config unset failed: %v", err)
	}
	result, err = execute(t, "config", "get", "directorySort", "-C", root)
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if result != "directorySort = files-first (default)\n" {
		t.Errorf("Unexpected get output after unset: %q", result)
	}
}

func TestConfigCmd_Global(t *testing.T) {
	root := setupWorkspace(t)

	if _, err := execute(t, "config", "set", "acronymCasing", "API, HTTP", "--global", "-C", root); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	result, err := execute(t, "config", "get", "acronymCasing", "-C", root)
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if result != "acronymCasing = API,HTTP (global)\n" {
		t.Errorf("Unexpected get output: %q", result)
	}

	tree, err := execute(t, "tree", root, "--no-color")
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if !strings.Contains(tree, "API Reference") {
		t.Errorf("Expected global acronyms to apply, got:\n%s", tree)
	}
}

func TestConfigCmd_InvalidValues(t *testing.T) {
	root := setupWorkspace(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown key", args: []string{"no-such-key", "1"}},
		{name: "bad bool", args: []string{"showHiddenFiles", "yes"}},
		{name: "negative depth", args: []string{"maxSearchDepth", "-1"}},
		{name: "not a number", args: []string{"maxSearchDepth", "deep"}},
		{name: "bad sort", args: []string{"directorySort", "random"}},
		{name: "bad viewer", args: []string{"openWith", "md=browser"}},
		{name: "malformed pair", args: []string{"openWith", "md"}},
		{name: "empty extensions", args: []string{"supportedExtensions", " , "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"config", "set", "-C", root, "--"}, tt.args...)
			if _, err := execute(t, args...); err == nil {
				t.Errorf("Expected an error for %v", tt.args)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(root, ".docwiki.yaml")); !os.IsNotExist(err) {
		t.Errorf("Expected no settings file after rejected values, got %v", err)
	}
}

func TestConfigListCmd(t *testing.T) {
	root := setupWorkspace(t)

	result, err := execute(t, "config", "list", "-C", root)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	for _, option := range configOptions {
		if !strings.Contains(result, option.Key) {
			t.Errorf("Expected %s in list output", option.Key)
		}
	}
}
