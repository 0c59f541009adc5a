package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const dataset = `{
  "datasets": [
    {
      "source": "amazon",
      "category": "coffee",
      "frequencies": [
        {"text": "taste", "frequency": 100},
        {"text": "aroma", "frequency": 40},
        {"text": "price", "frequency": 12}
      ],
      "trees": {
        "taste": {"word": "taste", "children": [
          {"word": "sweet"},
          {"word": "sweet", "children": [{"word": "strong", "children": [{"word": "smooth"}]}]}
        ]},
        "aroma": {"word": "aroma", "children": [{"word": "nutty"}]}
      }
    },
    {
      "source": "yelp",
      "category": "tea",
      "frequencies": [{"text": "leaf", "frequency": 9}]
    }
  ]
}`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.json")
	if err := os.WriteFile(path, []byte(dataset), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the CLI in-process with an empty config directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected %s: %v", path, err)
	}
	return string(data)
}

func TestCloudCommand(t *testing.T) {
	data := writeDataset(t)
	out := filepath.Join(t.TempDir(), "cloud.svg")

	stdout, err := execute(t, "cloud", "-d", data, "--source", "amazon", "-o", out)
	if err != nil {
		t.Fatalf("cloud failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "cloud of 3 words") {
		t.Errorf("unexpected output: %s", stdout)
	}
	svg := readFile(t, out)
	for _, w := range []string{"taste", "aroma", "price"} {
		if !strings.Contains(svg, w) {
			t.Errorf("svg missing %q", w)
		}
	}
	if strings.Contains(svg, "leaf") {
		t.Error("filtered-out word rendered")
	}
}

func TestCloudCommand_LimitAndFormat(t *testing.T) {
	data := writeDataset(t)
	dir := t.TempDir()

	stdout, err := execute(t, "cloud", "-d", data, "--limit", "1", "--format", "png", "-o", filepath.Join(dir, "top"))
	if err != nil {
		t.Fatalf("cloud failed: %v\n%s", err, stdout)
	}
	png := readFile(t, filepath.Join(dir, "top.png"))
	if !strings.HasPrefix(png, "\x89PNG") {
		t.Error("expected a PNG file")
	}
	if !strings.Contains(stdout, "cloud of 1 words") {
		t.Errorf("limit not applied: %s", stdout)
	}
}

func TestTreeCommand(t *testing.T) {
	data := writeDataset(t)
	dir := t.TempDir()

	// Depth 0 shows the root and its children only.
	stdout, err := execute(t, "tree", "taste", "-d", data, "--depth", "0", "-o", filepath.Join(dir, "shallow.svg"))
	if err != nil {
		t.Fatalf("tree failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "3 of 5 nodes") {
		t.Errorf("unexpected output: %s", stdout)
	}
	if svg := readFile(t, filepath.Join(dir, "shallow.svg")); strings.Contains(svg, "strong") {
		t.Error("collapsed descendants rendered")
	}

	stdout, err = execute(t, "tree", "taste", "-d", data, "--depth", "5", "-o", filepath.Join(dir, "deep.svg"))
	if err != nil {
		t.Fatalf("tree failed: %v\n%s", err, stdout)
	}
	if svg := readFile(t, filepath.Join(dir, "deep.svg")); !strings.Contains(svg, "smooth") {
		t.Error("deep render should reach the leaves")
	}
}

func TestTreeCommand_MissingWord(t *testing.T) {
	_, err := execute(t, "tree", "nope", "-d", writeDataset(t), "-o", filepath.Join(t.TempDir(), "x.svg"))
	if err == nil || !strings.Contains(err.Error(), `"nope"`) {
		t.Errorf("expected error naming the word, got %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	data := writeDataset(t)
	dir := t.TempDir()

	stdout, err := execute(t, "export", "-d", data, "--source", "amazon", "--top", "3", "--out-dir", dir)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, stdout)
	}
	for _, name := range []string{"cloud.svg", "tree-taste.svg", "tree-aroma.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s", name)
		}
	}
	if !strings.Contains(stdout, `no tree for "price"`) {
		t.Errorf("expected a warning for the word without a tree: %s", stdout)
	}
}

func TestImportThenRenderFromSQLite(t *testing.T) {
	data := writeDataset(t)
	db := filepath.Join(t.TempDir(), "reviews.db")

	stdout, err := execute(t, "import", data, "--db", db)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "2 datasets, 4 frequencies, 2 trees") {
		t.Errorf("unexpected import output: %s", stdout)
	}

	out := filepath.Join(t.TempDir(), "cloud.svgz")
	if _, err := execute(t, "cloud", "-d", db, "--category", "tea", "-o", out); err != nil {
		t.Fatalf("cloud from sqlite failed: %v", err)
	}
	if gz := readFile(t, out); !strings.HasPrefix(gz, "\x1f\x8b") {
		t.Error("expected gzip output")
	}
}

func TestConfigFileIsUsed(t *testing.T) {
	data := writeDataset(t)
	outDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "wt.toml")
	cfg := "[data]\npath = \"" + filepath.ToSlash(data) + "\"\n\n[output]\ndir = \"" + filepath.ToSlash(outDir) + "\"\nformat = \"svgz\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", cfgPath, "cloud"); err != nil {
		t.Fatalf("cloud failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "cloud.svgz")); err != nil {
		t.Errorf("config output dir/format not used: %v", err)
	}
}

func TestUnknownDatasetType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "cloud", "-d", path); err == nil {
		t.Error("expected an error for an unknown dataset type")
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "wt v") {
		t.Errorf("unexpected version output: %q", stdout)
	}
}

func TestFileName(t *testing.T) {
	if got := fileName("crème brûlée/latte"); got != "crème_brûlée_latte" {
		t.Errorf("fileName = %q", got)
	}
}
