package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docc_render/markup"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	configPath = ""
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const importPage = `<html><body>
<picture>
<source media="(prefers-color-scheme: dark)" srcset="/img/overview~dark@2x.png 2x">
<img src="/img/overview.png" srcset="/img/overview.png 1x, /img/overview@2x.png 2x" width="640" alt="Overview" data-identifier="overview.png">
</picture>
</body></html>`

func TestImportThenRender(t *testing.T) {
	db := filepath.Join(t.TempDir(), "assets.db")

	out, err := runCmd(t, importPage, "import", "-", "--sqlite", db)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "overview.png\t3 variants") {
		t.Errorf("Unexpected import output %q", out)
	}

	out, err = runCmd(t, "", "render", "overview.png", "--sqlite", db)
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, out)
	}
	doc, _ := markup.Parse(out)
	img := markup.First(markup.First(doc, "picture"), "img")
	if v, _ := markup.Attr(img, "srcset"); v != "/img/overview.png 1x, /img/overview@2x.png 2x" {
		t.Errorf("Unexpected srcset %q", v)
	}

	out, err = runCmd(t, "", "render", "overview.png", "--fallback", "--sqlite", db)
	if err != nil {
		t.Fatalf("render --fallback failed: %v\n%s", err, out)
	}
	doc, _ = markup.Parse(out)
	if !markup.HasClass(markup.First(doc, "img"), "fallback") {
		t.Errorf("Expected fallback markup, got %s", out)
	}
}

func TestRender_UnknownAsset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "assets.db")
	if _, err := runCmd(t, "", "render", "missing.png", "--sqlite", db); err == nil {
		t.Error("Expected render of an unknown asset to fail")
	}
}

func TestRender_FromManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	body := `{"references":{"logo.png":{"type":"image","alt":"Logo","variants":[{"url":"/logo.png","traits":["1x"],"size":{"width":64,"height":64}}]}}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, "", "render", "logo.png", "--store", "manifest", "--manifest", path)
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `width="64"`) {
		t.Errorf("Unexpected markup %s", out)
	}
}

func TestInvalidStoreFlag(t *testing.T) {
	if _, err := runCmd(t, "", "render", "x", "--store", "redis"); err == nil {
		t.Error("Expected unknown store to be rejected")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docc-render.yaml")
	db := filepath.Join(dir, "from-config.db")
	if err := os.WriteFile(cfgPath, []byte("sqlite_path: "+db+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if out, err := runCmd(t, importPage, "--config", cfgPath, "import", "-"); err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(db); err != nil {
		t.Errorf("Expected database at the configured path: %v", err)
	}
}
