package kpatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const miniChanges = `
[Settings]
WindowCaption=Mini

[InstallList]
install_folder0=Override

[install_folder0]
File0=extra.tga
`

func writeMod(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range map[string]string{
		ChangesFile: miniChanges,
		"extra.tga": "tga-bytes",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoad(t *testing.T) {
	cfg := Config{ModDir: writeMod(t)}
	p, err := Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Settings.Name != "Mini" {
		t.Fatalf("name = %q", p.Settings.Name)
	}
	if len(p.Installs) != 1 || p.Installs[0].Files[0].Source != "extra.tga" {
		t.Fatalf("installs: %+v", p.Installs)
	}
}

func TestApply(t *testing.T) {
	cfg := Config{
		ModDir:  writeMod(t),
		GameDir: t.TempDir(),
	}
	rp, err := Apply(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if rp.Applied != 1 {
		t.Fatalf("report: %+v", rp)
	}
	got, err := os.ReadFile(filepath.Join(cfg.GameDir, "Override", "extra.tga"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "tga-bytes" {
		t.Fatalf("installed content: %q", got)
	}
}

func TestLoadMissingChanges(t *testing.T) {
	if _, err := Load(Config{ModDir: t.TempDir()}); err == nil {
		t.Fatal("expected error for missing changes.ini")
	}
}
