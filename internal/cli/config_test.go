package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/treelink/pkg/cache"
	"github.com/matzehuels/treelink/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treelink.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
method    = "serial"
tree      = "tree.csv"
linkage   = "links.csv"
output    = "out"
formats   = ["json", "svg"]
max_steps = 5000

[cache]
enabled = false
dir     = "/tmp/tl"
scope   = "grade5"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Method != "serial" || cfg.Tree != "tree.csv" || cfg.Linkage != "links.csv" || cfg.Output != "out" {
		t.Errorf("loadConfig() = %+v", cfg)
	}
	if !slices.Equal(cfg.Formats, []string{"json", "svg"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.MaxSteps != 5000 {
		t.Errorf("MaxSteps = %d, want 5000", cfg.MaxSteps)
	}
	if cfg.cacheEnabled() {
		t.Error("cacheEnabled() = true, want false")
	}
	if dir, _ := cfg.cacheDir(); dir != "/tmp/tl" {
		t.Errorf("cacheDir() = %q, want /tmp/tl", dir)
	}
	key := cfg.keyer().ReportKey("t", "l", cache.ReportKeyOpts{Method: "serial"})
	if !strings.HasPrefix(key, "grade5:report:") {
		t.Errorf("scoped key = %q, want grade5:report: prefix", key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, `method = "resolved"`))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if !cfg.cacheEnabled() {
		t.Error("cache should be enabled when [cache] is absent")
	}
	if cfg.keyer() != nil {
		t.Error("keyer() should be nil without a scope")
	}
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") error: %v", err)
	}
	if cfg.Method != "" || cfg.Tree != "" {
		t.Errorf("loadConfig(\"\") = %+v, want empty", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing explicit", filepath.Join(t.TempDir(), "none.toml"), errors.ErrCodeFileNotFound},
		{"syntax", writeConfig(t, `method = `), errors.ErrCodeInvalidConfig},
		{"unknown key", writeConfig(t, `methd = "serial"`), errors.ErrCodeInvalidConfig},
		{"wrong type", writeConfig(t, `max_steps = "many"`), errors.ErrCodeInvalidConfig},
		{"negative steps", writeConfig(t, `max_steps = -1`), errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("loadConfig() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
