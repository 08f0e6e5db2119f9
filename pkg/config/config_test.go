package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Mode != layout.ModeRecursive || c.NodeWidth != 28 || !c.Watch {
		t.Errorf("defaults = %+v", c)
	}
	if len(c.Policies) != len(layout.DefaultPolicies()) {
		t.Errorf("Policies = %v", c.Policies)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, DefaultFile), `
data_path: data/directory.csv
mode: leveled
node_width: 30
debounce: 500ms
scope:
  division: Sales
policies:
  - name: ops
    match: [operations]
    group_by: team
rank_overrides: [principal]
`)
	writeFile(t, filepath.Join(dir, ".env"), "OCV_ADMIN=true\n")
	t.Setenv("OCV_NODE_WIDTH", "40")
	t.Cleanup(func() { os.Unsetenv("OCV_ADMIN") })

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Mode != layout.ModeLeveled {
		t.Errorf("Mode = %q, want leveled", c.Mode)
	}
	if c.NodeWidth != 40 {
		t.Errorf("NodeWidth = %d, environment should override the file", c.NodeWidth)
	}
	if !c.Admin {
		t.Error("Admin should come from .env")
	}
	if c.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v", c.Debounce)
	}
	if c.DataPath != filepath.Join("data", "directory.csv") {
		t.Errorf("DataPath = %q", c.DataPath)
	}
	if c.Scope.Division != "Sales" {
		t.Errorf("Scope = %+v", c.Scope)
	}
	if p := c.Policies.For("Operations"); p.GroupBy != "team" {
		t.Errorf("configured policy not applied: %+v", p)
	}
	if got := c.Ranks().Rank("Principal Engineer"); got != len(c.Ranks())-1 {
		t.Errorf("override rank = %d", got)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load("nope.yaml"); err == nil {
		t.Error("expected error for a missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad mode", func(c *Config) { c.Mode = "sideways" }, "Mode"},
		{"narrow", func(c *Config) { c.NodeWidth = 4 }, "NodeWidth"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"policy without match", func(c *Config) { c.Policies = layout.Policies{{Name: "x"}} }, "Match"},
		{"bad group", func(c *Config) { c.Policies = layout.Policies{{Match: []string{"x"}, GroupBy: "region"}} }, "GroupBy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	c := Default()
	c.LogLevel = "debug"
	c.LogFile = filepath.Join(t.TempDir(), "logs", "ocv.log")
	log, closer, err := c.Logger()
	if err != nil {
		t.Fatalf("Logger: %v", err)
	}
	log.WithField("records", 3).Info("loaded")
	closer.Close()

	data, err := os.ReadFile(c.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "records=3") {
		t.Errorf("log = %q", data)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", log.GetLevel())
	}
}
