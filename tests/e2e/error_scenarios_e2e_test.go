package main_test

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Error scenario tests: bad input files, bad flags and permission checks
// should fail with a helpful message and a distinct exit code.

func TestError_MissingDataFile(t *testing.T) {
	_, stderr, code := runOcv(t, nil, "render", "--data", filepath.Join(t.TempDir(), "nope.json"))
	if code != 4 {
		t.Errorf("exit code = %d, want 4", code)
	}
	if !strings.Contains(stderr, "no directory data") {
		t.Errorf("unhelpful error: %s", stderr)
	}
}

func TestError_NoDataConfigured(t *testing.T) {
	_, stderr, code := runOcv(t, nil, "scopes")
	if code != 3 || !strings.Contains(stderr, "--data") {
		t.Errorf("code %d, stderr %q", code, stderr)
	}
}

func TestError_UnsupportedFormat(t *testing.T) {
	p := writeFile(t, t.TempDir(), "directory.txt", "hello")
	_, stderr, code := runOcv(t, nil, "render", "--data", p)
	if code != 4 || !strings.Contains(stderr, "unsupported") {
		t.Errorf("code %d, stderr %q", code, stderr)
	}
}

func TestError_MalformedJSONLSkipsLines(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "directory.jsonl", `{"Person ID":"a","Name":"Ada Top","Title":"Chief Executive Officer"}
{"Person ID":"b","Name":"Broken"
{"Person ID":"c","Manager ID":"a","Name":"Cal Report","Title":"Director"}
`)
	logPath := filepath.Join(dir, "ocv.log")
	out, stderr, code := runOcv(t, nil, "render", "--data", p, "--log-file", logPath)
	if code != 0 {
		t.Fatalf("render failed (%d): %s", code, stderr)
	}
	if !strings.Contains(out, "Ada Top") || !strings.Contains(out, "Cal Report") {
		t.Errorf("valid lines should still render:\n%s", out)
	}
	if strings.Contains(out, "Broken") {
		t.Error("malformed line should be skipped")
	}
}

func TestError_CycleStillRenders(t *testing.T) {
	p := writeFile(t, t.TempDir(), "cycle.json", `[
  {"Person ID":"x","Manager ID":"y","Name":"Xan","Title":"Director"},
  {"Person ID":"y","Manager ID":"x","Name":"Yul","Title":"Director"}
]`)
	out, stderr, code := runOcv(t, nil, "render", "--data", p, "--mode", "leveled")
	if code != 0 {
		t.Fatalf("render failed (%d): %s", code, stderr)
	}
	if !strings.Contains(out, "Xan") || !strings.Contains(out, "Yul") {
		t.Errorf("cycle members should each be drawn:\n%s", out)
	}

	out, _, _ = runOcv(t, nil, "check", "--data", p)
	if !strings.Contains(out, "cycle") {
		t.Errorf("check should report the cycle:\n%s", out)
	}
}

func TestError_BadFlags(t *testing.T) {
	data := testdata("directory.json")
	tests := []struct {
		name string
		args []string
	}{
		{"mode", []string{"render", "--data", data, "--mode", "sideways"}},
		{"region", []string{"render", "--data", data, "--region", "Arctic"}},
		{"check format", []string{"check", "--data", data, "--format", "xml"}},
		{"check region", []string{"check", "--data", data, "--region", "Arctic"}},
		{"root region", []string{"--data", data, "--region", "Arctic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, code := runOcv(t, nil, tt.args...); code != 3 {
				t.Errorf("exit code = %d, want 3", code)
			}
		})
	}
}

func TestError_ExportRequiresAdmin(t *testing.T) {
	_, stderr, code := runOcv(t, nil, "export", "--data", testdata("directory.json"), "-o", filepath.Join(t.TempDir(), "x.svg"))
	if code != 3 || !strings.Contains(stderr, "admins only") {
		t.Errorf("code %d, stderr %q", code, stderr)
	}
}

func TestError_VersionIgnoresBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".ocv.yaml", "node_width: [\n")
	cmd := exec.Command(ocvBinary, "version")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("version with a broken config: %v", err)
	}
	if !strings.HasPrefix(string(out), "ocv version ") {
		t.Errorf("out = %q", out)
	}

	render := exec.Command(ocvBinary, "render", "--data", testdata("directory.json"))
	render.Dir = dir
	err = render.Run()
	if ee, ok := err.(*exec.ExitError); !ok || ee.ExitCode() != 3 {
		t.Errorf("render with the same config: err = %v, want exit 3", err)
	}
}

func TestError_InvalidConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "bad.yaml", "node_width: 2\n")
	_, stderr, code := runOcv(t, nil, "render", "--config", cfg, "--data", testdata("directory.json"))
	if code != 3 || !strings.Contains(stderr, "invalid config") {
		t.Errorf("code %d, stderr %q", code, stderr)
	}
}
