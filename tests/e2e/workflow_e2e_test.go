package main_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ============================================================================
// E2E: command workflows over the sample directory
// ============================================================================

func TestWorkflow_Version(t *testing.T) {
	out, _, code := runOcv(t, nil, "version")
	if code != 0 || !strings.HasPrefix(out, "ocv version ") {
		t.Fatalf("version: code %d, out %q", code, out)
	}
}

func TestWorkflow_Scopes(t *testing.T) {
	out, stderr, code := runOcv(t, nil, "scopes", "--data", testdata("directory.json"))
	if code != 0 {
		t.Fatalf("scopes failed (%d): %s", code, stderr)
	}
	for _, want := range []string{"Field Marketing\n", "Sales\n", "  East\n", "    Metro\n", "    Coastal\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("scopes output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Field Marketing") > strings.Index(out, "Sales") {
		t.Error("divisions should be sorted")
	}
}

func TestWorkflow_RenderRecursiveWithGroups(t *testing.T) {
	data := testdata("directory.json")
	out, stderr, code := runOcv(t, nil, "render", "--data", data, "--division", "Field Marketing", "--width", "140")
	if code != 0 {
		t.Fatalf("render failed (%d): %s", code, stderr)
	}
	for _, want := range []string{"Grace Hollis", "Marcus Vail", "Brand", "Events"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Lena Ortiz") {
		t.Error("closed groups should hide their members")
	}

	out, _, code = runOcv(t, nil, "render", "--data", data, "--division", "Field Marketing", "--width", "140", "--expand", "all")
	if code != 0 || !strings.Contains(out, "Lena Ortiz") {
		t.Errorf("--expand all should show group members (code %d):\n%s", code, out)
	}
}

func TestWorkflow_RenderLeveledWithResources(t *testing.T) {
	out, stderr, code := runOcv(t, []string{"OCV_MODE=leveled"},
		"render", "--data", testdata("directory.json"), "--division", "Sales", "--width", "160")
	if code != 0 {
		t.Fatalf("render failed (%d): %s", code, stderr)
	}
	for _, want := range []string{"Dana Wolfe", "Rico Santos", "Resources:", "Sales Help Desk", "sales-help@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestWorkflow_RenderTeamIncludesLeaders(t *testing.T) {
	out, stderr, code := runOcv(t, nil, "render", "--data", testdata("directory.json"),
		"--division", "Sales", "--department", "East", "--team", "Metro", "--mode", "leveled", "--width", "120")
	if code != 0 {
		t.Fatalf("render failed (%d): %s", code, stderr)
	}
	for _, want := range []string{"Dana Wolfe", "Zoe Adler", "Maya Fox"} {
		if !strings.Contains(out, want) {
			t.Errorf("team chart missing %q:\n%s", want, out)
		}
	}
}

func TestWorkflow_RenderEmptyScope(t *testing.T) {
	out, _, code := runOcv(t, nil, "render", "--data", testdata("directory.json"), "--division", "Nowhere")
	if code != 0 {
		t.Fatalf("empty scope should not fail, code %d", code)
	}
	if !strings.Contains(out, "No hierarchy data found.") {
		t.Errorf("expected empty state, got:\n%s", out)
	}
}

func TestWorkflow_CheckJSON(t *testing.T) {
	out, stderr, code := runOcv(t, nil, "check", "--data", testdata("directory.json"), "--format", "json")
	if code != 0 {
		t.Fatalf("check failed (%d): %s", code, stderr)
	}
	var report struct {
		Findings []struct {
			Kind string `json:"kind"`
			Key  string `json:"key"`
		} `json:"findings"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	found := false
	for _, f := range report.Findings {
		if f.Kind == "dangling_manager" && f.Key == "S240" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a dangling_manager finding for S240: %s", out)
	}

	_, _, code = runOcv(t, nil, "check", "--data", testdata("directory.json"), "--strict")
	if code != 2 {
		t.Errorf("--strict with findings: code = %d, want 2", code)
	}
}

func TestWorkflow_CheckRegion(t *testing.T) {
	out, stderr, code := runOcv(t, nil, "check", "--data", testdata("directory.json"), "--format", "json", "--region", "Pacific", "--strict")
	if code != 0 {
		t.Fatalf("check --region Pacific: code %d, stderr %s\n%s", code, stderr, out)
	}
	if strings.Contains(out, "S240") {
		t.Errorf("rows outside the region should not be checked:\n%s", out)
	}
}

func TestWorkflow_ExportSVGAndBundle(t *testing.T) {
	dir := t.TempDir()
	admin := []string{"OCV_ADMIN=true"}
	data := testdata("directory.json")

	svg := filepath.Join(dir, "sales.svg")
	_, stderr, code := runOcv(t, admin, "export", "--data", data, "--division", "Sales", "-o", svg)
	if code != 0 {
		t.Fatalf("export failed (%d): %s", code, stderr)
	}
	body, err := os.ReadFile(svg)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(body), "<svg") || !strings.Contains(string(body), "Dana Wolfe") {
		t.Error("svg should contain the chart")
	}

	bundle := filepath.Join(dir, "bundle")
	_, stderr, code = runOcv(t, admin, "export", "--data", data, "--format", "bundle", "-o", bundle)
	if code != 0 {
		t.Fatalf("bundle export failed (%d): %s", code, stderr)
	}
	for _, name := range []string{"index.html", "chart.svg", "chart.png"} {
		if _, err := os.Stat(filepath.Join(bundle, name)); err != nil {
			t.Errorf("bundle missing %s: %v", name, err)
		}
	}
}

func TestWorkflow_ConfigFileAndLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "ocv.yaml", "data_path: "+testdata("directory.json")+"\nmode: leveled\nlog_level: debug\n")
	logPath := filepath.Join(dir, "logs", "ocv.log")

	out, stderr, code := runOcv(t, nil, "render", "--config", cfg, "--log-file", logPath, "--division", "Sales")
	if code != 0 {
		t.Fatalf("render failed (%d): %s", code, stderr)
	}
	if !strings.Contains(out, "Dana Wolfe") {
		t.Error("config data_path should be used")
	}
	logs, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(logs), "directory loaded") {
		t.Errorf("log should record the load:\n%s", logs)
	}
}
