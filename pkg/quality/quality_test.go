package quality

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

func people(records ...model.DirectoryRecord) []model.Person {
	return hierarchy.People(records)
}

func TestCheck_Clean(t *testing.T) {
	rep := Check(people(
		model.DirectoryRecord{PersonID: "1", Email: "a@example.com"},
		model.DirectoryRecord{PersonID: "2", ManagerID: "1"},
	))
	if !rep.OK() {
		t.Errorf("expected no findings, got %+v", rep.Findings)
	}
	if rep.Records != 2 || rep.People != 2 {
		t.Errorf("Records=%d People=%d", rep.Records, rep.People)
	}
}

func TestCheck_Findings(t *testing.T) {
	rep := Check(people(
		model.DirectoryRecord{PersonID: "1"},
		model.DirectoryRecord{PersonID: "1", Name: "Dup"},
		model.DirectoryRecord{Name: "Nobody"},
		model.DirectoryRecord{Resource: "Help Desk"},
		model.DirectoryRecord{PersonID: "2", ManagerID: "ghost"},
		model.DirectoryRecord{PersonID: "3", ManagerID: "3"},
		model.DirectoryRecord{PersonID: "4", Email: "not-an-email"},
		model.DirectoryRecord{PersonID: "5", Email: "a@"},
		model.DirectoryRecord{PersonID: "6", Email: "a b@c.com"},
		model.DirectoryRecord{PersonID: "7", Email: "n/a"},
	))

	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindDuplicate, 1},
		{KindUnresolvable, 1},
		{KindDangling, 1},
		{KindSelfManaged, 1},
		{KindInvalidEmail, 3},
		{KindCycle, 0},
	}
	for _, tt := range tests {
		if got := rep.Count(tt.kind); got != tt.expected {
			t.Errorf("Count(%s) = %d, want %d", tt.kind, got, tt.expected)
		}
	}

	for _, f := range rep.Findings {
		if f.Kind == KindDuplicate && (f.Row != 2 || !strings.Contains(f.Message, "row 1")) {
			t.Errorf("duplicate finding = %+v", f)
		}
		if f.Kind == KindUnresolvable && !strings.Contains(f.Message, "Nobody") {
			t.Errorf("unresolvable finding should name the row: %+v", f)
		}
	}
	if rep.Summary()[KindDangling] != 1 {
		t.Errorf("Summary = %v", rep.Summary())
	}
}

func TestCycles(t *testing.T) {
	ps := people(
		model.DirectoryRecord{PersonID: "root"},
		model.DirectoryRecord{PersonID: "c", ManagerID: "a"},
		model.DirectoryRecord{PersonID: "a", ManagerID: "b"},
		model.DirectoryRecord{PersonID: "b", ManagerID: "c"},
		model.DirectoryRecord{PersonID: "x", ManagerID: "y"},
		model.DirectoryRecord{PersonID: "y", ManagerID: "x"},
		model.DirectoryRecord{PersonID: "tail", ManagerID: "a"},
		model.DirectoryRecord{PersonID: "self", ManagerID: "self"},
	)
	got := Cycles(ps)
	expected := [][]string{{"a", "b", "c"}, {"x", "y"}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Cycles() = %v, want %v", got, expected)
	}

	rep := Check(ps)
	if rep.Count(KindCycle) != 2 {
		t.Errorf("Count(cycle) = %d, want 2", rep.Count(KindCycle))
	}
}

func TestReport_Write(t *testing.T) {
	rep := Check(people(model.DirectoryRecord{PersonID: "2", ManagerID: "ghost"}))

	var buf bytes.Buffer
	if err := rep.Write(&buf, "yaml"); err != nil {
		t.Fatalf("Write(yaml): %v", err)
	}
	var fromYAML Report
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml output does not parse: %v", err)
	}
	if len(fromYAML.Findings) != 1 || fromYAML.Findings[0].Kind != KindDangling {
		t.Errorf("yaml findings = %+v", fromYAML.Findings)
	}

	buf.Reset()
	if err := rep.Write(&buf, "json"); err != nil {
		t.Fatalf("Write(json): %v", err)
	}
	var fromJSON map[string]any
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}

	if err := rep.Write(&buf, "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
