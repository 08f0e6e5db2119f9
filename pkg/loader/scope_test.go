package loader

import (
	"reflect"
	"testing"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

var directory = []model.DirectoryRecord{
	{PersonID: "svp", Title: "Senior Vice President", Division: "Sales"},
	{PersonID: "vp", ManagerID: "svp", Title: "Vice President", Division: "Sales", Department: "East"},
	{PersonID: "rep", ManagerID: "vp", Title: "Rep", Division: "Sales", Department: "East", Team: "Metro", Pacific: "yes"},
	{PersonID: "ops", Title: "Senior Vice President", Division: "Operations", Department: "n/a"},
	{Resource: "Help Desk", Division: "Sales", Department: "West"},
	{Email: "ann@example.com", Division: "Sales", Department: "west"},
}

func personIDs(records []model.DirectoryRecord) []string {
	var out []string
	for _, r := range records {
		if r.PersonID != "" {
			out = append(out, r.PersonID)
		} else {
			out = append(out, r.Email+r.Resource)
		}
	}
	return out
}

func TestFilterScope(t *testing.T) {
	tests := []struct {
		name     string
		scope    model.Scope
		expected []string
	}{
		{"all", model.Scope{}, []string{"svp", "vp", "rep", "ops", "Help Desk", "ann@example.com"}},
		{"division", model.Scope{Division: "Sales"}, []string{"svp", "vp", "rep", "Help Desk", "ann@example.com"}},
		{"department is exact", model.Scope{Division: "Sales", Department: "West"}, []string{"Help Desk"}},
		{"team", model.Scope{Division: "Sales", Department: "East", Team: "Metro"}, []string{"rep"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := personIDs(FilterScope(directory, tt.scope)); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("FilterScope() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFilterRegion(t *testing.T) {
	if got := personIDs(FilterRegion(directory, "Pacific")); !reflect.DeepEqual(got, []string{"rep"}) {
		t.Errorf("FilterRegion(Pacific) = %v", got)
	}
	if got := FilterRegion(directory, ""); len(got) != len(directory) {
		t.Errorf("empty region should keep everything, got %d", len(got))
	}
}

func TestSplitPeople(t *testing.T) {
	people, resources := SplitPeople(directory)
	if len(people) != 5 {
		t.Errorf("people = %v, email-only rows are people", personIDs(people))
	}
	if got := personIDs(resources); !reflect.DeepEqual(got, []string{"Help Desk"}) {
		t.Errorf("resources = %v", got)
	}
}

func TestIncludeDivisionLeaders(t *testing.T) {
	team := FilterScope(directory, model.Scope{Division: "Sales", Department: "East", Team: "Metro"})
	got := personIDs(IncludeDivisionLeaders(directory, team, "Sales"))
	if !reflect.DeepEqual(got, []string{"rep", "svp"}) {
		t.Errorf("IncludeDivisionLeaders() = %v, want [rep svp]", got)
	}

	withLeader := FilterScope(directory, model.Scope{Division: "Sales"})
	if got := IncludeDivisionLeaders(directory, withLeader, "Sales"); len(got) != len(withLeader) {
		t.Errorf("leaders already in scope must not repeat: %v", personIDs(got))
	}
	if got := IncludeDivisionLeaders(directory, team, ""); len(got) != len(team) {
		t.Error("no division means no leaders added")
	}
}

func TestScopeOptions(t *testing.T) {
	o := ScopeOptions(directory, model.Scope{Division: "Sales"})
	if !reflect.DeepEqual(o.Divisions, []string{"Operations", "Sales"}) {
		t.Errorf("Divisions = %v", o.Divisions)
	}
	if !reflect.DeepEqual(o.Departments, []string{"East", "west", "West"}) &&
		!reflect.DeepEqual(o.Departments, []string{"East", "West", "west"}) {
		t.Errorf("Departments = %v", o.Departments)
	}
	if !reflect.DeepEqual(o.Teams, []string{"Metro"}) {
		t.Errorf("Teams = %v", o.Teams)
	}

	all := ScopeOptions(directory, model.Scope{})
	for _, d := range all.Departments {
		if d == "n/a" {
			t.Error("placeholder values must not be offered")
		}
	}
}

func TestSelect(t *testing.T) {
	team := model.Scope{Division: "Sales", Department: "East", Team: "Metro"}

	people, resources := Select(directory, team, false)
	if got := personIDs(people); !reflect.DeepEqual(got, []string{"rep"}) {
		t.Errorf("people = %v, want [rep]", got)
	}
	if len(resources) != 0 {
		t.Errorf("resources = %d, want 0", len(resources))
	}

	people, _ = Select(directory, team, true)
	if got := personIDs(people); !reflect.DeepEqual(got, []string{"rep", "svp"}) {
		t.Errorf("people with leaders = %v, want [rep svp]", got)
	}

	people, resources = Select(directory, model.Scope{Division: "Sales"}, true)
	if got := personIDs(people); !reflect.DeepEqual(got, []string{"svp", "vp", "rep", "ann@example.com"}) {
		t.Errorf("division people = %v", got)
	}
	if len(resources) != 1 || resources[0].Resource != "Help Desk" {
		t.Errorf("resources = %v, want [Help Desk]", resources)
	}
}
