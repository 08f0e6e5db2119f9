package hierarchy

import (
	"reflect"
	"testing"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// rec builds a directory record with the fields the hierarchy reads.
func rec(self, mgr, title, name string) model.DirectoryRecord {
	return model.DirectoryRecord{PersonID: self, ManagerID: mgr, Title: title, Name: name}
}

func keys(people []model.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.SelfKey
	}
	return out
}

func TestResolveSelf(t *testing.T) {
	tests := []struct {
		name     string
		record   *model.DirectoryRecord
		expected string
	}{
		{"person id", &model.DirectoryRecord{PersonID: " 42 ", Email: "a@x.com"}, "42"},
		{"email fallback", &model.DirectoryRecord{PersonID: "  ", Email: " a@x.com"}, "a@x.com"},
		{"blank", &model.DirectoryRecord{}, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSelf(tt.record); got != tt.expected {
				t.Errorf("ResolveSelf() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveManager(t *testing.T) {
	r := &model.DirectoryRecord{ManagerEmail: "boss@x.com"}
	if got := ResolveManager(r); got != "boss@x.com" {
		t.Errorf("ResolveManager() = %q, want boss@x.com", got)
	}
	r.ManagerID = "7"
	if got := ResolveManager(r); got != "7" {
		t.Errorf("ResolveManager() = %q, want 7", got)
	}
	if got := ResolveManager(&model.DirectoryRecord{}); got != "" {
		t.Errorf("ResolveManager() = %q, want empty", got)
	}
}

func TestRankTable_Rank(t *testing.T) {
	tests := []struct {
		title    string
		expected int
	}{
		{"Chief Operating Officer", 0},
		{"Senior Vice President, Sales", 1},
		{"SVP Marketing", 2},
		{"Vice President", 4},
		{"Director of Claims", 8},
		{"Claims Manager", 9},
		{"Senior Analyst", 12},
		{"Analyst", 14},
		{"Gardener", UnmatchedRank},
		{"", UntitledRank},
		{"   ", UntitledRank},
	}
	for _, tt := range tests {
		if got := SeniorityRanks.Rank(tt.title); got != tt.expected {
			t.Errorf("Rank(%q) = %d, want %d", tt.title, got, tt.expected)
		}
	}
}

func TestRankTable_With(t *testing.T) {
	table := TopTierRanks.With("director", " ")
	if got := table.Rank("Director"); got != len(TopTierRanks) {
		t.Errorf("extended Rank(Director) = %d, want %d", got, len(TopTierRanks))
	}
	if got := TopTierRanks.Rank("Director"); got != UnmatchedRank {
		t.Errorf("original table was modified: Rank(Director) = %d", got)
	}
}

func TestTitleClassifiers(t *testing.T) {
	if !IsManagerTier("Regional Director") || IsManagerTier("Analyst") {
		t.Error("IsManagerTier misclassified")
	}
	if !IsVicePresident("VP, Sales") || IsVicePresident("AVP, Sales") || IsVicePresident("Assistant Vice President") {
		t.Error("IsVicePresident misclassified")
	}
	if !IsSeniorVicePresident("Senior  Vice President") || IsSeniorVicePresident("SVP") {
		t.Error("IsSeniorVicePresident misclassified")
	}
}

func TestBuild_SiblingOrderByTitle(t *testing.T) {
	records := []model.DirectoryRecord{
		rec("boss", "", "Chief", "Boss"),
		rec("a", "boss", "Analyst", "A"),
		rec("b", "boss", "Vice President", "B"),
		rec("c", "boss", "Director", "C"),
	}
	h := Build(People(records))

	var titles []string
	for _, p := range h.Children("boss") {
		titles = append(titles, p.Title)
	}
	expected := []string{"Vice President", "Director", "Analyst"}
	if !reflect.DeepEqual(titles, expected) {
		t.Errorf("sibling order = %v, want %v", titles, expected)
	}
}

func TestBuild_SortOrderThenName(t *testing.T) {
	records := []model.DirectoryRecord{
		rec("boss", "", "Chief", "Boss"),
		rec("z", "boss", "Analyst", "Zed"),
		rec("y", "boss", "Analyst", "amy"),
		rec("x", "boss", "Analyst", "Bob"),
	}
	records[1].SortOrder = "1"
	records[2].SortOrder = "2"
	records[3].SortOrder = "2"
	h := Build(People(records))

	got := keys(h.Children("boss"))
	expected := []string{"z", "y", "x"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("order = %v, want %v", got, expected)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	records := []model.DirectoryRecord{
		rec("1", "", "VP", "One"),
		rec("2", "1", "Director", "Two"),
		rec("3", "1", "Director", "Three"),
		rec("4", "2", "Analyst", "Four"),
		rec("5", "missing", "Analyst", "Five"),
	}
	first := Build(People(records))
	second := Build(People(records))

	if len(first.Adjacency) != len(second.Adjacency) {
		t.Fatalf("bucket count differs: %d vs %d", len(first.Adjacency), len(second.Adjacency))
	}
	for k, bucket := range first.Adjacency {
		if !reflect.DeepEqual(keys(bucket), keys(second.Adjacency[k])) {
			t.Errorf("bucket %s differs: %v vs %v", k, keys(bucket), keys(second.Adjacency[k]))
		}
	}
}

func TestBuild_EveryIdentityPlacedOnce(t *testing.T) {
	records := []model.DirectoryRecord{
		rec("1", "", "VP", "One"),
		rec("2", "1", "Director", "Two"),
		rec("3", "1", "Director", "Three"),
		rec("4", "2", "Analyst", "Four"),
		rec("5", "outside", "Analyst", "Five"),
		rec("", "1", "Analyst", "Nobody"),
	}
	h := Build(People(records))

	count := make(map[string]int)
	for _, bucket := range h.Adjacency {
		for _, p := range bucket {
			count[p.SelfKey]++
		}
	}
	for _, k := range []string{"1", "2", "3", "4", "5"} {
		if count[k] != 1 {
			t.Errorf("identity %s placed %d times, want 1", k, count[k])
		}
	}
	if count[""] != 0 {
		t.Errorf("unresolvable record was placed %d times", count[""])
	}
	if _, ok := h.Index[""]; ok {
		t.Error("blank identity must not be indexed")
	}
}

func TestBuild_ScenarioSinglePath(t *testing.T) {
	records := []model.DirectoryRecord{
		{PersonID: "1", Title: "VP"},
		{PersonID: "2", ManagerID: "1", Title: "Director"},
		{PersonID: "3", ManagerID: "2", Title: "Analyst"},
	}
	h := Build(People(records))

	if got := keys(h.Roots()); !reflect.DeepEqual(got, []string{"1"}) {
		t.Fatalf("roots = %v, want [1]", got)
	}
	if got := keys(h.Children("1")); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("children(1) = %v, want [2]", got)
	}
	if got := keys(h.Children("2")); !reflect.DeepEqual(got, []string{"3"}) {
		t.Errorf("children(2) = %v, want [3]", got)
	}
	top, ok := PickTop(h.Roots())
	if !ok || top.SelfKey != "1" {
		t.Errorf("top = %q (%v), want 1", top.SelfKey, ok)
	}
}

func TestBuild_DanglingManagerBecomesRoot(t *testing.T) {
	records := []model.DirectoryRecord{
		{PersonID: "1", ManagerEmail: "ceo@elsewhere.com", Title: "VP"},
		{Email: "2@x.com", ManagerID: "1"},
	}
	h := Build(People(records))

	if got := keys(h.Roots()); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("roots = %v, want [1]", got)
	}
	if got := keys(h.Children("1")); !reflect.DeepEqual(got, []string{"2@x.com"}) {
		t.Errorf("children(1) = %v", got)
	}
}

func TestBuild_RootLikeIdentityIsOrdinary(t *testing.T) {
	records := []model.DirectoryRecord{
		{PersonID: "__ROOT__", Title: "Chief Executive Officer"},
		{PersonID: "2", ManagerID: "__ROOT__"},
		{PersonID: "3"},
	}
	h := Build(People(records))

	if got := keys(h.Roots()); !reflect.DeepEqual(got, []string{"__ROOT__", "3"}) {
		t.Errorf("roots = %v, want [__ROOT__ 3]", got)
	}
	if got := keys(h.Children("__ROOT__")); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("children(__ROOT__) = %v, want [2]", got)
	}
	if h.Children(RootKey) != nil {
		t.Error("the root bucket should not be reachable as someone's reports")
	}
}

// Two records sharing an identity: the later one shadows the earlier as a
// lookup target while both stay filed. This is a data-quality problem, so the
// builder reports it rather than treating it as meaningful structure.
func TestBuild_DuplicateIdentityIsFlagged(t *testing.T) {
	records := []model.DirectoryRecord{
		rec("boss", "", "VP", "First Boss"),
		rec("boss", "", "VP", "Second Boss"),
		rec("x", "boss", "Analyst", "X"),
	}
	h := Build(People(records))

	if !reflect.DeepEqual(h.Duplicates, []string{"boss"}) {
		t.Errorf("Duplicates = %v, want [boss]", h.Duplicates)
	}
	if h.Index["boss"].Name != "Second Boss" {
		t.Errorf("Index[boss] = %q, want the last record", h.Index["boss"].Name)
	}
	if len(h.Roots()) != 2 {
		t.Errorf("both duplicates should still be filed as roots, got %d", len(h.Roots()))
	}
	if entries := h.EntryPoints(); len(entries) != 1 {
		t.Errorf("a shadowed duplicate must not become a second entry point, got %v", keys(entries))
	}
}

func TestEntryPoints_PureCycle(t *testing.T) {
	records := []model.DirectoryRecord{
		rec("A", "C", "Director", "A"),
		rec("B", "A", "Manager", "B"),
		rec("C", "B", "Analyst", "C"),
	}
	h := Build(People(records))

	if len(h.Roots()) != 0 {
		t.Fatalf("a pure cycle has no roots, got %v", keys(h.Roots()))
	}
	entries := h.EntryPoints()
	if got := keys(entries); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("entry points = %v, want [A]", got)
	}
	if got := keys(h.Descendants("A")); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("descendants(A) = %v, want [B C]", got)
	}
}

func TestEntryPoints_PromotesCycleMemberNotHangingNode(t *testing.T) {
	records := []model.DirectoryRecord{
		rec("D", "B", "Analyst", "D"),
		rec("root", "", "VP", "Root"),
		rec("B", "C", "Manager", "B"),
		rec("C", "B", "Manager", "C"),
	}
	h := Build(People(records))

	got := keys(h.EntryPoints())
	if !reflect.DeepEqual(got, []string{"root", "B"}) {
		t.Errorf("entry points = %v, want [root B]", got)
	}
}

func TestEntryPoints_SelfManaged(t *testing.T) {
	h := Build(People([]model.DirectoryRecord{rec("solo", "solo", "Lead", "Solo")}))
	if got := keys(h.EntryPoints()); !reflect.DeepEqual(got, []string{"solo"}) {
		t.Errorf("entry points = %v, want [solo]", got)
	}
	if d := h.Descendants("solo"); len(d) != 0 {
		t.Errorf("self-managed person must not be its own descendant: %v", keys(d))
	}
}

func TestPickTop(t *testing.T) {
	roots := People([]model.DirectoryRecord{
		rec("vp", "", "Vice President", "Vera"),
		rec("dir", "", "Director", "Aaron"),
		rec("cxo", "", "Chief Officer", "Zoe"),
	})
	top, ok := PickTop(roots)
	if !ok || top.SelfKey != "cxo" {
		t.Errorf("PickTop = %q, want cxo", top.SelfKey)
	}

	// director and below are not distinguished: name decides
	roots = People([]model.DirectoryRecord{
		rec("m", "", "Manager", "Mia"),
		rec("d", "", "Director", "Dan"),
	})
	top, _ = PickTop(roots)
	if top.SelfKey != "d" {
		t.Errorf("PickTop = %q, want d (name tie-break)", top.SelfKey)
	}
}

func TestPickTop_Empty(t *testing.T) {
	if _, ok := PickTop(nil); ok {
		t.Error("PickTop(nil) should report no hierarchy data")
	}
	if _, ok := PickTop([]model.Person{}); ok {
		t.Error("PickTop(empty) should report no hierarchy data")
	}
}
