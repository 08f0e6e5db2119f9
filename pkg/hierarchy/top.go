package hierarchy

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// PickTop chooses the single person to draw at the top of a scope's chart
// among its roots, using the executive-only ranking and then name. It
// reports false when roots is empty: the scope has no hierarchy data.
func PickTop(roots []model.Person) (model.Person, bool) {
	return PickTopRanked(roots, TopTierRanks)
}

// PickTopRanked is PickTop with a caller-supplied ranking.
func PickTopRanked(roots []model.Person, ranks RankTable) (model.Person, bool) {
	if len(roots) == 0 {
		return model.Person{}, false
	}
	col := collate.New(language.English)
	sorted := make([]model.Person, len(roots))
	copy(sorted, roots)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := ranks.Rank(sorted[i].Title), ranks.Rank(sorted[j].Title)
		if ri != rj {
			return ri < rj
		}
		return col.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})
	return sorted[0], true
}
