// Package hierarchy reconstructs reporting relationships from flat directory
// records: identity resolution, sibling ordering, root detection and
// canonical top selection.
package hierarchy

import (
	"strings"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// ResolveSelf returns the identity key of a record: the Person ID, else the
// email address, else "".
func ResolveSelf(r *model.DirectoryRecord) string {
	if r == nil {
		return ""
	}
	return firstNonBlank(r.PersonID, r.Email)
}

// ResolveManager returns the manager key of a record using the same fallback
// rule as ResolveSelf: Manager ID, else Manager Email, else "".
func ResolveManager(r *model.DirectoryRecord) string {
	if r == nil {
		return ""
	}
	return firstNonBlank(r.ManagerID, r.ManagerEmail)
}

func firstNonBlank(primary, secondary string) string {
	if v := strings.TrimSpace(primary); v != "" {
		return v
	}
	return strings.TrimSpace(secondary)
}

// NewPerson resolves a record into the Person the builder works on. index is
// the record's position in its input slice.
func NewPerson(r *model.DirectoryRecord, index int) model.Person {
	return model.Person{
		SelfKey:    ResolveSelf(r),
		ManagerKey: ResolveManager(r),
		Name:       strings.TrimSpace(r.Name),
		Title:      strings.TrimSpace(r.Title),
		SortOrder:  model.SortOrderValue(string(r.SortOrder)),
		Scope: model.Scope{
			Division:   strings.TrimSpace(r.Division),
			Department: strings.TrimSpace(r.Department),
			Team:       strings.TrimSpace(r.Team),
		},
		Regions: model.DeriveRegions(r),
		Index:   index,
		Record:  r,
	}
}

// People resolves every record. The returned people point into records, so
// the slice must outlive them.
func People(records []model.DirectoryRecord) []model.Person {
	people := make([]model.Person, len(records))
	for i := range records {
		people[i] = NewPerson(&records[i], i)
	}
	return people
}
