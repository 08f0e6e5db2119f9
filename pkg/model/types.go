package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DirectoryRecord is one row of the organization directory exactly as it was
// ingested. Field names follow the spreadsheet headers the directory is
// maintained in.
type DirectoryRecord struct {
	PersonID     string    `json:"Person ID,omitempty"`
	ManagerID    string    `json:"Manager ID,omitempty"`
	ManagerEmail string    `json:"Manager Email,omitempty"`
	IsTeamLead   FlexValue `json:"Is Team Lead,omitempty"`
	SortOrder    FlexValue `json:"Sort Order,omitempty"`
	EmployeeType string    `json:"Employee Type,omitempty"`

	Division   string `json:"Division,omitempty"`
	Department string `json:"Department,omitempty"`
	Team       string `json:"Team,omitempty"`

	Name   string `json:"Name,omitempty"`
	Title  string `json:"Title,omitempty"`
	Mobile string `json:"Mobile #,omitempty"`
	Office string `json:"Office #,omitempty"`
	Email  string `json:"Email,omitempty"`

	TeamEmail    string `json:"Team Email,omitempty"`
	SupportPhone string `json:"Support Phone,omitempty"`

	South     string `json:"South,omitempty"`
	Southeast string `json:"Southeast,omitempty"`
	Midwest   string `json:"Midwest,omitempty"`
	Northeast string `json:"Northeast,omitempty"`
	Pacific   string `json:"Pacific,omitempty"`

	Resource    string `json:"Resource,omitempty"`
	Description string `json:"Description,omitempty"`
	Days        string `json:"Days,omitempty"`
	Hours       string `json:"Hours,omitempty"`
	Location    string `json:"Location,omitempty"`
	Timezone    string `json:"Timezone,omitempty"`
	Notes       string `json:"Notes,omitempty"`
}

// Columns lists the header names understood by tabular loaders, in the order
// they are written by exporters.
var Columns = []string{
	"Person ID", "Manager ID", "Manager Email", "Is Team Lead", "Sort Order", "Employee Type",
	"Division", "Department", "Team",
	"Name", "Title", "Mobile #", "Office #", "Email",
	"Team Email", "Support Phone",
	"South", "Southeast", "Midwest", "Northeast", "Pacific",
	"Resource", "Description", "Days", "Hours", "Location", "Timezone", "Notes",
}

// Set assigns a field by its header name. Unknown headers are ignored and
// reported as false.
func (r *DirectoryRecord) Set(column, value string) bool {
	if f := r.field(column); f != nil {
		*f = value
		return true
	}
	switch column {
	case "Is Team Lead":
		r.IsTeamLead = FlexValue(value)
	case "Sort Order":
		r.SortOrder = FlexValue(value)
	default:
		return false
	}
	return true
}

// Get returns a field by its header name.
func (r *DirectoryRecord) Get(column string) string {
	if f := r.field(column); f != nil {
		return *f
	}
	switch column {
	case "Is Team Lead":
		return string(r.IsTeamLead)
	case "Sort Order":
		return string(r.SortOrder)
	}
	return ""
}

func (r *DirectoryRecord) field(column string) *string {
	switch column {
	case "Person ID":
		return &r.PersonID
	case "Manager ID":
		return &r.ManagerID
	case "Manager Email":
		return &r.ManagerEmail
	case "Employee Type":
		return &r.EmployeeType
	case "Division":
		return &r.Division
	case "Department":
		return &r.Department
	case "Team":
		return &r.Team
	case "Name":
		return &r.Name
	case "Title":
		return &r.Title
	case "Mobile #":
		return &r.Mobile
	case "Office #":
		return &r.Office
	case "Email":
		return &r.Email
	case "Team Email":
		return &r.TeamEmail
	case "Support Phone":
		return &r.SupportPhone
	case "South":
		return &r.South
	case "Southeast":
		return &r.Southeast
	case "Midwest":
		return &r.Midwest
	case "Northeast":
		return &r.Northeast
	case "Pacific":
		return &r.Pacific
	case "Resource":
		return &r.Resource
	case "Description":
		return &r.Description
	case "Days":
		return &r.Days
	case "Hours":
		return &r.Hours
	case "Location":
		return &r.Location
	case "Timezone":
		return &r.Timezone
	case "Notes":
		return &r.Notes
	}
	return nil
}

// TrimAll trims surrounding whitespace from every string field.
func (r *DirectoryRecord) TrimAll() {
	for _, col := range Columns {
		r.Set(col, strings.TrimSpace(r.Get(col)))
	}
}

// DisplayName returns the person's name, falling back to the resource label
// for contact rows that describe a shared mailbox or service.
func (r *DirectoryRecord) DisplayName() string {
	if n := strings.TrimSpace(r.Name); n != "" {
		return n
	}
	return strings.TrimSpace(r.Resource)
}

// FlexValue holds a cell that may arrive as a JSON string, number or bool.
type FlexValue string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (f *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexValue(s)
		return nil
	}
	switch string(data) {
	case "true", "false":
		*f = FlexValue(data)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unsupported value %s: %w", data, err)
	}
	*f = FlexValue(n.String())
	return nil
}

// Region names in display order.
var RegionKeys = []string{"South", "Southeast", "Midwest", "Northeast", "Pacific"}

// RegionColors maps each region to its pill colour.
var RegionColors = map[string]string{
	"South":     "#7FC5E4",
	"Southeast": "#F26C6C",
	"Northeast": "#CCED7B",
	"Midwest":   "#63BEB1",
	"Pacific":   "#F7AF6D",
}

// TruthyFlag reports whether a spreadsheet flag cell is set.
func TruthyFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "true", "1", "✓", "x":
		return true
	}
	return false
}

// DeriveRegions returns the regions flagged on a record, in RegionKeys order.
func DeriveRegions(r *DirectoryRecord) []string {
	var out []string
	for _, k := range RegionKeys {
		if TruthyFlag(r.Get(k)) {
			out = append(out, k)
		}
	}
	return out
}

var nonValues = map[string]bool{
	"false": true, "no": true, "n": true, "0": true,
	"na": true, "n/a": true, "n.a": true, "n.a.": true, "na.": true,
	"none": true, "tbd": true, "to be determined": true, "-": true, "--": true,
}

// IsNonValue reports whether a cell is blank or holds a placeholder such as
// "N/A" or "TBD" that should not be shown.
func IsNonValue(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	return s == "" || nonValues[s]
}

// Scope is a division / department / team partition of the directory.
// Empty components match everything.
type Scope struct {
	Division   string `json:"division,omitempty" yaml:"division,omitempty"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
	Team       string `json:"team,omitempty" yaml:"team,omitempty"`
}

// String renders the scope as a breadcrumb.
func (s Scope) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Division, s.Department, s.Team} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "All"
	}
	return strings.Join(parts, " › ")
}

// Attribute returns the named scope component ("division", "department" or
// "team").
func (s Scope) Attribute(name string) string {
	switch strings.ToLower(name) {
	case "division":
		return s.Division
	case "department":
		return s.Department
	case "team":
		return s.Team
	}
	return ""
}

// Person is the resolved view of a DirectoryRecord that the hierarchy works on.
type Person struct {
	SelfKey    string   // resolved identity; empty if unresolvable
	ManagerKey string   // resolved manager identity; empty if none
	Name       string   // trimmed name
	Title      string   // trimmed title
	SortOrder  float64  // explicit ordering hint, 0 when absent
	Scope      Scope    // division / department / team tags
	Regions    []string // derived region tags, display only
	Index      int      // position in the input slice

	Record *DirectoryRecord // original record handed to the open-detail callback
}

// Addressable reports whether the person can be looked up as a manager.
func (p Person) Addressable() bool {
	return p.SelfKey != ""
}

// SortOrderValue parses a raw sort order cell. Unparseable and non-finite
// values become 0.
func SortOrderValue(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
