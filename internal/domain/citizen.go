package domain

import "time"

// NewCitizen carries the parameters of the add-citizen procedure.
type NewCitizen struct {
	NationalID        string
	FullName          string
	DateOfBirth       *time.Time
	Gender            *string
	AreaName          string
	AreaType          string
	HouseholdAddress  string
	IsHead            bool
	HasCriminalRecord bool
	SetWanted         bool
	SetQuanChe        bool
}

// Record is one result row of a stored procedure, keyed by column name.
type Record map[string]any

// Truthy reports whether column holds a true-ish value (bool true, non-zero number,
// "1"/"true").
func (r Record) Truthy(column string) bool {
	switch v := r[column].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int32:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v == "1" || v == "true" || v == "t"
	default:
		return false
	}
}
