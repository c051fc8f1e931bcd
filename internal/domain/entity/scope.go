// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"

	domainerrors "yearbook/internal/domain/errors"
)

// ScopeDelimiter separates the school, year and class components of a ScopeID.
const ScopeDelimiter = ":"

// ScopeID identifies a tenant partition: a school's graduating year, optionally narrowed to one class.
// Year-wide and class scopes under the same school and year are distinct partitions.
type ScopeID string

// String returns the string representation of the ScopeID.
func (id ScopeID) String() string {
	return string(id)
}

// Scope is the decomposed form of a ScopeID.
type Scope struct {
	SchoolID string `json:"school_id"`
	Year     string `json:"year"`
	ClassID  string `json:"class_id,omitempty"` // Empty for a year-wide scope.
}

// MakeScopeID joins the scope components into a canonical ScopeID.
// An empty classID yields the year-wide scope.
func MakeScopeID(schoolID, year, classID string) (ScopeID, error) {
	if err := validateScopeComponent("school", schoolID, true); err != nil {
		return "", err
	}
	if err := validateScopeComponent("year", year, true); err != nil {
		return "", err
	}
	if err := validateScopeComponent("class", classID, false); err != nil {
		return "", err
	}

	if classID == "" {
		return ScopeID(schoolID + ScopeDelimiter + year), nil
	}

	return ScopeID(schoolID + ScopeDelimiter + year + ScopeDelimiter + classID), nil
}

// ParseScopeID splits a ScopeID back into its components.
func ParseScopeID(id ScopeID) (Scope, error) {
	parts := strings.Split(string(id), ScopeDelimiter)
	if len(parts) != 2 && len(parts) != 3 {
		return Scope{}, domainerrors.ErrInvalidScope.WithDetails("scope must have two or three components")
	}

	scope := Scope{SchoolID: parts[0], Year: parts[1]}
	if len(parts) == 3 {
		scope.ClassID = parts[2]
		if scope.ClassID == "" {
			return Scope{}, domainerrors.ErrInvalidScope.WithDetails("class must not be empty")
		}
	}

	if scope.SchoolID == "" || scope.Year == "" {
		return Scope{}, domainerrors.ErrInvalidScope.WithDetails("school and year are required")
	}

	return scope, nil
}

// ID returns the canonical ScopeID of the scope.
func (s Scope) ID() (ScopeID, error) {
	return MakeScopeID(s.SchoolID, s.Year, s.ClassID)
}

// IsClassScope reports whether the scope is narrowed to a single class.
func (s Scope) IsClassScope() bool {
	return s.ClassID != ""
}

func validateScopeComponent(name, value string, required bool) error {
	if value == "" {
		if required {
			return domainerrors.ErrInvalidScope.WithDetails(name + " is required")
		}

		return nil
	}

	if strings.Contains(value, ScopeDelimiter) {
		return domainerrors.ErrInvalidScope.WithDetails(name + " must not contain " + ScopeDelimiter)
	}

	return nil
}
