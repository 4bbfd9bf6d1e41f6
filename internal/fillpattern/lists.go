// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package fillpattern

import "strings"

var builtinLists = map[string][]string{
	"dayNameFull":      {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	"dayNameAbbrev":    {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	"monthNameFull":    {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"monthNameAbbrev":  {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"quarter":          {"Q1", "Q2", "Q3", "Q4"},
}

// patternTypeForList maps a built-in list name to its DetectedPattern.Type;
// user-added custom lists always report PatternCustom.
func patternTypeForList(name string) PatternType {
	switch name {
	case "dayNameFull", "dayNameAbbrev":
		return PatternDayName
	case "monthNameFull", "monthNameAbbrev":
		return PatternMonthName
	default:
		return PatternCustom
	}
}

// ListRegistry holds the built-in lists plus any caller-added custom lists.
// More-specific (later-added) lists are matched first.
type ListRegistry struct {
	custom []namedList
}

type namedList struct {
	name   string
	values []string
}

// NewListRegistry builds a registry seeded with no custom lists; built-ins
// are always available regardless of registry state.
func NewListRegistry() *ListRegistry { return &ListRegistry{} }

// AddCustomList registers a user list under name, matched before built-ins.
func (r *ListRegistry) AddCustomList(name string, values []string) {
	r.custom = append([]namedList{{name: name, values: values}}, r.custom...)
}

// findList returns the first list (custom lists first, most-recently-added
// first) containing value case-insensitively, plus its index within that
// list.
func (r *ListRegistry) findList(value string) (name string, values []string, index int, ok bool) {
	lower := strings.ToLower(value)
	for _, l := range r.custom {
		if idx := indexOfFold(l.values, lower); idx >= 0 {
			return l.name, l.values, idx, true
		}
	}
	for _, builtinName := range []string{"dayNameFull", "dayNameAbbrev", "monthNameFull", "monthNameAbbrev", "quarter"} {
		values := builtinLists[builtinName]
		if idx := indexOfFold(values, lower); idx >= 0 {
			return builtinName, values, idx, true
		}
	}
	return "", nil, 0, false
}

// listByName resolves a list (custom first) by its exact name, for
// Generate to look up the list a DetectedPattern already identified.
func (r *ListRegistry) listByName(name string) []string {
	for _, l := range r.custom {
		if l.name == name {
			return l.values
		}
	}
	return builtinLists[name]
}

func indexOfFold(values []string, lowerNeedle string) int {
	for i, v := range values {
		if strings.ToLower(v) == lowerNeedle {
			return i
		}
	}
	return -1
}

// caseStyle classifies s's casing so generated list values can match it.
type caseStyle int

const (
	caseVerbatim caseStyle = iota
	caseUpper
	caseLower
	caseTitle
)

func detectCaseStyle(s string) caseStyle {
	if s == "" {
		return caseVerbatim
	}
	switch {
	case s == strings.ToUpper(s) && s != strings.ToLower(s):
		return caseUpper
	case s == strings.ToLower(s) && s != strings.ToUpper(s):
		return caseLower
	case s == titleCase(s):
		return caseTitle
	default:
		return caseVerbatim
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func applyCaseStyle(style caseStyle, s string) string {
	switch style {
	case caseUpper:
		return strings.ToUpper(s)
	case caseLower:
		return strings.ToLower(s)
	case caseTitle:
		return titleCase(s)
	default:
		return s
	}
}
