// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"time"

	"github.com/iancoleman/strcase"

	"github.com/arborgrid/sheetcore/internal/model"
)

// canonicalTags maps the fully-delimited form of every known type tag back
// to its canonical spelling, so "TextBeginsWith", "text_begins_with", and
// "text.beginsWith" all resolve to the same tag.
var canonicalTags = func() map[string]string {
	tags := []string{
		string(textContains), string(textBeginsWith), string(textEndsWith),
		string(textEquals), string(textNotEquals),
		string(numberGT), string(numberGTE), string(numberLT),
		string(numberLTE), string(numberBetween), string(numberEquals),
		string(dateBefore), string(dateAfter), string(dateBetween), string(dateEquals),
		string(nullIsEmpty), string(nullIsNotEmpty),
		string(compositeAnd), string(compositeOr),
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[strcase.ToDelimited(t, '.')] = t
	}
	return m
}()

// NormalizeTag accepts loosely-cased predicate type tags ("TextContains",
// "text_contains") in addition to the canonical dotted form ("text.contains")
// before a Deserialize call, so predicate sets imported from looser external
// formats still round-trip. Unknown tags pass through unchanged.
func NormalizeTag(tag string) string {
	if canonical, ok := canonicalTags[strcase.ToDelimited(tag, '.')]; ok {
		return canonical
	}
	return tag
}

// Deserialize is a total function over the type-tag domain: every known
// tag builds its predicate; anything else returns an UnknownPredicateType
// error.
func Deserialize(sp SerializedPredicate) (Predicate, error) {
	tag := NormalizeTag(sp.Type)
	switch tag {
	case string(textContains):
		return NewTextContains(strParam(sp.Params, "value")), nil
	case string(textBeginsWith):
		return NewTextBeginsWith(strParam(sp.Params, "value")), nil
	case string(textEndsWith):
		return NewTextEndsWith(strParam(sp.Params, "value")), nil
	case string(textEquals):
		return NewTextEquals(strParam(sp.Params, "value")), nil
	case string(textNotEquals):
		return NewTextNotEquals(strParam(sp.Params, "value")), nil

	case string(numberGT):
		return NewNumberGT(floatParam(sp.Params, "value")), nil
	case string(numberGTE):
		return NewNumberGTE(floatParam(sp.Params, "value")), nil
	case string(numberLT):
		return NewNumberLT(floatParam(sp.Params, "value")), nil
	case string(numberLTE):
		return NewNumberLTE(floatParam(sp.Params, "value")), nil
	case string(numberEquals):
		return NewNumberEquals(floatParam(sp.Params, "value")), nil
	case string(numberBetween):
		return NewNumberBetween(floatParam(sp.Params, "min"), floatParam(sp.Params, "max")), nil

	case string(dateBefore):
		return NewDateBefore(timeParam(sp.Params, "at")), nil
	case string(dateAfter):
		return NewDateAfter(timeParam(sp.Params, "at")), nil
	case string(dateEquals):
		return NewDateEquals(timeParam(sp.Params, "at")), nil
	case string(dateBetween):
		return NewDateBetween(timeParam(sp.Params, "min"), timeParam(sp.Params, "max")), nil

	case string(nullIsEmpty):
		return NewNullIsEmpty(), nil
	case string(nullIsNotEmpty):
		return NewNullIsNotEmpty(), nil

	case string(compositeAnd), string(compositeOr):
		children, err := deserializeChildren(sp.Params["children"])
		if err != nil {
			return nil, err
		}
		if tag == string(compositeAnd) {
			return NewAnd(children...)
		}
		return NewOr(children...)

	default:
		return nil, model.UnknownPredicateTypeError(sp.Type)
	}
}

func deserializeChildren(raw any) ([]Predicate, error) {
	switch v := raw.(type) {
	case []SerializedPredicate:
		out := make([]Predicate, len(v))
		for i, c := range v {
			p, err := Deserialize(c)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case []any:
		out := make([]Predicate, 0, len(v))
		for _, raw := range v {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			childType, _ := m["type"].(string)
			childParams, _ := m["params"].(map[string]any)
			p, err := Deserialize(SerializedPredicate{Type: childType, Params: childParams})
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	default:
		return nil, nil
	}
}

func strParam(params map[string]any, key string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return ""
}

func floatParam(params map[string]any, key string) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func timeParam(params map[string]any, key string) time.Time {
	s := strParam(params, key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
