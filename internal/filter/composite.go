// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"strings"

	"github.com/arborgrid/sheetcore/internal/model"
)

type compositeOp string

const (
	compositeAnd compositeOp = "composite.and"
	compositeOr  compositeOp = "composite.or"
)

// compositePredicate requires a non-empty child list; construction fails
// otherwise. AND short-circuits on the first false, OR on
// the first true. Nesting to arbitrary depth is permitted.
type compositePredicate struct {
	op       compositeOp
	children []Predicate
}

// NewAnd builds a composite.and predicate. It errors if children is empty.
func NewAnd(children ...Predicate) (Predicate, error) {
	return newComposite(compositeAnd, children)
}

// NewOr builds a composite.or predicate. It errors if children is empty.
func NewOr(children ...Predicate) (Predicate, error) {
	return newComposite(compositeOr, children)
}

func newComposite(op compositeOp, children []Predicate) (Predicate, error) {
	if len(children) == 0 {
		return nil, model.EmptyCompositeError()
	}
	return &compositePredicate{op: op, children: children}, nil
}

func (p *compositePredicate) Test(v model.CellValue) bool {
	switch p.op {
	case compositeAnd:
		for _, c := range p.children {
			if !c.Test(v) {
				return false
			}
		}
		return true
	case compositeOr:
		for _, c := range p.children {
			if c.Test(v) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (p *compositePredicate) Type() string { return string(p.op) }

func (p *compositePredicate) Description() string {
	descs := make([]string, len(p.children))
	for i, c := range p.children {
		descs[i] = c.Description()
	}
	joiner := " and "
	if p.op == compositeOr {
		joiner = " or "
	}
	return "(" + strings.Join(descs, joiner) + ")"
}

func (p *compositePredicate) Serialize() SerializedPredicate {
	children := make([]SerializedPredicate, len(p.children))
	for i, c := range p.children {
		children[i] = c.Serialize()
	}
	return SerializedPredicate{Type: string(p.op), Params: map[string]any{"children": children}}
}
