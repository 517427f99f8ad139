package condition

import (
	"fmt"
	"reflect"
)

// Condition is a predicate over a document, plus a human-readable
// explanation of its own result for diagnostics (spec.md §4.1 "explain").
type Condition interface {
	Evaluate(doc any) bool
	Explain(doc any) string
}

// field is the Field(path, not_set) atom: it matches iff the dotted path
// resolves to a value whose nullness equals NotSet.
type field struct {
	Path   string
	NotSet bool
}

// Field builds a condition matching iff the value at path is absent
// (notSet=true) or present (notSet=false). A broken path counts as absent.
func Field(path string, notSet bool) Condition {
	return field{Path: path, NotSet: notSet}
}

func (f field) Evaluate(doc any) bool {
	v, ok := Lookup(doc, f.Path)
	absent := IsAbsent(v, ok)
	return absent == f.NotSet
}

func (f field) Explain(doc any) string {
	got := f.Evaluate(doc)
	verb := "set"
	if f.NotSet {
		verb = "not set"
	}
	return fmt.Sprintf("Field(%s, %s) = %v", f.Path, verb, got)
}

// value is the Value(path, v) atom: it matches iff the dotted path resolves
// to a value equal to V.
type value struct {
	Path string
	V    any
}

// Value builds a condition matching iff the dotted path resolves to v.
func Value(path string, v any) Condition {
	return value{Path: path, V: v}
}

func (c value) Evaluate(doc any) bool {
	got, ok := Lookup(doc, c.Path)
	if !ok {
		return false
	}
	return valuesEqual(got, c.V)
}

func (c value) Explain(doc any) string {
	got, ok := Lookup(doc, c.Path)
	return fmt.Sprintf("Value(%s == %v) got=%v present=%v -> %v", c.Path, c.V, got, ok, c.Evaluate(doc))
}

// valuesEqual compares a resolved document value against the condition's
// expected value, tolerating the mix of string and struct terminals the
// machine's enums produce (e.g. a named PaymentStatus type compared against
// a plain string literal).
func valuesEqual(got, want any) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	gv := reflect.ValueOf(got)
	wv := reflect.ValueOf(want)
	if gv.Kind() == reflect.String && wv.Kind() == reflect.String {
		return gv.String() == wv.String()
	}
	return false
}

// require is the Require(conds...) combinator: it matches iff every child
// condition matches. It composes into itself, i.e. Require(Require(...), ...)
// behaves exactly like flattening the children.
type require struct {
	Conds []Condition
}

// Require builds a condition matching iff every one of conds matches.
func Require(conds ...Condition) Condition {
	return require{Conds: conds}
}

func (r require) Evaluate(doc any) bool {
	for _, c := range r.Conds {
		if !c.Evaluate(doc) {
			return false
		}
	}
	return true
}

func (r require) Explain(doc any) string {
	out := "Require(\n"
	for _, c := range r.Conds {
		out += "  " + c.Explain(doc) + "\n"
	}
	out += ")"
	return out
}
