package types

import (
	"errors"
	"strings"
)

// ErrUnknownCategory is returned when a category name is not one of the supported kinds.
var ErrUnknownCategory = errors.New("unknown category")

// Category is the content kind that drives which form fields and template apply.
type Category string

const (
	CategoryText  Category = "TEXTO"
	CategoryImage Category = "IMAGEN"
	CategoryVideo Category = "VIDEO"
	CategorySound Category = "SONIDO"
	CategoryCode  Category = "CODIGO"
)

// Categories returns every supported category in tab order.
func Categories() []Category {
	return []Category{CategoryText, CategoryImage, CategoryVideo, CategorySound, CategoryCode}
}

// ParseCategory resolves a wire name (case-insensitive) to a Category.
func ParseCategory(s string) (Category, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Categories() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// InputKind describes how a field is edited.
type InputKind string

const (
	KindInput    InputKind = "input"    // single line
	KindTextarea InputKind = "textarea" // multi line
	KindSelect   InputKind = "select"   // enumerated choice
)

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldSpec describes one form field of a category.
type FieldSpec struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	Placeholder  string    `json:"placeholder"`
	Kind         InputKind `json:"type"`
	DefaultValue string    `json:"defaultValue,omitempty"`
	Options      []Option  `json:"options,omitempty"`
}

// FormValues maps field identifiers to the user's input.
type FormValues map[string]string

// Get returns the value for id, or "" when missing.
func (v FormValues) Get(id string) string {
	if v == nil {
		return ""
	}
	return v[id]
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// SavedResult is a stored snapshot of one completed generation cycle.
type SavedResult struct {
	ID       string     `json:"id"`
	Category Category   `json:"type"`
	FormData FormValues `json:"formData"`
	Prompt   string     `json:"prompt"`
}

// SavedResultList is ordered newest first.
type SavedResultList []SavedResult

// Prepend returns a new list with r at the front.
func (l SavedResultList) Prepend(r SavedResult) SavedResultList {
	out := make(SavedResultList, 0, len(l)+1)
	out = append(out, r)
	return append(out, l...)
}

// Remove returns a new list without the entry whose ID is id.
// The relative order of the remaining entries is preserved.
func (l SavedResultList) Remove(id string) (SavedResultList, bool) {
	out := make(SavedResultList, 0, len(l))
	removed := false
	for _, r := range l {
		if !removed && r.ID == id {
			removed = true
			continue
		}
		out = append(out, r)
	}
	return out, removed
}

// Find returns the entry with the given ID.
func (l SavedResultList) Find(id string) (SavedResult, bool) {
	for _, r := range l {
		if r.ID == id {
			return r, true
		}
	}
	return SavedResult{}, false
}
