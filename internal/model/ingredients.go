package model

import "strings"

// IngredientList is an ordered list of ingredient names with no duplicates
// under case-insensitive comparison. The zero value is an empty list.
type IngredientList struct {
	items []string
}

// NewIngredientList builds a list from the given values, skipping blanks and duplicates
func NewIngredientList(values ...string) *IngredientList {
	l := &IngredientList{}
	for _, v := range values {
		l.Add(v)
	}
	return l
}

// Add appends the trimmed ingredient unless it is blank or already present.
// It reports whether the list changed.
func (l *IngredientList) Add(ingredient string) bool {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" || l.Contains(ingredient) {
		return false
	}
	l.items = append(l.items, ingredient)
	return true
}

// Remove deletes the entry equal to ingredient. It reports whether the list changed.
func (l *IngredientList) Remove(ingredient string) bool {
	for i, item := range l.items {
		if item == ingredient {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the ingredient is present, ignoring case
func (l *IngredientList) Contains(ingredient string) bool {
	for _, item := range l.items {
		if strings.EqualFold(item, ingredient) {
			return true
		}
	}
	return false
}

// Len returns the number of ingredients
func (l *IngredientList) Len() int {
	return len(l.items)
}

// Values returns a copy of the ingredients in insertion order
func (l *IngredientList) Values() []string {
	return append([]string(nil), l.items...)
}
