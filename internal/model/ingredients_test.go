package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngredientListAdd(t *testing.T) {
	l := NewIngredientList()

	assert.True(t, l.Add("Chicken"))
	assert.True(t, l.Add("  rice  "))
	assert.False(t, l.Add("chicken"), "case-insensitive duplicate")
	assert.False(t, l.Add("RICE"))
	assert.False(t, l.Add("   "), "blank input")

	assert.Equal(t, []string{"Chicken", "rice"}, l.Values())
}

func TestIngredientListRemove(t *testing.T) {
	l := NewIngredientList("tomato", "basil", "garlic")

	assert.False(t, l.Remove("onion"))
	assert.Equal(t, 3, l.Len())

	assert.True(t, l.Remove("basil"))
	assert.Equal(t, []string{"tomato", "garlic"}, l.Values())
}

func TestIngredientListValuesIsCopy(t *testing.T) {
	l := NewIngredientList("egg", "flour")
	values := l.Values()
	values[0] = "milk"

	assert.Equal(t, []string{"egg", "flour"}, l.Values())
}

func TestZeroValueIngredientList(t *testing.T) {
	var l IngredientList
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Contains("egg"))
	assert.True(t, l.Add("egg"))
	assert.True(t, l.Contains("EGG"))
}
