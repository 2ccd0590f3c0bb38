package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/smartexpense/internal/category"
)

func TestAll_IsOrderedAndCopied(t *testing.T) {
	all := category.All()
	require.Len(t, all, 10)
	assert.Equal(t, "Food & Dining", all[0].Name)
	assert.Equal(t, category.OtherName, all[9].Name)

	all[0].Name = "mutated"
	assert.Equal(t, "Food & Dining", category.All()[0].Name)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantOK   bool
	}{
		{name: "Known", input: "Travel", wantName: "Travel", wantOK: true},
		{name: "Unknown", input: "Groceries", wantName: category.OtherName, wantOK: false},
		{name: "CaseSensitive", input: "travel", wantName: category.OtherName, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := category.Find(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, category.Lookup(tt.input).Name)
		})
	}
}

func TestNames(t *testing.T) {
	names := category.Names()
	require.Len(t, names, len(category.All()))
	assert.Contains(t, names, "Bills & Utilities")
}
