package succession

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want bool
	}{
		{name: "identical", x: "Sara", y: "Sara", want: true},
		{name: "substring", x: "Sara", y: "Sara Ahmad", want: true},
		{name: "superstring", x: "Sara Ahmad", y: "Sara", want: true},
		{name: "surrounding space", x: "  Sara ", y: "Sara", want: true},
		{name: "different", x: "Sara", y: "Noor", want: false},
		{name: "case sensitive", x: "sara", y: "Sara", want: false},
		{name: "empty matches anything", x: "", y: "Sara", want: true},
		{name: "arabic substring", x: "سارة", y: "سارة أحمد", want: true},
		{name: "name order is not normalised", x: "Ahmad Sara", y: "Sara Ahmad", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesMatch(tt.x, tt.y))
			assert.Equal(t, tt.want, NamesMatch(tt.y, tt.x), "match must be symmetric")
		})
	}
}

func TestAnyNameMatches(t *testing.T) {
	assert.True(t, anyNameMatches("Sara", []string{"Noor", "Sara Ahmad"}))
	assert.False(t, anyNameMatches("Sara", []string{"Noor", "Huda"}))
	assert.False(t, anyNameMatches("Sara", nil))
}
