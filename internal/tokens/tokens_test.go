package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"one char", "a", 1},
		{"three chars", "abc", 1},
		{"four chars", "abcd", 1},
		{"five chars", "abcde", 2},
		{"eight chars", "abcdefgh", 2},
		{"long", strings.Repeat("x", 4000), 1000},
		{"long plus one", strings.Repeat("x", 4001), 1001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.in))
		})
	}
}

func TestEstimate_Stable(t *testing.T) {
	s := strings.Repeat("hello world ", 100)
	first := Estimate(s)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Estimate(s))
	}
}
