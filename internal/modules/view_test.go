package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/sysmod/internal/model"
)

func TestCombineSkipsBlank(t *testing.T) {
	ms := []model.Module{
		{Content: "   "},
		{Content: "first"},
		{Content: ""},
		{Content: "\n\t"},
		{Content: " second "},
		{Content: "\n"},
	}
	assert.Equal(t, "first\n\n second ", Combine(ms))
}

func TestCombineIgnoresCollapsed(t *testing.T) {
	ms := []model.Module{{Content: "a", Collapsed: true}, {Content: "b"}}
	assert.Equal(t, "a\n\nb", Combine(ms))
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		in   string
		want Summary
	}{
		{"", Summary{}},
		{"   \n", Summary{}},
		{"a", Summary{Chars: 1, Tokens: 1}},
		{"abcd", Summary{Chars: 4, Tokens: 1}},
		{"abcde", Summary{Chars: 5, Tokens: 2}},
		{"  abcdefgh  ", Summary{Chars: 8, Tokens: 2}},
		{"héllo", Summary{Chars: 5, Tokens: 2}},
	}
	for _, tc := range cases {
		got := Summarize(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		if got.Chars == 0 {
			assert.Zero(t, got.Tokens)
		} else {
			assert.Equal(t, (got.Chars+3)/4, got.Tokens)
		}
	}
}

func TestAllCollapsed(t *testing.T) {
	assert.False(t, AllCollapsed(nil))
	assert.False(t, AllCollapsed([]model.Module{{Collapsed: true}, {}}))
	assert.True(t, AllCollapsed([]model.Module{{Collapsed: true}, {Collapsed: true}}))
}
