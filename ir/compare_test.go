package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type Ranking: String < Number < Macro
		{"String < Number", StringNode("z"), NumberNode("1"), -1},
		{"Number < Macro", NumberNode("9"), MustMacroNode("a"), -1},
		{"String < Macro", StringNode("z"), MustMacroNode("a"), -1},

		{"String < String", StringNode("a"), StringNode("b"), -1},
		{"String case", StringNode("A"), StringNode("a"), -1},
		{"Number < Number", NumberNode("1"), NumberNode("2"), -1},
		{"Number text", NumberNode("10"), NumberNode("9"), -1},
		{"Macro < Macro", MustMacroNode("a"), MustMacroNode("b"), -1},
		{"Macro folded", MustMacroNode("Jan"), MustMacroNode("jAN"), 0},
		{"nil", nil, StringNode(""), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			// Test symmetry
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestNodeEqual(t *testing.T) {
	if !MustMacroNode("Jan").Equal(MustMacroNode("JAN")) {
		t.Error("macro names are case-insensitive")
	}
	if StringNode("Jan").Equal(StringNode("JAN")) {
		t.Error("literal text is case sensitive")
	}
	if StringNode("1").Equal(NumberNode("1")) {
		t.Error("variants differ")
	}
}
