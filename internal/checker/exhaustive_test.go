package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mell-lang/mell/internal/ast"
)

func TestMissingConstructors(t *testing.T) {
	ctors := []string{"A", "B", "C"}

	tests := []struct {
		name     string
		patterns []ast.Pattern
		want     []string
	}{
		{
			name:     "no arms misses everything",
			patterns: nil,
			want:     []string{"A", "B", "C"},
		},
		{
			name:     "partial coverage",
			patterns: []ast.Pattern{&ast.ConstructorPattern{Name: "A"}, &ast.ConstructorPattern{Name: "B"}},
			want:     []string{"C"},
		},
		{
			name:     "full coverage",
			patterns: []ast.Pattern{&ast.ConstructorPattern{Name: "A"}, &ast.ConstructorPattern{Name: "B"}, &ast.ConstructorPattern{Name: "C"}},
			want:     nil,
		},
		{
			name:     "wildcard covers all",
			patterns: []ast.Pattern{&ast.ConstructorPattern{Name: "A"}, &ast.WildcardPattern{}},
			want:     nil,
		},
		{
			name:     "identifier covers all",
			patterns: []ast.Pattern{&ast.IdentifierPattern{Value: "x"}},
			want:     nil,
		},
		{
			name:     "constructor with sub-patterns still covers its tag",
			patterns: []ast.Pattern{&ast.ConstructorPattern{Name: "A", Args: []ast.Pattern{&ast.WildcardPattern{}}}},
			want:     []string{"B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingConstructors(ctors, tt.patterns))
		})
	}
}
