package checker

import (
	"sort"

	"github.com/mell-lang/mell/internal/ast"
)

// MissingConstructors reports which constructors of a sum type no match
// arm covers. A wildcard or bare identifier arm covers everything. A
// constructor arm covers its tag regardless of sub-patterns, since
// sub-pattern refutability is reported on the nested match instead.
func MissingConstructors(ctors []string, patterns []ast.Pattern) []string {
	covered := make(map[string]bool, len(patterns))
	for _, pat := range patterns {
		switch pat := pat.(type) {
		case *ast.WildcardPattern, *ast.IdentifierPattern:
			return nil
		case *ast.ConstructorPattern:
			covered[pat.Name] = true
		}
	}

	var missing []string
	for _, ctor := range ctors {
		if !covered[ctor] {
			missing = append(missing, ctor)
		}
	}
	sort.Strings(missing)
	return missing
}
