package network

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/neo4j-graph-examples/network-management/internal/types"
)

var paramPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// quotedPattern matches string literals and backtick-quoted identifiers, which may contain '$'.
var quotedPattern = regexp.MustCompile("'(?:[^'\\\\]|\\\\.)*'|\"(?:[^\"\\\\]|\\\\.)*\"|`[^`]*`")

// ReferencedParams returns the sorted, de-duplicated $parameters referenced by cypher.
func ReferencedParams(cypher string) []string {
	stripped := quotedPattern.ReplaceAllString(cypher, "")

	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, match := range paramPattern.FindAllStringSubmatch(stripped, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	sort.Strings(names)
	return names
}

// ValidateQuery checks that every parameter cypher references is bound in params
// and that params binds nothing cypher does not reference.
func ValidateQuery(cypher string, params map[string]any) error {
	referenced := ReferencedParams(cypher)
	used := make(map[string]bool, len(referenced))
	for _, name := range referenced {
		used[name] = true
		if _, ok := params[name]; !ok {
			return types.NewError(ErrCodeUnboundParameter,
				fmt.Sprintf("parameter $%s is referenced but not bound", name))
		}
	}

	unused := make([]string, 0)
	for name := range params {
		if !used[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return types.NewError(ErrCodeUnusedParameter,
			fmt.Sprintf("parameters bound but not referenced: %v", unused))
	}
	return nil
}
