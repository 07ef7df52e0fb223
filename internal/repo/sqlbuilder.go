package repo

import (
	"fmt"
	"sort"
	"strings"
)

// BuildSetClause turns a map of logical field names to new values into a
// parameterized SQL SET fragment plus the positionally matched argument list.
// colMap translates logical names to column names; names without an entry are
// used as-is. Fields are emitted in sorted logical-name order so the output
// is deterministic. An empty field map returns ErrNoFields: an update that
// changes nothing is a caller bug, not a no-op.
//
//	BuildSetClause(map[string]any{"firstName": "Ana"}, map[string]string{"firstName": "first_name"})
//	=> "first_name = $1", []any{"Ana"}, nil
func BuildSetClause(fields map[string]any, colMap map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, ErrNoFields
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	clauses := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for i, name := range names {
		col := name
		if mapped, ok := colMap[name]; ok {
			col = mapped
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[name])
	}
	return strings.Join(clauses, ", "), args, nil
}
