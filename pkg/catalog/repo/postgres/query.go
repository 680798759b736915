package postgres

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates WHERE clauses with positional parameters.
// Clause formats use %s markers that are replaced with $n placeholders
// in argument order.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) add(format string, args ...interface{}) {
	placeholders := make([]interface{}, len(args))
	for i, arg := range args {
		w.args = append(w.args, arg)
		placeholders[i] = fmt.Sprintf("$%d", len(w.args))
	}
	w.clauses = append(w.clauses, fmt.Sprintf(format, placeholders...))
}

func buildWhere(fn func(*whereBuilder)) (string, []interface{}) {
	w := &whereBuilder{}
	fn(w)
	if len(w.clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(w.clauses, " AND "), w.args
}

func like(s string) string { return "%" + s + "%" }

func limitOffset(argCount, page, limit int) string {
	if limit < 1 {
		return ""
	}
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
}

func appendPaging(args []interface{}, page, limit int) []interface{} {
	if limit < 1 {
		return args
	}
	if page < 1 {
		page = 1
	}
	return append(args, limit, (page-1)*limit)
}
