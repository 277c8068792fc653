package pgsql

import (
	"fmt"
	"strings"
	"time"
)

// whereClause accumulates positional conditions for dynamically filtered queries.
type whereClause struct {
	conditions []string
	args       []any
}

// addEq adds "column = $n" when value is non-empty.
func (w *whereClause) addEq(column, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

// addContains adds a case-insensitive substring match when value is non-blank.
func (w *whereClause) addContains(column, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	w.args = append(w.args, "%"+value+"%")
	w.conditions = append(w.conditions, fmt.Sprintf("%s ILIKE $%d", column, len(w.args)))
}

// addDateBound adds "column op $n" when t is set. op is one of >= or <=.
func (w *whereClause) addDateBound(column, op string, t time.Time) {
	if t.IsZero() {
		return
	}
	w.args = append(w.args, t)
	w.conditions = append(w.conditions, fmt.Sprintf("%s %s $%d", column, op, len(w.args)))
}

func (w *whereClause) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}
