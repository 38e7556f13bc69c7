package repository

import (
	"fmt"
	"strings"

	"github.com/cadenceapp/cadence/internal/core/domain"
)

// predicates accumulates parameterized WHERE clauses. Dynamic filters
// are always bound through placeholders; user input never reaches the
// SQL text itself.
type predicates struct {
	clauses []string
	args    []any
}

func (p *predicates) add(clause string, value any) {
	p.args = append(p.args, value)
	p.clauses = append(p.clauses, fmt.Sprintf(clause, len(p.args)))
}

// where renders the accumulated clauses, starting from " AND" so the
// caller's query can carry its own fixed conditions first.
func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " AND " + strings.Join(p.clauses, " AND ")
}

// scopePredicates translates an EntryScope into predicates over the
// progress_entries table (aliased e) and its activity join (aliased a).
func scopePredicates(scope domain.EntryScope) *predicates {
	p := &predicates{}

	if scope.UserID != "" {
		p.add("e.user_id = $%d", scope.UserID)
	}
	if scope.ActivityID != "" {
		p.add("e.activity_id = $%d", scope.ActivityID)
	}
	if scope.CategoryID != "" {
		p.add("a.category_id = $%d", scope.CategoryID)
	}
	if scope.GroupID != "" {
		p.add("e.user_id IN (SELECT user_id FROM group_members WHERE group_id = $%d)", scope.GroupID)
	}
	if !scope.From.IsZero() {
		p.add("e.logged_at >= $%d", scope.From)
	}
	if !scope.To.IsZero() {
		p.add("e.logged_at <= $%d", scope.To)
	}

	return p
}
