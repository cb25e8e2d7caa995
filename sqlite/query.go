package sqlite

import "strings"

// selectQuery builds a SELECT with optional filters and paging.
type selectQuery struct {
	sql   strings.Builder
	args  []any
	where bool
}

func newSelect(base string) *selectQuery {
	q := &selectQuery{}
	q.sql.WriteString(base)
	return q
}

// filter adds cond, joined to earlier filters with AND.
func (q *selectQuery) filter(cond string, arg any) {
	if q.where {
		q.sql.WriteString(" AND ")
	} else {
		q.sql.WriteString(" WHERE ")
		q.where = true
	}
	q.sql.WriteString(cond)
	q.args = append(q.args, arg)
}

func (q *selectQuery) orderBy(terms string) {
	q.sql.WriteString(" ORDER BY ")
	q.sql.WriteString(terms)
}

// page limits the result set. Non-positive values leave it unbounded.
func (q *selectQuery) page(limit, offset int) {
	switch {
	case limit > 0:
		q.sql.WriteString(" LIMIT ?")
		q.args = append(q.args, limit)
	case offset > 0:
		// SQLite accepts OFFSET only after a LIMIT.
		q.sql.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		q.sql.WriteString(" OFFSET ?")
		q.args = append(q.args, offset)
	}
}

func (q *selectQuery) String() string { return q.sql.String() }
