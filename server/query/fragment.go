// Package query builds the parameterized SQL statements behind the post and
// location listing endpoints: composable filter predicates, the PostGIS
// radius predicate, the nested-JSON projections and deterministic pagination.
package query

import "strings"

// Fragment is one independent, side-effect-free predicate with its bound
// arguments. Fragments are combined with logical AND; zero fragments means an
// unfiltered result set bounded only by pagination.
type Fragment struct {
	SQL  string
	Args []interface{}
}

// joinWhere renders fragments into a WHERE clause, or an empty string when
// there is nothing to filter by.
func joinWhere(frags []Fragment) (string, []interface{}) {
	if len(frags) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(frags))
	var args []interface{}
	for _, f := range frags {
		parts = append(parts, f.SQL)
		args = append(args, f.Args...)
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}
