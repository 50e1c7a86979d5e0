package dialect

import "strconv"

// Dialect names.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Supported reports whether statements can be generated for the dialect.
func Supported(name string) bool {
	switch name {
	case Postgres, SQLite:
		return true
	}
	return false
}

// Placeholder returns the n-th (1-based) positional parameter marker.
func Placeholder(name string, n int) string {
	if name == SQLite {
		return "?" + strconv.Itoa(n)
	}
	return "$" + strconv.Itoa(n)
}

// Now returns the expression for the current timestamp.
func Now(name string) string {
	if name == SQLite {
		return "CURRENT_TIMESTAMP"
	}
	return "NOW()"
}

// Cast wraps expr in an explicit type coercion. An empty type returns expr unchanged.
func Cast(expr, typ string) string {
	if typ == "" {
		return expr
	}
	return "CAST(" + expr + " AS " + typ + ")"
}
