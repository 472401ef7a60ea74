package storage

import (
	"strconv"
	"strings"
)

// Dialect smooths over the few SQL differences between backends.
type Dialect interface {
	Name() string
	// Rebind rewrites "?" placeholders into the backend's style.
	Rebind(query string) string
}

type questionDialect struct{}

func (questionDialect) Name() string              { return "sqlite" }
func (questionDialect) Rebind(query string) string { return query }

type dollarDialect struct{}

func (dollarDialect) Name() string { return "postgres" }

func (dollarDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var (
	// SQLite uses "?" placeholders.
	SQLite Dialect = questionDialect{}
	// Postgres uses "$1, $2, ..." placeholders.
	Postgres Dialect = dollarDialect{}
)
