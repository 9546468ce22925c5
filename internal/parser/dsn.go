// # internal/parser/dsn.go
package parser

import "regexp"

// dsnRe matches data-source-name connection strings. The capture group is
// the "+driver" sub-scheme, if the literal spells one out explicitly
// (e.g. "postgresql+asyncpg://").
var dsnRe = regexp.MustCompile(`^(postgresql|postgres|mysql|sqlite|mongodb|redis|oracle|mssql)(?:\+([a-z_]+))?://`)

// dsnDefaultDriver maps a bare scheme (no explicit "+driver" suffix) to a
// conservative default driver module: unknown schemes never get a guessed
// driver, only the ones listed here.
var dsnDefaultDriver = map[string]string{
	"postgresql": "psycopg2",
	"postgres":   "psycopg2",
	"mysql":      "pymysql",
	"mongodb":    "pymongo",
	"redis":      "redis",
	"oracle":     "cx_Oracle",
	"mssql":      "pyodbc",
	"sqlite":     "sqlite3",
}

// dsnDriverModule inspects a string literal and, if it looks like a DSN,
// returns the module name it implies along with true. sqlite3 is the
// standard-library sqlite driver and is filtered out downstream by the
// stdlib filter like any other stdlib name.
func dsnDriverModule(literal string) (string, bool) {
	m := dsnRe.FindStringSubmatch(literal)
	if m == nil {
		return "", false
	}
	scheme, driver := m[1], m[2]
	if driver != "" {
		return driver, true
	}
	if def, ok := dsnDefaultDriver[scheme]; ok {
		return def, true
	}
	return "", false
}
