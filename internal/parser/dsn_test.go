package parser

import "testing"

func TestDsnDriverModule(t *testing.T) {
	cases := []struct {
		literal string
		want    string
		ok      bool
	}{
		{"postgresql+asyncpg://u:p@h/db", "asyncpg", true},
		{"mysql+aiomysql://u:p@h/db", "aiomysql", true},
		{"postgresql+psycopg2://u:p@h/db", "psycopg2", true},
		{"mssql+pyodbc://u:p@h/db", "pyodbc", true},
		{"mongodb://localhost:27017", "pymongo", true},
		{"redis://localhost:6379/0", "redis", true},
		{"not a dsn at all", "", false},
		{"http://example.com", "", false},
	}
	for _, tc := range cases {
		got, ok := dsnDriverModule(tc.literal)
		if ok != tc.ok || got != tc.want {
			t.Errorf("dsnDriverModule(%q) = (%q, %v), want (%q, %v)", tc.literal, got, ok, tc.want, tc.ok)
		}
	}
}
