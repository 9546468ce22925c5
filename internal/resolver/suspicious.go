// # internal/resolver/suspicious.go
package resolver

// suspiciousNames are generic names overwhelmingly used for local project
// code that also happen to exist as PyPI package names. Applied only
// after the local-module filter; every drop is logged at verbose level
// rather than silently trusted ahead of that filter.
var suspiciousNames = map[string]bool{
	"core": true, "modules": true, "crm": true, "ledgers": true, "config": true,
	"utils": true, "common": true, "tests": true, "test": true, "settings": true,
	"db": true, "database": true, "app": true, "main": true, "base": true,
	"api": true, "infra": true, "lib": true, "libs": true, "helpers": true,
	"models": true, "schemas": true, "services": true, "controllers": true, "routers": true,
	"middleware": true, "plugins": true, "extensions": true, "tasks": true, "jobs": true,
	"views": true, "forms": true, "serializers": true, "signals": true, "admin": true,
	"management": true, "fixtures": true, "migrations": true, "templatetags": true,
	"context_processors": true, "google": true, "azure": true, "amazon": true, "aws": true,
	"setup": true, "manage": true, "server": true, "worker": true, "run": true, "start": true,
}

// IsSuspicious reports whether name is a generic local-code name that
// should be dropped as a fallback heuristic rather than resolved.
func IsSuspicious(name string) bool {
	return suspiciousNames[name]
}
