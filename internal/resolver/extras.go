// # internal/resolver/extras.go
package resolver

// frameworkExtras maps a resolved distribution name to companion packages
// that are conventionally installed alongside it even though nothing
// imports them directly (an ASGI server for fastapi, a WSGI server for
// flask/django, a broker client for celery). Applied after the main
// resolution cascade (fastapi -> ["fastapi", "uvicorn"]).
var frameworkExtras = map[string][]string{
	"fastapi":        {"uvicorn"},
	"flask":          {"gunicorn"},
	"django":         {"gunicorn"},
	"starlette":      {"uvicorn"},
	"quart":          {"hypercorn"},
	"sanic":          {"sanic-testing"},
	"celery":         {"redis"},
	"dramatiq":       {"redis"},
	"sqlalchemy":     {"psycopg2-binary"},
	"django-channels": {"daphne"},
	"passlib":        {"bcrypt"},
}

// applyFrameworkExtras appends each extra companion package for every
// resolved name present in deps, skipping extras already present.
func applyFrameworkExtras(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	result := append([]string(nil), names...)
	for _, n := range names {
		for _, extra := range frameworkExtras[n] {
			if present[extra] {
				continue
			}
			present[extra] = true
			result = append(result, extra)
		}
	}
	return result
}
