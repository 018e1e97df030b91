package gateway

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Result is the outcome of a successful route handler invocation. Body is
// serialized to JSON at Status.
type Result struct {
	Status int
	Body   any
}

// Param is a single named path parameter and the literal segment it matched.
type Param struct {
	Name  string
	Value string
}

// Params holds the path parameters of a matched route, in the order they were
// declared in the pattern.
type Params []Param

// Get returns the value of the named parameter, or an empty string.
func (p Params) Get(name string) string {
	for _, param := range p {
		if param.Name == name {
			return param.Value
		}
	}
	return ""
}

// Handler processes a matched request. A nil error means the Result is written
// as-is; a non-nil error is passed through the dispatcher's error boundary.
type Handler func(r *http.Request, params Params) (*Result, error)

// Route describes one dispatchable endpoint: an HTTP method, a path pattern
// with optional :name segments, and the handler to invoke on match.
type Route struct {
	Method  string
	Pattern string
	Handler Handler
}

// compiledRoute is a Route whose pattern has been compiled to a matcher.
type compiledRoute struct {
	Route
	matcher    *regexp.Regexp
	paramNames []string
}

// Table is an immutable, ordered route table. It is built once at startup and
// read concurrently afterwards.
type Table struct {
	routes []compiledRoute
}

// NewTable compiles the given routes into a table. Routes are matched in the
// order given; the first match wins, so overlapping patterns for the same
// method should not be registered. An invalid pattern or a route without a
// handler is a startup error.
func NewTable(routes []Route) (*Table, error) {
	table := &Table{routes: make([]compiledRoute, 0, len(routes))}

	for _, route := range routes {
		if route.Method == "" || route.Pattern == "" {
			return nil, fmt.Errorf("route %q %q: method and pattern are required", route.Method, route.Pattern)
		}
		if route.Handler == nil {
			return nil, fmt.Errorf("route %s %s: handler is required", route.Method, route.Pattern)
		}

		matcher, names, err := compilePattern(route.Pattern)
		if err != nil {
			return nil, fmt.Errorf("route %s %s: %w", route.Method, route.Pattern, err)
		}

		table.routes = append(table.routes, compiledRoute{
			Route:      route,
			matcher:    matcher,
			paramNames: names,
		})
	}

	return table, nil
}

// compilePattern turns a path template into an anchored regexp. Each :name
// segment becomes a capture group matching any run of non-separator
// characters; literal segments are quoted verbatim.
func compilePattern(pattern string) (*regexp.Regexp, []string, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, nil, fmt.Errorf("pattern must start with '/'")
	}

	var names []string
	var expr strings.Builder
	expr.WriteString("^")

	for _, segment := range strings.Split(pattern, "/")[1:] {
		expr.WriteString("/")
		if strings.HasPrefix(segment, ":") {
			name := segment[1:]
			if name == "" {
				return nil, nil, fmt.Errorf("empty parameter name")
			}
			names = append(names, name)
			expr.WriteString("([^/]+)")
			continue
		}
		expr.WriteString(regexp.QuoteMeta(segment))
	}
	expr.WriteString("$")

	matcher, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, nil, err
	}
	return matcher, names, nil
}

// Match returns the first route whose method matches exactly and whose
// pattern matches the full path, with parameter values zipped to declared
// names in order. Matching is case-sensitive and performs no trailing-slash
// or query-string normalization; callers pass only the path component.
func (t *Table) Match(method, path string) (Handler, Params, bool) {
	for _, route := range t.routes {
		if route.Method != method {
			continue
		}
		groups := route.matcher.FindStringSubmatch(path)
		if groups == nil {
			continue
		}

		var params Params
		if len(route.paramNames) > 0 {
			params = make(Params, len(route.paramNames))
			for i, name := range route.paramNames {
				params[i] = Param{Name: name, Value: groups[i+1]}
			}
		}
		return route.Handler, params, true
	}
	return nil, nil, false
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}
