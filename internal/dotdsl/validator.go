package dotdsl

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dotlanth/dotlanth/internal/diagnostics"
)

const (
	capabilityLog           = "log"
	capabilityNetHTTPListen = "net.http.listen"
)

var allowedVerbs = map[string]struct{}{
	"GET":    {},
	"POST":   {},
	"PUT":    {},
	"PATCH":  {},
	"DELETE": {},
}

// Validate runs the post-parse semantic checks against doc, accumulating
// every diagnostic it finds instead of stopping at the first (parsing is
// fail-fast; validation is fail-slow). It attributes diagnostics to path
// for the returned LoadError.
func Validate(path string, doc *Document) error {
	var diags []diagnostics.Diagnostic
	fallback := fallbackSpan(doc)

	if doc.Version == nil {
		diags = append(diags, diagnostics.New("version", fallback, "missing required `dot` version directive"))
	} else if doc.Version.Value != "0.1" {
		diags = append(diags, diagnostics.New("version", doc.Version.Span, fmt.Sprintf("unsupported dot version `%s`; expected `0.1`", doc.Version.Value)))
	}

	if doc.Metadata.App == nil && doc.Metadata.Project == nil {
		diags = append(diags, diagnostics.New("metadata", fallback, "missing required metadata; expected `app` or `project`"))
	}

	hasNetHTTPListen := false
	for i, capab := range doc.Capabilities {
		switch capab.Value {
		case capabilityLog:
		case capabilityNetHTTPListen:
			hasNetHTTPListen = true
		default:
			diags = append(diags, diagnostics.New(fmt.Sprintf("capabilities[%d]", i), capab.Span, fmt.Sprintf("unknown capability `%s`", capab.Value)))
		}
	}

	if doc.Server != nil {
		if !hasNetHTTPListen {
			diags = append(diags, diagnostics.New("capabilities", doc.Server.Span, "missing required capability `net.http.listen` for `server listen`"))
		}
		if doc.Server.Port.Value == 0 {
			diags = append(diags, diagnostics.New("server.port", doc.Server.Port.Span, "server port must be in range 1..=65535"))
		}
	}

	if len(doc.APIs) == 0 {
		diags = append(diags, diagnostics.New("apis", fallback, "at least one `api` block is required"))
	}

	for i, api := range doc.APIs {
		if len(api.Routes) == 0 {
			diags = append(diags, diagnostics.New(fmt.Sprintf("apis[%d]", i), api.Span, "api must contain at least one route"))
		}
		for j, route := range api.Routes {
			diags = append(diags, validateRoute(i, j, route)...)
		}
	}

	if len(diags) == 0 {
		return nil
	}
	return diagnostics.NewDiagnosticsError(path, diags)
}

func validateRoute(apiIndex, routeIndex int, route Route) []diagnostics.Diagnostic {
	base := fmt.Sprintf("apis[%d].routes[%d]", apiIndex, routeIndex)
	var diags []diagnostics.Diagnostic

	if _, ok := allowedVerbs[route.Verb.Value]; !ok {
		diags = append(diags, diagnostics.New(base+".verb", route.Verb.Span, fmt.Sprintf("unknown HTTP verb `%s`", route.Verb.Value)))
	}

	switch {
	case !strings.HasPrefix(route.Path.Value, "/"):
		diags = append(diags, diagnostics.New(base+".path", route.Path.Span, "route path must start with `/`"))
	case strings.ContainsFunc(route.Path.Value, unicode.IsSpace):
		diags = append(diags, diagnostics.New(base+".path", route.Path.Span, "route path cannot contain whitespace"))
	}

	if route.Response == nil {
		diags = append(diags, diagnostics.New(base, route.Span, "missing required `respond` statement"))
	} else if route.Response.Status.Value < 100 || route.Response.Status.Value > 599 {
		diags = append(diags, diagnostics.New(base+".response.status", route.Response.Status.Span, "response status must be in range 100..=599"))
	}

	return diags
}

// fallbackSpan is used when the offending node is absent: the span of
// the first available node in priority order (version, metadata.app,
// metadata.project, server, first api), or (1,1,1) if none exist.
func fallbackSpan(doc *Document) diagnostics.Span {
	if doc.Version != nil {
		return doc.Version.Span
	}
	if doc.Metadata.App != nil {
		return doc.Metadata.App.Span
	}
	if doc.Metadata.Project != nil {
		return doc.Metadata.Project.Span
	}
	if doc.Server != nil {
		return doc.Server.Span
	}
	if len(doc.APIs) > 0 {
		return doc.APIs[0].Span
	}
	return diagnostics.NewSpan(1, 1, 1)
}

// LoadAndValidate parses path and validates the resulting document in
// one call, the entry point most callers want.
func LoadAndValidate(path string) (*Document, error) {
	doc, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(path, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
