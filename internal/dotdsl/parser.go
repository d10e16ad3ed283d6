package dotdsl

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dotlanth/dotlanth/internal/diagnostics"
)

type frameKind int

const (
	frameTop frameKind = iota
	frameAPI
	frameRoute
)

// frame is one level of the parser's three-state context stack: top
// level, inside an `api` block, or inside a `route` block.
type frame struct {
	kind       frameKind
	apiIndex   int
	routeIndex int
}

type parser struct {
	path  string
	doc   *Document
	stack []frame
}

// Parse reads a dotDSL source file and produces a fully-spanned
// Document, or a single-diagnostic LoadError on the first malformed
// statement (parsing is fail-fast; see Validate for fail-slow checks).
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostics.NewIOError(path, err)
	}
	return ParseSource(path, string(data))
}

// ParseSource parses already-loaded source text, attributing
// diagnostics to path without touching the filesystem.
func ParseSource(path, source string) (*Document, error) {
	p := &parser{path: path, doc: &Document{}, stack: []frame{{kind: frameTop}}}

	lines := strings.Split(source, "\n")
	lastLine := len(lines)
	if lastLine > 0 && lines[lastLine-1] == "" {
		lastLine--
	}

	for i := 0; i < lastLine; i++ {
		if err := p.parseLine(i+1, lines[i]); err != nil {
			return nil, err
		}
	}

	if len(p.stack) > 1 {
		top := p.stack[len(p.stack)-1]
		var path string
		switch top.kind {
		case frameAPI:
			path = fmt.Sprintf("apis[%d]", top.apiIndex)
		case frameRoute:
			path = fmt.Sprintf("apis[%d].routes[%d]", top.apiIndex, top.routeIndex)
		}
		return nil, p.diagErr(path, diagnostics.NewSpan(lastLine+1, 1, 1), "unclosed block; expected `end`")
	}

	return p.doc, nil
}

func (p *parser) push(f frame) { p.stack = append(p.stack, f) }
func (p *parser) pop()         { p.stack = p.stack[:len(p.stack)-1] }

func (p *parser) diagErr(path string, span diagnostics.Span, message string) error {
	return diagnostics.NewDiagnosticsError(p.path, []diagnostics.Diagnostic{diagnostics.New(path, span, message)})
}

// requireEOL consumes trailing whitespace and fails if anything but
// whitespace remains on the statement.
func (p *parser) requireEOL(line int, path string, cur *cursor, context string) error {
	cur.skipSpaces()
	if !cur.empty() {
		return p.diagErr(path, diagnostics.NewSpan(line, cur.column, len(cur.text)), fmt.Sprintf("unexpected trailing content after %s", context))
	}
	return nil
}

func (p *parser) parseLine(line int, raw string) error {
	leadingLen := len(raw) - len(strings.TrimLeft(raw, " \t"))
	content := strings.TrimRight(raw[leadingLen:], " \t\r")
	if content == "" || strings.HasPrefix(content, "#") {
		return nil
	}

	column := leadingLen + 1
	cur := &cursor{text: content, column: column}
	fullSpan := diagnostics.NewSpan(line, column, len(content))
	keyword, kwSpan := cur.takeWord(line)

	f := p.stack[len(p.stack)-1]
	switch f.kind {
	case frameAPI:
		return p.dispatchAPI(line, keyword, kwSpan, fullSpan, cur, f)
	case frameRoute:
		return p.dispatchRoute(line, keyword, kwSpan, fullSpan, cur, f)
	default:
		return p.dispatchTop(line, keyword, kwSpan, fullSpan, cur)
	}
}

func (p *parser) dispatchTop(line int, keyword string, kwSpan, fullSpan diagnostics.Span, cur *cursor) error {
	switch keyword {
	case "dot":
		return p.parseDot(line, fullSpan, cur)
	case "app":
		return p.parseMetadataStmt(line, "app", fullSpan, cur)
	case "project":
		return p.parseMetadataStmt(line, "project", fullSpan, cur)
	case "allow":
		return p.parseAllow(line, cur)
	case "server":
		return p.parseServer(line, fullSpan, cur)
	case "api":
		return p.parseAPIOpen(line, fullSpan, cur)
	case "end":
		return p.parseEnd(line, kwSpan, cur)
	default:
		return p.diagErr("root", fullSpan, fmt.Sprintf("unknown statement `%s`", keyword))
	}
}

func (p *parser) dispatchAPI(line int, keyword string, kwSpan, fullSpan diagnostics.Span, cur *cursor, f frame) error {
	switch keyword {
	case "route":
		return p.parseRouteOpen(line, fullSpan, cur, f.apiIndex)
	case "end":
		return p.parseEnd(line, kwSpan, cur)
	default:
		return p.diagErr(fmt.Sprintf("apis[%d]", f.apiIndex), fullSpan, fmt.Sprintf("unknown statement `%s`", keyword))
	}
}

func (p *parser) dispatchRoute(line int, keyword string, kwSpan, fullSpan diagnostics.Span, cur *cursor, f frame) error {
	switch keyword {
	case "respond":
		return p.parseRespond(line, fullSpan, cur, f.apiIndex, f.routeIndex)
	case "end":
		return p.parseEnd(line, kwSpan, cur)
	default:
		return p.diagErr(fmt.Sprintf("apis[%d].routes[%d]", f.apiIndex, f.routeIndex), fullSpan, fmt.Sprintf("unknown statement `%s`", keyword))
	}
}

func (p *parser) parseDot(line int, fullSpan diagnostics.Span, cur *cursor) error {
	if p.doc.Version != nil {
		return p.diagErr("root", fullSpan, "duplicate `dot` version directive")
	}
	cur.skipSpaces()
	tok, span := cur.takeWord(line)
	if tok == "" {
		return p.diagErr("version", span, "missing dot version token")
	}
	if err := p.requireEOL(line, "version", cur, "dot"); err != nil {
		return err
	}
	p.doc.Version = &Spanned[string]{Value: tok, Span: span}
	return nil
}

func (p *parser) parseMetadataStmt(line int, field string, fullSpan diagnostics.Span, cur *cursor) error {
	if field == "app" && p.doc.Metadata.App != nil {
		return p.diagErr("root", fullSpan, "duplicate `app` metadata directive")
	}
	if field == "project" && p.doc.Metadata.Project != nil {
		return p.diagErr("root", fullSpan, "duplicate `project` metadata directive")
	}

	cur.skipSpaces()
	val, span, err := cur.quotedString(line)
	if err != nil {
		return p.diagErr("metadata."+field, span, err.Error())
	}
	if err := p.requireEOL(line, "metadata."+field, cur, field); err != nil {
		return err
	}

	sp := &Spanned[string]{Value: val, Span: span}
	switch field {
	case "app":
		p.doc.Metadata.App = sp
	case "project":
		p.doc.Metadata.Project = sp
	}
	return nil
}

func (p *parser) parseAllow(line int, cur *cursor) error {
	cur.skipSpaces()
	tok, span := cur.takeWord(line)
	if tok == "" {
		return p.diagErr("capabilities", span, "missing capability token")
	}
	if err := p.requireEOL(line, "capabilities", cur, "allow"); err != nil {
		return err
	}
	p.doc.Capabilities = append(p.doc.Capabilities, Spanned[string]{Value: tok, Span: span})
	return nil
}

func (p *parser) parseServer(line int, fullSpan diagnostics.Span, cur *cursor) error {
	if p.doc.Server != nil {
		return p.diagErr("root", fullSpan, "duplicate `server` directive")
	}
	cur.skipSpaces()
	kw, kwSpan := cur.takeWord(line)
	if kw == "" {
		return p.diagErr("server", kwSpan, "missing `listen` keyword")
	}
	if kw != "listen" {
		return p.diagErr("server", kwSpan, fmt.Sprintf("expected `listen`, got `%s`", kw))
	}

	cur.skipSpaces()
	tok, span := cur.takeWord(line)
	if tok == "" {
		return p.diagErr("server.port", span, "missing server port")
	}
	if err := p.requireEOL(line, "server.port", cur, "server listen"); err != nil {
		return err
	}

	port, convErr := strconv.ParseUint(tok, 10, 16)
	if convErr != nil {
		return p.diagErr("server.port", span, fmt.Sprintf("expected a valid port number, got `%s`", tok))
	}
	p.doc.Server = &Server{Port: Spanned[uint16]{Value: uint16(port), Span: span}, Span: fullSpan}
	return nil
}

func (p *parser) parseAPIOpen(line int, fullSpan diagnostics.Span, cur *cursor) error {
	cur.skipSpaces()
	name, span, err := cur.quotedString(line)
	if err != nil {
		return p.diagErr("apis", span, err.Error())
	}
	if err := p.requireEOL(line, "apis", cur, "api"); err != nil {
		return err
	}

	idx := len(p.doc.APIs)
	p.doc.APIs = append(p.doc.APIs, API{Name: Spanned[string]{Value: name, Span: span}, Span: fullSpan})
	p.push(frame{kind: frameAPI, apiIndex: idx})
	return nil
}

func (p *parser) parseRouteOpen(line int, fullSpan diagnostics.Span, cur *cursor, apiIndex int) error {
	base := fmt.Sprintf("apis[%d].routes", apiIndex)

	cur.skipSpaces()
	verb, verbSpan := cur.takeWord(line)
	if verb == "" {
		return p.diagErr(base, verbSpan, "missing HTTP verb")
	}

	cur.skipSpaces()
	path, pathSpan, err := cur.quotedString(line)
	if err != nil {
		return p.diagErr(base, pathSpan, err.Error())
	}
	if err := p.requireEOL(line, base, cur, "route"); err != nil {
		return err
	}

	routeIdx := len(p.doc.APIs[apiIndex].Routes)
	p.doc.APIs[apiIndex].Routes = append(p.doc.APIs[apiIndex].Routes, Route{
		Verb: Spanned[string]{Value: verb, Span: verbSpan},
		Path: Spanned[string]{Value: path, Span: pathSpan},
		Span: fullSpan,
	})
	p.push(frame{kind: frameRoute, apiIndex: apiIndex, routeIndex: routeIdx})
	return nil
}

func (p *parser) parseRespond(line int, fullSpan diagnostics.Span, cur *cursor, apiIndex, routeIndex int) error {
	base := fmt.Sprintf("apis[%d].routes[%d].response", apiIndex, routeIndex)
	route := &p.doc.APIs[apiIndex].Routes[routeIndex]
	if route.Response != nil {
		return p.diagErr(base, fullSpan, "duplicate `respond` statement")
	}

	cur.skipSpaces()
	statusTok, statusSpan := cur.takeWord(line)
	if statusTok == "" {
		return p.diagErr(base+".status", statusSpan, "missing response status")
	}

	cur.skipSpaces()
	body, bodySpan, err := cur.quotedString(line)
	if err != nil {
		return p.diagErr(base+".body", bodySpan, err.Error())
	}
	if err := p.requireEOL(line, base, cur, "respond"); err != nil {
		return err
	}

	status, convErr := strconv.ParseUint(statusTok, 10, 16)
	if convErr != nil {
		return p.diagErr(base+".status", statusSpan, fmt.Sprintf("expected a valid status code, got `%s`", statusTok))
	}

	route.Response = &Response{
		Status: Spanned[uint16]{Value: uint16(status), Span: statusSpan},
		Body:   Spanned[string]{Value: body, Span: bodySpan},
		Span:   fullSpan,
	}
	return nil
}

func (p *parser) parseEnd(line int, kwSpan diagnostics.Span, cur *cursor) error {
	if len(p.stack) <= 1 {
		return p.diagErr("root", kwSpan, "unexpected `end` at top level")
	}
	if err := p.requireEOL(line, "root", cur, "end"); err != nil {
		return err
	}
	p.pop()
	return nil
}
