// Package dotdsl implements the dotDSL front-end: a line-oriented
// recursive-descent parser that produces a fully-spanned Document, and
// a validator that checks it against the platform's semantic rules.
package dotdsl

import "github.com/dotlanth/dotlanth/internal/diagnostics"

// Spanned pairs a parsed value with the source span it was read from.
type Spanned[T any] struct {
	Value T
	Span  diagnostics.Span
}

// Metadata holds the optional app/project identification statements.
// At least one must be set for a document to validate.
type Metadata struct {
	App     *Spanned[string]
	Project *Spanned[string]
}

// Server is the optional `server listen <port>` statement.
type Server struct {
	Port Spanned[uint16]
	Span diagnostics.Span
}

// Response is the `respond <status> "<body>"` statement inside a route.
type Response struct {
	Status Spanned[uint16]
	Body   Spanned[string]
	Span   diagnostics.Span
}

// Route is a `route <VERB> "<path>" ... end` block inside an API.
type Route struct {
	Verb     Spanned[string]
	Path     Spanned[string]
	Response *Response
	Span     diagnostics.Span
}

// API is an `api "<name>" ... end` block.
type API struct {
	Name   Spanned[string]
	Routes []Route
	Span   diagnostics.Span
}

// Document is the spanned AST produced by Parse. Once returned, a
// Document is immutable: string payloads are owned by it, so the
// source buffer does not need to be retained after parsing.
type Document struct {
	Version      *Spanned[string]
	Metadata     Metadata
	Capabilities []Spanned[string]
	Server       *Server
	APIs         []API
}
