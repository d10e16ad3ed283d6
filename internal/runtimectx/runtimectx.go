// Package runtimectx binds a capability grant to the platform's
// runtime: the single point where a dotDSL document's `allow`
// declarations become an enforceable CapabilitySet.
package runtimectx

import (
	"github.com/dotlanth/dotlanth/internal/capability"
	"github.com/dotlanth/dotlanth/internal/dotdsl"
)

// RuntimeContext carries the capability set a host enforces against.
// It is constructed either directly from a CapabilitySet or from a
// validated Document; the document form is the only sanctioned path to
// grants derived from dotDSL source — no defaults are ever implied.
type RuntimeContext struct {
	Capabilities capability.Set
}

// New constructs a RuntimeContext from an explicit capability set.
func New(caps capability.Set) *RuntimeContext {
	return &RuntimeContext{Capabilities: caps}
}

// FromDocument translates a validated Document's capabilities list
// through the capability identifier table. It fails on any identifier
// outside the closed capability set, even one the parser already
// accepted as a bare token — this is the only place grants are
// actually minted.
func FromDocument(doc *dotdsl.Document) (*RuntimeContext, error) {
	ids := make([]string, len(doc.Capabilities))
	for i, c := range doc.Capabilities {
		ids[i] = c.Value
	}

	caps, err := capability.FromIdentifiers(ids)
	if err != nil {
		return nil, err
	}
	return &RuntimeContext{Capabilities: caps}, nil
}
