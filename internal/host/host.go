// Package host implements the capability-gated syscall host: the
// policy layer that turns a granted CapabilitySet into enforcement
// around the platform's two side effects, `log.emit` and
// `net.http.serve`, and writes their structured event log into the
// run store.
package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dotlanth/dotlanth/internal/capability"
	"github.com/dotlanth/dotlanth/internal/dotdsl"
	"github.com/dotlanth/dotlanth/internal/runevent"
	"github.com/dotlanth/dotlanth/internal/store"
	"github.com/dotlanth/dotlanth/internal/value"
)

// Syscall ids the VM dispatches against this host.
const (
	syscallLogEmit      = 1
	syscallNetHTTPServe = 2
)

// RecordMode controls whether the host writes events to the run log.
type RecordMode int

const (
	// Record writes every log.emit and HTTP lifecycle event to the run log.
	Record RecordMode = iota
	// Passthrough suppresses event log appends without altering any
	// other behaviour.
	Passthrough
)

// RouteKey identifies a route by exact method and path match.
type RouteKey struct {
	Method string
	Path   string
}

type RouteResponse struct {
	status int
	body   string
}

// Host implements the VM's Host interface over the platform's
// capability set, run store, and (optionally) an HTTP listener. It
// exclusively owns the run-store connection, the HTTP listener once
// configured, and the stdout sink.
type Host struct {
	capabilities capability.Set
	store        *store.Store
	runID        string

	mu     sync.Mutex
	mode   RecordMode
	stdout io.Writer

	listener *hostListener
	routes   map[RouteKey]RouteResponse
}

// New constructs a Host bound to caps and an open run store, creating a
// new run in status `running`. Default record mode is Record; the
// stdout sink defaults to os.Stdout.
func New(caps capability.Set, st *store.Store) (*Host, error) {
	run, err := st.CreateRun()
	if err != nil {
		return nil, err
	}
	return &Host{
		capabilities: caps,
		store:        st,
		runID:        run.ID,
		mode:         Record,
		stdout:       os.Stdout,
	}, nil
}

// RunID returns the id of the run this host is recording into.
func (h *Host) RunID() string { return h.runID }

// SetStdout swaps the writer log.emit writes to, for test doubles.
func (h *Host) SetStdout(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stdout = w
}

// SetRecordMode switches between Record and Passthrough.
func (h *Host) SetRecordMode(mode RecordMode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = mode
}

// Syscall implements vm.Host.
func (h *Host) Syscall(id int, args []value.Value) ([]value.Value, error) {
	switch id {
	case syscallLogEmit:
		return h.logEmit(args)
	case syscallNetHTTPServe:
		return h.netHTTPServe(args)
	default:
		return nil, fmt.Errorf("unknown syscall id: %d", id)
	}
}

func (h *Host) logEmit(args []value.Value) ([]value.Value, error) {
	if err := capability.Check(h.capabilities, capability.LogEmit); err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, errors.New("log.emit expects 1 string argument")
	}
	message, ok := args[0].AsStr()
	if !ok {
		return nil, errors.New("log.emit expects 1 string argument")
	}

	h.mu.Lock()
	stdout := h.stdout
	h.mu.Unlock()
	if _, err := fmt.Fprintln(stdout, message); err != nil {
		return nil, err
	}

	if h.recording() {
		if err := h.store.AppendLog(h.runID, runevent.EncodeLog(message)); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (h *Host) recording() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mode == Record
}

// recordBestEffort appends an HTTP lifecycle event, swallowing store
// errors: lifecycle recording is best-effort, unlike log.emit's
// primary recording which surfaces them.
func (h *Host) recordBestEffort(line string) {
	if !h.recording() {
		return
	}
	_ = h.store.AppendLog(h.runID, line)
}

// BuildRouteTable constructs the exact-match route table a validated
// document describes: one entry per route with a response, keyed by
// its verb and path.
func BuildRouteTable(doc *dotdsl.Document) map[RouteKey]RouteResponse {
	table := make(map[RouteKey]RouteResponse)
	for _, api := range doc.APIs {
		for _, route := range api.Routes {
			if route.Response == nil {
				continue
			}
			table[RouteKey{Method: route.Verb.Value, Path: route.Path.Value}] = RouteResponse{
				status: int(route.Response.Status.Value),
				body:   route.Response.Body.Value,
			}
		}
	}
	return table
}
