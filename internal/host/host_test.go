package host

import (
	"bytes"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotlanth/dotlanth/internal/capability"
	"github.com/dotlanth/dotlanth/internal/dotdsl"
	"github.com/dotlanth/dotlanth/internal/store"
	"github.com/dotlanth/dotlanth/internal/value"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "runs.json"))
	require.NoError(t, err)
	return s
}

func TestLogEmitDeniedWithoutCapability(t *testing.T) {
	s := openStore(t)
	h, err := New(capability.Empty(), s)
	require.NoError(t, err)

	_, err = h.Syscall(1, []value.Value{value.NewStr("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capability denied: syscall `log.emit`")
	assert.Contains(t, err.Error(), "allow log")
}

func TestLogEmitWritesStdoutAndEventLog(t *testing.T) {
	s := openStore(t)
	caps := capability.Empty().Grant(capability.Log)
	h, err := New(caps, s)
	require.NoError(t, err)

	var out bytes.Buffer
	h.SetStdout(&out)

	_, err = h.Syscall(1, []value.Value{value.NewStr("hello there")})
	require.NoError(t, err)
	assert.Equal(t, "hello there\n", out.String())

	lines, err := s.RunLogs(h.RunID())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, `{"type":"log","message":"hello there"}`, lines[0].Line)
}

func TestLogEmitWrongArgCount(t *testing.T) {
	s := openStore(t)
	h, err := New(capability.Empty().Grant(capability.Log), s)
	require.NoError(t, err)

	_, err = h.Syscall(1, nil)
	require.Error(t, err)
	assert.Equal(t, "log.emit expects 1 string argument", err.Error())

	_, err = h.Syscall(1, []value.Value{value.NewI64(1)})
	require.Error(t, err)
	assert.Equal(t, "log.emit expects 1 string argument", err.Error())
}

func TestLogEmitPassthroughSuppressesEventLog(t *testing.T) {
	s := openStore(t)
	h, err := New(capability.Empty().Grant(capability.Log), s)
	require.NoError(t, err)
	h.SetStdout(&bytes.Buffer{})
	h.SetRecordMode(Passthrough)

	_, err = h.Syscall(1, []value.Value{value.NewStr("quiet")})
	require.NoError(t, err)

	lines, err := s.RunLogs(h.RunID())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestNetHTTPServeDeniedWithoutCapability(t *testing.T) {
	s := openStore(t)
	h, err := New(capability.Empty(), s)
	require.NoError(t, err)

	_, err = h.Syscall(2, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capability denied: syscall `net.http.serve`")
}

func TestNetHTTPServeRequiresConfiguredListener(t *testing.T) {
	s := openStore(t)
	h, err := New(capability.Empty().Grant(capability.NetHttpListen), s)
	require.NoError(t, err)

	_, err = h.Syscall(2, []value.Value{value.NewI64(1)})
	require.Error(t, err)
	assert.Equal(t, "net.http.serve requires an HTTP listener to be configured", err.Error())
}

func TestNetHTTPServeRejectsBadArgs(t *testing.T) {
	s := openStore(t)
	h, err := New(capability.Empty().Grant(capability.NetHttpListen), s)
	require.NoError(t, err)

	_, err = h.Syscall(2, []value.Value{value.NewI64(1), value.NewI64(2)})
	require.Error(t, err)
	assert.Equal(t, "net.http.serve expects 0 or 1 argument (max_requests)", err.Error())

	_, err = h.Syscall(2, []value.Value{value.NewI64(-1)})
	require.Error(t, err)
	assert.Equal(t, "net.http.serve expects max_requests to be a non-negative integer", err.Error())
}

func TestNetHTTPServeHappyPath(t *testing.T) {
	s := openStore(t)
	caps := capability.Empty().Grant(capability.NetHttpListen)
	h, err := New(caps, s)
	require.NoError(t, err)

	addr, err := h.ConfigureHTTP("127.0.0.1:0", map[RouteKey]RouteResponse{
		{Method: "GET", Path: "/hello"}: {status: 200, body: "hello world"},
	})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, serveErr := h.Syscall(2, []value.Value{value.NewI64(1)})
		errCh <- serveErr
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/hello", addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))

	require.NoError(t, <-errCh)

	lines, err := s.RunLogs(h.RunID())
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0].Line, `"type":"http.server_start"`)
	assert.Contains(t, lines[0].Line, addr)
	assert.Equal(t, `{"type":"http.request","method":"GET","path":"/hello"}`, lines[1].Line)
	assert.Equal(t, `{"type":"http.response","status":200}`, lines[2].Line)
	for _, l := range lines {
		assert.NotContains(t, l.Line, "hello world")
	}
}

func TestNetHTTPServeUnmatchedRouteReturns404(t *testing.T) {
	s := openStore(t)
	caps := capability.Empty().Grant(capability.NetHttpListen)
	h, err := New(caps, s)
	require.NoError(t, err)

	addr, err := h.ConfigureHTTP("127.0.0.1:0", map[RouteKey]RouteResponse{})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, serveErr := h.Syscall(2, []value.Value{value.NewI64(1)})
		errCh <- serveErr
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/missing", addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
	require.NoError(t, <-errCh)
}

func TestConfigureHTTPFromDocumentBuildsRouteTable(t *testing.T) {
	s := openStore(t)
	caps := capability.Empty().Grant(capability.NetHttpListen)
	h, err := New(caps, s)
	require.NoError(t, err)

	src := "dot 0.1\n" +
		"app \"demo\"\n" +
		"project \"demo\"\n" +
		"allow net.http.listen\n" +
		"server listen 8080\n" +
		"api \"greeter\"\n" +
		"  route GET \"/hello\"\n" +
		"    respond 200 \"hi\"\n" +
		"  end\n" +
		"end\n"
	doc, err := dotdsl.ParseSource("f.dot", src)
	require.NoError(t, err)

	addr, err := h.ConfigureHTTPFromDocument("127.0.0.1:0", doc)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, serveErr := h.Syscall(2, []value.Value{value.NewI64(1)})
		errCh <- serveErr
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/hello", addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	require.NoError(t, <-errCh)
}

func TestParseRequestLine(t *testing.T) {
	method, path, err := parseRequestLine("GET /hello HTTP/1.1\r\n")
	require.NoError(t, err)
	assert.Equal(t, "GET", method)
	assert.Equal(t, "/hello", path)

	_, _, err = parseRequestLine("malformed\r\n")
	require.Error(t, err)
}

func TestWriteResponseFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResponse(&buf, 200, "ok"))
	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "HTTP/1.1 200 OK\r\n"))
	assert.Contains(t, text, "Content-Type: text/plain; charset=utf-8\r\n")
	assert.Contains(t, text, "Content-Length: 2\r\n")
	assert.Contains(t, text, "Connection: close\r\n")
	assert.True(t, strings.HasSuffix(text, "\r\n\r\nok"))
}

func TestListenerRestoredAfterServe(t *testing.T) {
	s := openStore(t)
	caps := capability.Empty().Grant(capability.NetHttpListen)
	h, err := New(caps, s)
	require.NoError(t, err)

	_, err = h.ConfigureHTTP("127.0.0.1:0", map[RouteKey]RouteResponse{})
	require.NoError(t, err)

	_, err = h.Syscall(2, []value.Value{value.NewI64(0)})
	require.NoError(t, err)

	h.mu.Lock()
	listener := h.listener
	h.mu.Unlock()
	require.NotNil(t, listener)

	_, err = net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
}
