package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/dotlanth/dotlanth/internal/capability"
	"github.com/dotlanth/dotlanth/internal/dotdsl"
	"github.com/dotlanth/dotlanth/internal/runevent"
	"github.com/dotlanth/dotlanth/internal/value"
)

// hostListener is the net.Listener configure_http installs. It is
// moved out of the Host while net.http.serve is running so a second,
// concurrent serve call cannot alias it, then restored unconditionally
// when the serve loop returns.
type hostListener struct {
	net.Listener
}

// ConfigureHTTP binds addr and installs routes, ready for a subsequent
// net.http.serve syscall. It returns the bound address (useful when
// addr requests an ephemeral port, e.g. "127.0.0.1:0").
func (h *Host) ConfigureHTTP(addr string, routes map[RouteKey]RouteResponse) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}

	h.mu.Lock()
	h.listener = &hostListener{ln}
	h.routes = routes
	h.mu.Unlock()

	return ln.Addr().String(), nil
}

// ConfigureHTTPFromDocument binds addr and installs the route table
// built from a validated document's apis.
func (h *Host) ConfigureHTTPFromDocument(addr string, doc *dotdsl.Document) (string, error) {
	return h.ConfigureHTTP(addr, BuildRouteTable(doc))
}

func (h *Host) netHTTPServe(args []value.Value) ([]value.Value, error) {
	if err := capability.Check(h.capabilities, capability.NetHTTPServe); err != nil {
		return nil, err
	}

	maxRequests := -1
	switch len(args) {
	case 0:
	case 1:
		n, ok := args[0].AsI64()
		if !ok || n < 0 {
			return nil, errors.New("net.http.serve expects max_requests to be a non-negative integer")
		}
		maxRequests = int(n)
	default:
		return nil, errors.New("net.http.serve expects 0 or 1 argument (max_requests)")
	}

	h.mu.Lock()
	listener := h.listener
	routes := h.routes
	if listener == nil {
		h.mu.Unlock()
		return nil, errors.New("net.http.serve requires an HTTP listener to be configured")
	}
	h.listener = nil
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.listener = listener
		h.mu.Unlock()
	}()

	h.recordBestEffort(runevent.EncodeServerStart(listener.Addr().String()))

	served := 0
	for maxRequests < 0 || served < maxRequests {
		conn, err := listener.Accept()
		if err != nil {
			return nil, err
		}
		if err := h.serveOne(conn, routes); err != nil {
			return nil, err
		}
		served++
	}
	return nil, nil
}

func (h *Host) serveOne(conn net.Conn, routes map[RouteKey]RouteResponse) error {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	requestLine, err := reader.ReadString('\n')
	if err != nil {
		writeResponse(conn, 400, "Bad Request")
		return fmt.Errorf("net.http.serve: failed to read request line: %w", err)
	}

	method, path, err := parseRequestLine(requestLine)
	if err != nil {
		writeResponse(conn, 400, "Bad Request")
		return err
	}

	h.recordBestEffort(runevent.EncodeRequest(method, path))

	resp, ok := routes[RouteKey{Method: method, Path: path}]
	status, body := 404, "Not Found"
	if ok {
		status, body = resp.status, resp.body
	}

	if err := writeResponse(conn, status, body); err != nil {
		return err
	}
	h.recordBestEffort(runevent.EncodeResponse(status))
	return nil
}

func parseRequestLine(line string) (method, path string, err error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return "", "", fmt.Errorf("malformed HTTP request line: %q", line)
	}
	return parts[0], parts[1], nil
}

func writeResponse(w io.Writer, status int, body string) error {
	bodyBytes := []byte(body)
	header := fmt.Sprintf(
		"HTTP/1.1 %d %s\r\nContent-Type: text/plain; charset=utf-8\r\nContent-Length: %d\r\nConnection: close\r\n\r\n",
		status, reasonPhrase(status), len(bodyBytes),
	)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err := w.Write(bodyBytes)
	return err
}

func reasonPhrase(status int) string {
	switch status {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	default:
		return "OK"
	}
}
