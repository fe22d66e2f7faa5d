package threeds

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
	"github.com/bnema/roombook-cli/internal/ports"
)

var ErrReturnTimeout = errors.New("timed out waiting for the 3ds return")

var challengePage = template.Must(template.New("challenge").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Card authentication</title></head>
<body onload="document.forms[0].submit()">
<form method="{{.Method}}" action="{{.ActionURL}}">
{{range $name, $value := .Fields}}<input type="hidden" name="{{$name}}" value="{{$value}}">
{{end}}<noscript><button type="submit">Continue to your bank</button></noscript>
</form>
</body>
</html>
`))

// Server is the local endpoint of a 3DS round trip. It serves the auto-submitting
// form that posts the browser to the bank and receives the bank's return redirect.
type Server struct {
	listener net.Listener
	server   *http.Server
	out      io.Writer

	mu         sync.Mutex
	challenges map[string]domain.ThreeDSRedirect

	resultCh  chan returnResult
	closeOnce sync.Once
}

var _ ports.ThreeDSRedirector = (*Server)(nil)

type returnResult struct {
	orderID string
	err     error
}

// StartServer listens on listenAddr and prints challenge links to out.
func StartServer(listenAddr string, out io.Writer) (*Server, error) {
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}
	if out == nil {
		out = io.Discard
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen 3ds server: %w", err)
	}

	s := &Server{
		listener:   listener,
		out:        out,
		challenges: map[string]domain.ThreeDSRedirect{},
		resultCh:   make(chan returnResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /3ds/{token}", s.handleChallenge)
	mux.HandleFunc(ports.ThreeDSReturnPath, s.handleReturn)

	s.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if serveErr := s.server.Serve(s.listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.trySendResult(returnResult{err: serveErr})
		}
	}()

	return s, nil
}

func (s *Server) BaseURL() string {
	if tcpAddr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return fmt.Sprintf("http://localhost:%d", tcpAddr.Port)
	}
	return "http://localhost"
}

// Redirect registers the challenge and tells the user where to open it.
func (s *Server) Redirect(ctx context.Context, orderID string, redirect domain.ThreeDSRedirect) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(redirect.ActionURL) == "" {
		return errors.New("3ds redirect has no action url")
	}

	token, err := newToken()
	if err != nil {
		return fmt.Errorf("create 3ds challenge token: %w", err)
	}

	s.mu.Lock()
	s.challenges[token] = redirect
	s.mu.Unlock()

	_, err = fmt.Fprintf(s.out, "Card authentication required for booking %s.\nOpen this link in your browser to continue:\n  %s/3ds/%s\n",
		domain.SupportReference(orderID), s.BaseURL(), token)
	return err
}

// WaitForReturn blocks until the bank redirects back, the timeout passes or ctx ends.
func (s *Server) WaitForReturn(ctx context.Context, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-s.resultCh:
		return result.orderID, result.err
	case <-timer.C:
		return "", ErrReturnTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *Server) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		closeErr = s.server.Close()
	})
	return closeErr
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	s.mu.Lock()
	redirect, ok := s.challenges[token]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = challengePage.Execute(w, struct {
		Method    string
		ActionURL string
		Fields    map[string]string
	}{
		Method:    redirect.FormMethod(),
		ActionURL: redirect.ActionURL,
		Fields:    redirect.Fields,
	})
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(r.URL.Query().Get("partner_order_id"))
	if orderID == "" && r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			orderID = strings.TrimSpace(r.PostForm.Get("partner_order_id"))
		}
	}
	if orderID == "" {
		http.Error(w, "missing partner_order_id", http.StatusBadRequest)
		return
	}

	s.trySendResult(returnResult{orderID: orderID})
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Card authentication complete. You can close this window and return to the terminal."))
}

// trySendResult keeps the first undelivered result; later ones are dropped until it is read.
func (s *Server) trySendResult(result returnResult) {
	select {
	case s.resultCh <- result:
	default:
	}
}

func newToken() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
