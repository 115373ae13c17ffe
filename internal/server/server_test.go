package server

import (
	"net/http"
	"testing"
)

func TestNew_JoinsHostAndPort(t *testing.T) {
	s := New("localhost", 8080, http.NewServeMux())

	if s.Addr() != "localhost:8080" {
		t.Fatalf("expected addr localhost:8080, got %q", s.Addr())
	}
	if s.httpServer.Addr != s.Addr() {
		t.Fatalf("http server bound to %q, want %q", s.httpServer.Addr, s.Addr())
	}
}

func TestNew_WrapsHandler(t *testing.T) {
	mux := http.NewServeMux()
	s := New("0.0.0.0", 3000, mux)

	if s.httpServer.Handler == nil {
		t.Fatal("expected handler to be set")
	}
	if s.httpServer.ReadTimeout == 0 || s.httpServer.WriteTimeout == 0 {
		t.Fatal("expected request timeouts to be set")
	}
}
