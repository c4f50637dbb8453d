package llm

import (
	"net/http"
	"testing"
)

func TestProxyFunc_ExplicitConfigWins(t *testing.T) {
	fn := proxyFunc("http://proxy-a:3128", "http://proxy-b:3128")

	httpsReq, _ := http.NewRequest(http.MethodGet, "https://api.anthropic.com/v1/messages", nil)
	u, err := fn(httpsReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Host != "proxy-b:3128" {
		t.Errorf("https request proxy = %q, want proxy-b:3128", u.Host)
	}

	httpReq, _ := http.NewRequest(http.MethodGet, "http://localhost:11434/api/generate", nil)
	u, err = fn(httpReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Host != "proxy-a:3128" {
		t.Errorf("http request proxy = %q, want proxy-a:3128", u.Host)
	}
}

func TestProxyFunc_HTTPProxyCoversHTTPSWhenUnset(t *testing.T) {
	fn := proxyFunc("http://proxy-a:3128", "")

	req, _ := http.NewRequest(http.MethodGet, "https://api.openai.com/v1/chat/completions", nil)
	u, err := fn(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Host != "proxy-a:3128" {
		t.Errorf("proxy = %v, want proxy-a:3128", u)
	}
}

func TestProxyFunc_DefaultsToEnvironment(t *testing.T) {
	// With nothing configured the standard environment lookup applies.
	// Loopback hosts always bypass the proxy, so the result is stable
	// no matter what HTTP_PROXY is set to.
	fn := proxyFunc("", "")
	req, _ := http.NewRequest(http.MethodGet, "http://localhost:11434/api/generate", nil)
	u, err := fn(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("expected no proxy for loopback, got %v", u)
	}
}

func TestNewHTTPClient_SetsTimeout(t *testing.T) {
	cfg := Config{HTTPProxy: "http://proxy-a:3128"}
	client := newHTTPClient(cfg, 0)
	if client.Timeout != 0 {
		t.Errorf("timeout = %v, want 0 (caller controls)", client.Timeout)
	}
	if client.Transport == nil {
		t.Error("expected a transport with proxy wiring")
	}
}
