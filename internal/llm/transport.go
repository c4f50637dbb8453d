package llm

import (
	"net/http"
	"net/url"
	"time"
)

// proxyFunc picks the proxy for outbound provider calls. Explicit
// configuration wins; otherwise the standard HTTP_PROXY, HTTPS_PROXY,
// and NO_PROXY environment variables apply.
func proxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// newHTTPClient builds the proxy-aware client shared by the providers.
// Insurance intake often runs behind a corporate proxy, so every
// outbound call goes through the same transport setup.
func newHTTPClient(config Config, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: proxyFunc(config.HTTPProxy, config.HTTPSProxy),
		},
	}
}
