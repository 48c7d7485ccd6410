package ddns

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultEchoURL is the address-echo service queried when no other
// service URL is configured.
const DefaultEchoURL = "https://icanhazip.com/"

// WebResolver constructs a resolver which uses an external web service to
// look up a "public" IP address.
//
// The serviceURL must speak http and return status "200 OK",
// with the caller's address as the plain-text response body.
// The body is trimmed of surrounding whitespace and returned verbatim:
// addresses are treated as opaque strings and never parsed,
// so whatever the service echoes is what gets compared and written.
// An empty serviceURL selects [DefaultEchoURL].
func WebResolver(serviceURL string) Resolver {
	if serviceURL == "" {
		serviceURL = DefaultEchoURL
	}
	return &webResolver{
		client: resty.New().SetTimeout(15 * time.Second),
		url:    serviceURL,
	}
}

type webResolver struct {
	client *resty.Client
	url    string
}

// Resolve implements ddns.Resolver.
func (wr *webResolver) Resolve(ctx context.Context) (string, error) {
	resp, err := wr.client.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-cache").
		Get(wr.url)
	if err != nil {
		return "", &NetworkError{Op: "resolve public IP", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("address echo service returned %s", resp.Status())
	}
	ip := strings.TrimSpace(string(resp.Body()))
	if ip == "" {
		return "", fmt.Errorf("address echo service returned an empty body")
	}
	return ip, nil
}

func (wr *webResolver) SetHTTPClient(httpclient *http.Client) {
	wr.client = resty.NewWithClient(httpclient)
}
