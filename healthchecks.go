package ddns

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const healthchecksBaseURL = "https://hc-ping.com"

// NewHealthchecks returns a Pinger that reports liveness to
// healthchecks.io check URLs rooted at baseURL.
// An empty baseURL selects the public hc-ping.com endpoint.
func NewHealthchecks(baseURL string) Pinger {
	if baseURL == "" {
		baseURL = healthchecksBaseURL
	}
	return &healthchecksPinger{
		client:  resty.New().SetBaseURL(baseURL).SetTimeout(15 * time.Second),
		baseURL: baseURL,
	}
}

type healthchecksPinger struct {
	client  *resty.Client
	baseURL string
}

// Ping implements ddns.Pinger.
// The message rides along as a plain-text diagnostic body;
// the response is not consulted.
func (h *healthchecksPinger) Ping(ctx context.Context, id string, message string) error {
	_, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(message).
		Post("/" + id)
	if err != nil {
		return &NetworkError{Op: "ping healthchecks", Err: err}
	}
	return nil
}

func (h *healthchecksPinger) SetHTTPClient(httpclient *http.Client) {
	h.client = resty.NewWithClient(httpclient).SetBaseURL(h.baseURL)
}
