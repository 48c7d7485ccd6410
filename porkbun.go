package ddns

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const porkbunBaseURL = "https://api-ipv4.porkbun.com/api/json/v3"

// recordTTL is Porkbun's default and minimum TTL (10 minutes).
const recordTTL = 600

// UsingPorkbun registers the Porkbun DNS provider.
// This is also the default when no provider option is given.
func UsingPorkbun() clientOption {
	return func(c *client) error {
		c.Provider = NewPorkbun("")
		return nil
	}
}

// NewPorkbun returns a Provider that edits A records through the Porkbun
// v3 API rooted at baseURL. An empty baseURL selects the production API
// over IPv4.
func NewPorkbun(baseURL string) Provider {
	if baseURL == "" {
		baseURL = porkbunBaseURL
	}
	return &porkbunProvider{
		client:  resty.New().SetBaseURL(baseURL).SetTimeout(15 * time.Second),
		baseURL: baseURL,
	}
}

type porkbunProvider struct {
	client  *resty.Client
	baseURL string
}

type porkbunEditRequest struct {
	APIKey       string `json:"apikey"`
	SecretAPIKey string `json:"secretapikey"`
	Content      string `json:"content"`
	TTL          int    `json:"ttl"`
}

// UpdateARecord implements ddns.Provider.
//
// It edits the existing A record matching domain exactly;
// the record must already exist since editByNameType never creates one.
// Success is judged solely by the status code:
// anything other than 200 comes back as an *UpdateRejectedError and the
// response body is not inspected.
func (p *porkbunProvider) UpdateARecord(ctx context.Context, domain string, creds Credentials, ip string) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(porkbunEditRequest{
			APIKey:       creds.APIKey,
			SecretAPIKey: creds.SecretAPIKey,
			Content:      ip,
			TTL:          recordTTL,
		}).
		Post("/dns/editByNameType/" + domain + "/A/")
	if err != nil {
		return &NetworkError{Op: "edit A record for " + domain, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return &UpdateRejectedError{StatusCode: resp.StatusCode()}
	}
	return nil
}

func (p *porkbunProvider) SetHTTPClient(httpclient *http.Client) {
	p.client = resty.NewWithClient(httpclient).SetBaseURL(p.baseURL)
}
