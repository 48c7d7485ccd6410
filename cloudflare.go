package ddns

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/rs/zerolog"
)

// UsingCloudflare registers Cloudflare as the DNS provider instead of
// Porkbun. The config's apikey field is used as the API token;
// secretapikey is ignored since Cloudflare tokens are a single value.
func UsingCloudflare() clientOption {
	return func(c *client) error {
		c.Provider = NewCloudflare()
		return nil
	}
}

// NewCloudflare returns a Provider that replaces the content of the
// existing A record for a domain through the Cloudflare API.
func NewCloudflare() Provider {
	return &cloudflareProvider{
		logger:  zerolog.Nop(),
		comment: "managed by ddns",
	}
}

type cloudflareProvider struct {
	logger     zerolog.Logger
	httpClient *http.Client
	comment    string // optional comment to attach to each rewritten DNS entry
}

// UpdateARecord implements ddns.Provider.
//
// Like the Porkbun provider it refuses to manage a domain with no
// existing A record: stale records are replaced, missing ones are an
// error.
func (cf *cloudflareProvider) UpdateARecord(ctx context.Context, domain string, creds Credentials, ip string) error {
	opts := []cloudflare.Option{}
	if cf.httpClient != nil {
		opts = append(opts, cloudflare.HTTPClient(cf.httpClient))
	}
	api, err := cloudflare.NewWithAPIToken(creds.APIKey, opts...)
	if err != nil {
		return fmt.Errorf("error creating cloudflare api client: %w", err)
	}

	zid, err := cf.getZoneIDFromDomain(ctx, api, domain)
	if err != nil {
		return fmt.Errorf("unable to get zone ID for %s: %w", domain, err)
	}
	cf.logger.Debug().Str("zone", zid).Msg("got zone ID")

	records, _, err := api.ListDNSRecords(ctx, cloudflare.ZoneIdentifier(zid), cloudflare.ListDNSRecordsParams{
		Type: "A",
		Name: domain,
	})
	if err != nil {
		return cf.classify("error listing DNS records for "+domain, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no existing A record found for %s", domain)
	}

	current := false
	for _, r := range records {
		if r.Content == ip {
			cf.logger.Debug().Str("record", r.ID).Msg("existing record already has the new address")
			current = true
			continue
		}
		cf.logger.Debug().Str("record", r.ID).Str("content", r.Content).Msg("deleting stale A record")
		if err := api.DeleteDNSRecord(ctx, cloudflare.ZoneIdentifier(zid), r.ID); err != nil {
			return cf.classify("unable to delete DNS record "+r.ID, err)
		}
	}
	if current {
		return nil
	}

	record, err := api.CreateDNSRecord(ctx, cloudflare.ZoneIdentifier(zid), cloudflare.CreateDNSRecordParams{
		Type:    "A",
		Name:    domain,
		Content: ip,
		ZoneID:  zid,
		TTL:     recordTTL,
		Comment: cf.comment,
	})
	if err != nil {
		return cf.classify("error creating replacement DNS record", err)
	}
	cf.logger.Debug().Str("record", record.ID).Str("content", ip).Msg("rewrote A record")
	return nil
}

// classify separates "the API answered no" from "the call never
// completed" so callers can match ErrUpdateRejected on the former.
func (cf *cloudflareProvider) classify(op string, err error) error {
	var apiErr *cloudflare.Error
	if errors.As(err, &apiErr) {
		return &UpdateRejectedError{StatusCode: apiErr.StatusCode}
	}
	return &NetworkError{Op: op, Err: err}
}

func (cf *cloudflareProvider) getZoneIDFromDomain(ctx context.Context, api *cloudflare.API, domain string) (zid string, err error) {
	zones, err := api.ListZones(ctx)
	if err != nil {
		return "", fmt.Errorf("error listing zones: %w", err)
	}

	max := 0
	for _, z := range zones {
		if strings.HasSuffix(domain, z.Name) && len(z.Name) > max {
			max, zid = len(z.Name), z.ID
		}
	}
	if max == 0 {
		return "", fmt.Errorf("unable to find a zone matching \"%s\"", domain)
	}
	return zid, nil
}

func (cf *cloudflareProvider) SetLogger(logger zerolog.Logger) {
	cf.logger = logger
}

func (cf *cloudflareProvider) SetHTTPClient(httpclient *http.Client) {
	cf.httpClient = httpclient
}
