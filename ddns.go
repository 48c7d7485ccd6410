package ddns

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// New returns a DDNSClient which keeps the A record for the domain named
// in the config file at configPath pointed at the caller's current
// public IP address.
//
// Without options the client resolves through [DefaultEchoURL],
// updates through the Porkbun v3 API,
// and reports liveness to hc-ping.com when the config carries a UUID.
func New(configPath string, options ...clientOption) (DDNSClient, error) {
	if configPath == "" {
		return nil, fmt.Errorf("ddns.New: config path cannot be empty")
	}
	c := &client{
		configPath: configPath,
		logger:     zerolog.Nop(),
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("ddns.New: option %d returned an error: %w", i, err)
		}
	}
	if c.Resolver == nil {
		c.Resolver = WebResolver("")
	}
	if c.Provider == nil {
		c.Provider = NewPorkbun("")
	}
	if c.Pinger == nil {
		c.Pinger = NewHealthchecks("")
	}

	// this lets us propagate the logger and http client to dependencies
	// even when WithLogger or UsingHTTPClient was called before all of the
	// dependencies were registered
	propagateLogger(c)
	propagateHTTPClient(c)
	return c, nil
}

type clientOption func(*client) error

// UsingResolver replaces the default web-based IP resolver.
// A nil resolver restores the default.
func UsingResolver(resolver Resolver) clientOption {
	return func(c *client) error {
		if resolver == nil {
			resolver = WebResolver("")
		}
		c.Resolver = resolver
		return nil
	}
}

// UsingWebResolver selects an address-echo service other than
// [DefaultEchoURL].
func UsingWebResolver(serviceURL string) clientOption {
	return func(c *client) error {
		c.Resolver = WebResolver(serviceURL)
		return nil
	}
}

// UsingProvider replaces the default Porkbun DNS provider.
func UsingProvider(provider Provider) clientOption {
	return func(c *client) error {
		if provider == nil {
			provider = NewPorkbun("")
		}
		c.Provider = provider
		return nil
	}
}

// UsingPinger replaces the default healthchecks.io liveness reporter.
func UsingPinger(pinger Pinger) clientOption {
	return func(c *client) error {
		if pinger == nil {
			pinger = NewHealthchecks("")
		}
		c.Pinger = pinger
		return nil
	}
}

// WithLogger sets the logger used by the client and its dependencies.
// The default discards all log output.
func WithLogger(logger zerolog.Logger) clientOption {
	return func(c *client) error {
		c.logger = logger
		return nil
	}
}

// UsingHTTPClient swaps the underlying *http.Client for every dependency
// that makes HTTP calls.
func UsingHTTPClient(httpclient *http.Client) clientOption {
	return func(c *client) error {
		if httpclient == nil {
			httpclient = http.DefaultClient
		}
		c.httpClient = httpclient
		return nil
	}
}

func propagateLogger(c *client) {
	type setLogger interface {
		SetLogger(zerolog.Logger)
	}
	if p, ok := c.Provider.(setLogger); ok {
		p.SetLogger(c.logger)
	}
	if r, ok := c.Resolver.(setLogger); ok {
		r.SetLogger(c.logger)
	}
}

func propagateHTTPClient(c *client) {
	if c.httpClient == nil {
		return
	}
	type setHTTPClient interface {
		SetHTTPClient(*http.Client)
	}
	if r, ok := c.Resolver.(setHTTPClient); ok {
		r.SetHTTPClient(c.httpClient)
	}
	if p, ok := c.Provider.(setHTTPClient); ok {
		p.SetHTTPClient(c.httpClient)
	}
	if p, ok := c.Pinger.(setHTTPClient); ok {
		p.SetHTTPClient(c.httpClient)
	}
}

type DDNSClient interface {
	Run(ctx context.Context) error
}

type client struct {
	Resolver
	Provider
	Pinger
	logger     zerolog.Logger
	httpClient *http.Client
	configPath string
}

// Run performs one full update cycle.
//
// The config is loaded fresh on every call and written back only after a
// confirmed-successful record edit,
// so a rejected or failed update leaves the persisted lastIP unchanged.
// A rejected update (errors.Is ErrUpdateRejected) also skips the
// liveness ping: the run failed end-to-end.
func (c *client) Run(ctx context.Context) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	c.logger.Info().Msg("getting current IP")
	currentIP, err := c.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("error getting current IP: %w", err)
	}
	c.logger.Info().Str("last", cfg.LastIP).Str("current", currentIP).Msg("comparing addresses")

	status := "no change"
	if currentIP != cfg.LastIP {
		status = fmt.Sprintf("updated %s with %s", cfg.Domain, currentIP)
		c.logger.Info().Str("domain", cfg.Domain).Str("ip", currentIP).Msg("updating A record")
		if err := c.UpdateARecord(ctx, cfg.Domain, cfg.Credentials(), currentIP); err != nil {
			return fmt.Errorf("error updating %s with %s: %w", cfg.Domain, currentIP, err)
		}
		c.logger.Info().Msg("update successful, saving config")
		cfg.LastIP = currentIP
		if err := cfg.Save(c.configPath); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	} else {
		c.logger.Info().Msg("no change")
	}

	if cfg.HealthchecksUUID != "" {
		c.logger.Info().Msg("pinging healthchecks")
		if err := c.Ping(ctx, cfg.HealthchecksUUID, status); err != nil {
			return fmt.Errorf("error pinging healthchecks: %w", err)
		}
	}
	c.logger.Info().Msg("finished")
	return nil
}

// RunDaemon starts ddnsClient as a goroutine,
// running one full cycle every interval until ctx is cancelled.
// Intervals below one minute are raised to one minute.
// Failed cycles are logged and the loop keeps going.
func RunDaemon(ddnsClient DDNSClient, ctx context.Context, interval time.Duration, logger zerolog.Logger) {
	if interval < 1*time.Minute {
		interval = 1 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := ddnsClient.Run(ctx); err != nil {
					logger.Error().Err(err).Msg("ddns run failed")
				}
			}
		}
	}()
}
