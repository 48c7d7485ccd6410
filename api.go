package ddns

import "context"

// Credentials holds the DNS provider's API credentials.
type Credentials struct {
	APIKey       string
	SecretAPIKey string
}

type Resolver interface {
	Resolve(context.Context) (string, error)
}

type Provider interface {
	UpdateARecord(ctx context.Context, domain string, creds Credentials, ip string) error
}

type Pinger interface {
	Ping(ctx context.Context, id string, message string) error
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(context.Context) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context) (string, error) {
	return f(ctx)
}
