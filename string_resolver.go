package ddns

import (
	"context"
	"errors"
)

// FromString constructs a resolver that always returns addr.
// Useful when the address is known ahead of time or supplied manually.
func FromString(addr string) Resolver {
	return stringResolver(addr)
}

type stringResolver string

func (s stringResolver) Resolve(context.Context) (string, error) {
	if s == "" {
		return "", errors.New("address cannot be empty")
	}
	return string(s), nil
}
