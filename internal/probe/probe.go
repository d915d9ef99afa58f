// Package probe checks whether a hostname is reachable before a URL is
// admitted into the registry. The prober is a black-box collaborator: only
// its pass/fail signal matters, and it runs strictly between syntactic
// validation and code assignment.
package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

const DefaultTimeout = 2 * time.Second

// Prober reports whether a host resolves.
// Implementations should be safe for concurrent use.
type Prober interface {
	Resolve(ctx context.Context, host string) error
}

// dnsProber implements Prober using DNS resolution.
type dnsProber struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// Option configures a DNS prober.
type Option func(*dnsProber)

// WithTimeout bounds each resolution attempt. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *dnsProber) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithResolver substitutes the resolver, mainly for tests.
func WithResolver(r *net.Resolver) Option {
	return func(p *dnsProber) {
		if r != nil {
			p.resolver = r
		}
	}
}

// NewDNS returns a Prober backed by DNS host lookups.
func NewDNS(opts ...Option) Prober {
	p := &dnsProber{
		resolver: net.DefaultResolver,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve looks up the host, with any leading "www." stripped. A timeout is
// treated the same as a resolution failure.
func (p *dnsProber) Resolve(ctx context.Context, host string) error {
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return errors.New("empty host")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	addrs, err := p.resolver.LookupHost(ctx, host)
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		return errors.New("host did not resolve to any address")
	}
	return nil
}
