package connector

import (
	"context"
	"fmt"
	"sync"

	"dbconnectorapi/services/backend"
)

// Session is one open backend connection. Close must be called exactly once.
type Session interface {
	Query(ctx context.Context, statement string) (*Table, error)
	Close() error
}

// Dialer opens sessions. On error it returns a nil Session and holds no resources.
type Dialer interface {
	Dial(ctx context.Context, target Target) (Session, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, target Target) (Session, error)

func (f DialerFunc) Dial(ctx context.Context, target Target) (Session, error) {
	return f(ctx, target)
}

// Options carries process-level settings some native clients need.
type Options struct {
	SalesforceDomain         string
	SalesforceConsumerKey    string
	SalesforceConsumerSecret string
}

type openFunc func(ctx context.Context, target Target, opts Options) (Session, error)

var (
	driversMu sync.RWMutex
	drivers   = make(map[backend.Kind]openFunc)
)

// registerDriver is called from the init of each build-tagged native client file.
func registerDriver(kind backend.Kind, open openFunc) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[kind] = open
}

func lookupDriver(kind backend.Kind) (openFunc, bool) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	open, ok := drivers[kind]
	return open, ok
}

// LibraryAvailable reports whether the native client for kind was compiled in.
// It satisfies backend.LibraryProbe.
func LibraryAvailable(kind backend.Kind) bool {
	_, ok := lookupDriver(kind)
	return ok
}

// NativeDialer opens sessions with the compiled-in native clients.
type NativeDialer struct {
	opts Options
}

// NewNativeDialer creates a dialer using the native clients.
func NewNativeDialer(opts Options) *NativeDialer {
	return &NativeDialer{opts: opts}
}

// Available reports whether kind can be dialed: its client is compiled in and,
// for Salesforce, the connected app key and secret are configured.
// It satisfies backend.LibraryProbe.
func (d *NativeDialer) Available(kind backend.Kind) bool {
	return LibraryAvailable(kind) && d.missingSetting(kind) == ""
}

func (d *NativeDialer) missingSetting(kind backend.Kind) string {
	if kind != backend.KindSalesforce {
		return ""
	}
	switch {
	case d.opts.SalesforceConsumerKey == "":
		return "SALESFORCE_CONSUMER_KEY"
	case d.opts.SalesforceConsumerSecret == "":
		return "SALESFORCE_CONSUMER_SECRET"
	}
	return ""
}

func (d *NativeDialer) Dial(ctx context.Context, target Target) (Session, error) {
	open, ok := lookupDriver(target.Kind)
	if !ok {
		return nil, &Error{
			Category: CategoryConnection,
			Backend:  target.Kind,
			Message:  fmt.Sprintf("native client for %s is not available in this build", target.Kind),
		}
	}
	if setting := d.missingSetting(target.Kind); setting != "" {
		return nil, &Error{
			Category: CategoryConnection,
			Backend:  target.Kind,
			Message:  fmt.Sprintf("%s client is not configured: %s is empty", target.Kind, setting),
		}
	}
	return open(ctx, target, d.opts)
}
