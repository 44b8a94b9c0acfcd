package ec2

import (
	"context"
	"sync"
)

// The package-level functions below share one lazily-built default client, so
// library callers can query without wiring a Client themselves:
//
//	machines, err := ec2.ListMachineTypes(ctx, &ec2.ListOptions{Families: []string{"t4g"}})
//
// Configuration is resolved once, on first use. Callers needing per-call
// overrides construct their own Client with NewClient.

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// Default returns the shared default client, constructing it on first use with
// configuration from the standard chain. Concurrent first calls construct it
// at most once. A failed construction is not cached, so a later call retries
// after the caller fixes their configuration.
func Default(ctx context.Context) (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultClient != nil {
		return defaultClient, nil
	}

	client, err := NewClient(ctx, nil)
	if err != nil {
		return nil, err
	}

	defaultClient = client
	return client, nil
}

// ListMachineTypes queries through the shared default client. See
// Client.ListMachineTypes for filter semantics.
func ListMachineTypes(ctx context.Context, opts *ListOptions) ([]MachineType, error) {
	client, err := Default(ctx)
	if err != nil {
		return nil, err
	}
	return client.ListMachineTypes(ctx, opts)
}

// SetDefault replaces the shared default client. Intended for tests and for
// programs that build a customized client once at startup.
func SetDefault(client *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = client
}

// ResetDefault drops the shared default client so the next use resolves
// configuration again.
func ResetDefault() {
	SetDefault(nil)
}
