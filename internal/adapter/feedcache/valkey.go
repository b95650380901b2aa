package feedcache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore is a Store backed by a Valkey-compatible server.
type ValkeyStore struct {
	client valkey.Client
}

// NewValkeyStore connects to addr, which is either host:port or a
// redis:// / valkey:// URL.
func NewValkeyStore(addr string) (*ValkeyStore, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(addr, "://") {
		opt, err = valkey.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse valkey address: %w", err)
		}
	} else {
		opt = valkey.ClientOption{InitAddress: []string{addr}}
	}

	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}
	return &ValkeyStore{client: client}, nil
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	builder := s.client.B().Set().Key(key).Value(value)
	if ttl <= 0 {
		return s.client.Do(ctx, builder.Build()).Error()
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	return s.client.Do(ctx, builder.Ex(ttl).Build()).Error()
}

// Ping checks that the server is reachable.
func (s *ValkeyStore) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

// Close releases the client's connections.
func (s *ValkeyStore) Close() {
	s.client.Close()
}
