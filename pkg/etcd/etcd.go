package etcd

import (
	"context"
	"sync"
	"time"
)

const (
	connectionTimeout = 30 * time.Second
	requestTimeout    = 10 * time.Second
)

var (
	once sync.Once
)

// Etcd is the read-only view of the key space the model store needs.
type Etcd interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Close() error
}
