package loader

import (
	"context"
	"path"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/etcd"
)

// EtcdFetcher reads artifacts stored as values under a key prefix.
type EtcdFetcher struct {
	Client etcd.Etcd
	Prefix string
}

func (e *EtcdFetcher) Fetch(ctx context.Context, artifact Artifact) ([]byte, error) {
	return e.Client.Get(ctx, e.Prefix+artifact.RemoteName())
}

// ZookeeperFetcher reads artifacts stored as znode data under a path prefix.
type ZookeeperFetcher struct {
	Get    func(nodePath string) ([]byte, error)
	Prefix string
}

func (z *ZookeeperFetcher) Fetch(_ context.Context, artifact Artifact) ([]byte, error) {
	return z.Get(path.Join(z.Prefix, artifact.RemoteName()))
}
