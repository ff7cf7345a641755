package loader

import (
	"context"
	"fmt"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/config"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/etcd"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/mlmodel"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/zookeeper"
)

// NewFetcher builds the Fetcher for the manifest's source. Downloading sources
// are wrapped in a CachingFetcher rooted at the manifest's cache dir.
func NewFetcher(ctx context.Context, manifest *config.Manifest, appConfigs *configs.AppConfigs) (Fetcher, error) {
	switch manifest.Source {
	case config.SourceFile:
		return &FileFetcher{Dir: manifest.Directory}, nil
	case config.SourceURL:
		return cached(manifest, NewURLFetcher(manifest.URLTemplate)), nil
	case config.SourceDrive:
		remote, err := NewDriveFetcher(ctx, manifest.Drive.CredentialsFile, manifest.Drive.TokenFile)
		if err != nil {
			return nil, err
		}
		return cached(manifest, remote), nil
	case config.SourceGCS:
		remote, err := NewGCSFetcher(ctx, manifest.GCS.Bucket, manifest.GCS.Prefix)
		if err != nil {
			return nil, err
		}
		return cached(manifest, remote), nil
	case config.SourceEtcd:
		etcd.Init(etcd.DefaultVersion, appConfigs)
		return &EtcdFetcher{Client: etcd.Instance(), Prefix: manifest.Etcd.Prefix}, nil
	case config.SourceZookeeper:
		zookeeper.InitZKConnection(appConfigs)
		return &ZookeeperFetcher{Get: zookeeper.Get, Prefix: manifest.Zookeeper.Prefix}, nil
	default:
		return nil, fmt.Errorf("unsupported model source %q", manifest.Source)
	}
}

func cached(manifest *config.Manifest, remote Fetcher) Fetcher {
	return &CachingFetcher{Dir: manifest.CacheDir, Remote: remote, Validate: validArtifact}
}

func validArtifact(data []byte) error {
	_, err := mlmodel.Decode(data)
	return err
}
