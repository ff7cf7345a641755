package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
)

// GCSFetcher reads artifacts from a bucket using Application Default Credentials.
type GCSFetcher struct {
	client *storage.Client
	Bucket string
	Prefix string
}

func NewGCSFetcher(ctx context.Context, bucket, prefix string) (*GCSFetcher, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSFetcher{client: client, Bucket: bucket, Prefix: prefix}, nil
}

func (g *GCSFetcher) Fetch(ctx context.Context, artifact Artifact) ([]byte, error) {
	if g.client == nil {
		return nil, fmt.Errorf("GCS client not initialized")
	}
	objectPath := path.Join(g.Prefix, artifact.RemoteName())
	rc, err := g.client.Bucket(g.Bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create object reader for gs://%s/%s: %w", g.Bucket, objectPath, err)
	}
	defer rc.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, rc); err != nil {
		return nil, fmt.Errorf("failed to read object into buffer: %w", err)
	}
	return buf.Bytes(), nil
}
