package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
)

// CachingFetcher downloads an artifact once into Dir and serves the local copy
// afterwards. When Validate is set, only bytes it accepts are written to the
// cache, and a cached file it rejects is replaced by a fresh download.
type CachingFetcher struct {
	Dir      string
	Remote   Fetcher
	Validate func(data []byte) error
}

func (c *CachingFetcher) Fetch(ctx context.Context, artifact Artifact) ([]byte, error) {
	if artifact.File == "" {
		return nil, fmt.Errorf("%s artifact has no file name to cache under", artifact.Role)
	}
	path := filepath.Join(c.Dir, artifact.File)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if verr := c.validate(data); verr != nil {
			logger.Warn(fmt.Sprintf("%s is not a valid artifact, downloading again: %v", path, verr))
			break
		}
		logger.Info(fmt.Sprintf("%s already exists, skipping download", path))
		return data, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	data, err = c.Remote.Fetch(ctx, artifact)
	if err != nil {
		return nil, err
	}
	if err := c.validate(data); err != nil {
		return nil, fmt.Errorf("downloaded %s artifact rejected: %w", artifact.Role, err)
	}
	if err := writeAtomic(path, data); err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Downloaded %s", path))
	return data, nil
}

func (c *CachingFetcher) validate(data []byte) error {
	if c.Validate == nil {
		return nil
	}
	return c.Validate(data)
}

// writeAtomic writes through a temp file in the same directory so a crash never
// leaves a truncated artifact that would be picked up on the next start.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
