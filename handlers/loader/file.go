package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileFetcher reads artifacts from a local directory.
type FileFetcher struct {
	Dir string
}

func (f *FileFetcher) Fetch(_ context.Context, artifact Artifact) ([]byte, error) {
	if artifact.File == "" {
		return nil, fmt.Errorf("%s artifact has no file name", artifact.Role)
	}
	return os.ReadFile(filepath.Join(f.Dir, artifact.File))
}
