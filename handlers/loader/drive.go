package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveFetcher downloads artifacts through the Drive v3 API using an
// already-issued OAuth token. The token source refreshes expired access
// tokens with the stored refresh token.
type DriveFetcher struct {
	service *drive.Service
}

func NewDriveFetcher(ctx context.Context, credentialsFile, tokenFile string) (*DriveFetcher, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(credentials, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	token, err := readToken(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read token file %s: %w", tokenFile, err)
	}
	service, err := drive.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive client: %w", err)
	}
	return &DriveFetcher{service: service}, nil
}

func (d *DriveFetcher) Fetch(ctx context.Context, artifact Artifact) ([]byte, error) {
	if artifact.Ref == "" {
		return nil, fmt.Errorf("%s artifact has no drive file id", artifact.Role)
	}
	resp, err := d.service.Files.Get(artifact.Ref).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("drive download %s: %w", artifact.Ref, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}
