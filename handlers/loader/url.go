package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const refPlaceholder = "{ref}"

// URLFetcher downloads artifacts over plain HTTP(S). Template holds a {ref}
// placeholder, e.g. https://drive.google.com/uc?id={ref} for publicly shared files.
type URLFetcher struct {
	Template string
	Client   *http.Client
}

func NewURLFetcher(template string) *URLFetcher {
	return &URLFetcher{Template: template, Client: &http.Client{Timeout: 5 * time.Minute}}
}

func (u *URLFetcher) Fetch(ctx context.Context, artifact Artifact) ([]byte, error) {
	if artifact.Ref == "" {
		return nil, fmt.Errorf("%s artifact has no remote ref", artifact.Role)
	}
	url := strings.ReplaceAll(u.Template, refPlaceholder, artifact.Ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}
	if contentType := strings.ToLower(resp.Header.Get("Content-Type")); strings.HasPrefix(contentType, "text/html") {
		return nil, fmt.Errorf("download %s: got an HTML page instead of the artifact, likely a confirmation or sign-in page", url)
	}
	return io.ReadAll(resp.Body)
}
