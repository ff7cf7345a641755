package loader

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Meesho/BharatMLStack/flightdelay/internal/errors"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	regressionArtifact     = `{"kind": "linear_regression", "name": "regression_model", "feature_names": ["month"], "coef": [2], "intercept": 1}`
	classificationArtifact = `{"kind": "logistic_regression", "feature_names": ["month"], "classes": [0, 1], "coef": [[1]], "intercept": [-6]}`
	boostingArtifact       = `{"kind": "gradient_boosting_regressor", "feature_names": ["month"], "init": 3, "learning_rate": 0.1, "trees": [{"children_left": [-1], "children_right": [-1], "feature": [-2], "threshold": [-2], "value": [[4]]}]}`
	preprocessorArtifact   = `{"kind": "column_transformer", "transformers": [{"type": "passthrough", "columns": ["year", "month"]}]}`
	clusteringArtifact     = `{"kind": "kmeans", "cluster_centers": [[2024, 1], [2024, 7]]}`
)

// mapFetcher serves artifacts from memory keyed by file name.
type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, artifact Artifact) ([]byte, error) {
	data, ok := m[artifact.File]
	if !ok {
		return nil, fmt.Errorf("%s not found", artifact.File)
	}
	return []byte(data), nil
}

func manifest(models map[string]config.ModelEntry) *config.Manifest {
	return &config.Manifest{Source: config.SourceFile, Models: models}
}

func requiredEntries() map[string]config.ModelEntry {
	return map[string]config.ModelEntry{
		config.RoleRegression:       {File: "regression.json"},
		config.RoleClassification:   {File: "classification.json"},
		config.RoleGradientBoosting: {File: "boosting.json"},
	}
}

func artifacts() mapFetcher {
	return mapFetcher{
		"regression.json":     regressionArtifact,
		"classification.json": classificationArtifact,
		"boosting.json":       boostingArtifact,
		"preprocessor.json":   preprocessorArtifact,
		"kmeans.json":         clusteringArtifact,
	}
}

func TestLoadModelSet_RequiredOnly(t *testing.T) {
	set, err := LoadModelSet(context.Background(), NewLoader("test", artifacts()), manifest(requiredEntries()))
	require.NoError(t, err)
	assert.NotNil(t, set.Regression)
	assert.NotNil(t, set.Classification)
	assert.NotNil(t, set.GradientBoosting)
	assert.False(t, set.ClusteringConfigured())
}

func TestLoadModelSet_WithClustering(t *testing.T) {
	entries := requiredEntries()
	entries[config.RolePreprocessor] = config.ModelEntry{File: "preprocessor.json"}
	entries[config.RoleClustering] = config.ModelEntry{File: "kmeans.json"}

	set, err := LoadModelSet(context.Background(), NewLoader("test", artifacts()), manifest(entries))
	require.NoError(t, err)
	assert.True(t, set.ClusteringConfigured())
}

func TestLoadModelSet_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(entries map[string]config.ModelEntry, fetcher mapFetcher)
		model   string
		errPart string
	}{
		{
			name:    "missing artifact",
			mutate:  func(_ map[string]config.ModelEntry, f mapFetcher) { delete(f, "classification.json") },
			model:   config.RoleClassification,
			errPart: "not found",
		},
		{
			name:    "corrupt artifact",
			mutate:  func(_ map[string]config.ModelEntry, f mapFetcher) { f["boosting.json"] = "\x80\x04joblib" },
			model:   config.RoleGradientBoosting,
			errPart: "invalid model artifact",
		},
		{
			name:    "wrong capability",
			mutate:  func(_ map[string]config.ModelEntry, f mapFetcher) { f["regression.json"] = classificationArtifact },
			model:   config.RoleRegression,
			errPart: "cannot serve the regression stage",
		},
		{
			name: "clustering width mismatch",
			mutate: func(e map[string]config.ModelEntry, f mapFetcher) {
				e[config.RolePreprocessor] = config.ModelEntry{File: "preprocessor.json"}
				e[config.RoleClustering] = config.ModelEntry{File: "kmeans.json"}
				f["kmeans.json"] = `{"kind": "kmeans", "cluster_centers": [[1, 2, 3]]}`
			},
			model:   "model-set",
			errPart: "clustering model expects 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, fetcher := requiredEntries(), artifacts()
			tt.mutate(entries, fetcher)

			set, err := LoadModelSet(context.Background(), NewLoader("test", fetcher), manifest(entries))
			assert.Nil(t, set)
			var unavailable *errors.ModelUnavailableError
			require.True(t, stderrors.As(err, &unavailable))
			assert.Equal(t, tt.model, unavailable.Model)
			assert.ErrorContains(t, err, tt.errPart)
		})
	}
}

func TestFileFetcher_Fetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regression.json"), []byte(regressionArtifact), 0o644))
	fetcher := &FileFetcher{Dir: dir}

	data, err := fetcher.Fetch(context.Background(), Artifact{Role: config.RoleRegression, File: "regression.json"})
	require.NoError(t, err)
	assert.Equal(t, regressionArtifact, string(data))

	_, err = fetcher.Fetch(context.Background(), Artifact{Role: config.RoleRegression, File: "absent.json"})
	assert.Error(t, err)
}

func TestCachingFetcher_DownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "abc123", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(regressionArtifact))
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := &CachingFetcher{Dir: dir, Remote: NewURLFetcher(server.URL + "/uc?id={ref}")}
	artifact := Artifact{Role: config.RoleRegression, File: "regression.json", Ref: "abc123"}

	for i := 0; i < 2; i++ {
		data, err := fetcher.Fetch(context.Background(), artifact)
		require.NoError(t, err)
		assert.Equal(t, regressionArtifact, string(data))
	}
	assert.Equal(t, int32(1), hits.Load())

	cached, err := os.ReadFile(filepath.Join(dir, "regression.json"))
	require.NoError(t, err)
	assert.Equal(t, regressionArtifact, string(cached))
}

func TestCachingFetcher_FailedDownloadLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := &CachingFetcher{Dir: dir, Remote: NewURLFetcher(server.URL + "/{ref}")}

	_, err := fetcher.Fetch(context.Background(), Artifact{Role: config.RoleRegression, File: "regression.json", Ref: "x"})
	assert.ErrorContains(t, err, "unexpected status")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestZookeeperFetcher_Fetch(t *testing.T) {
	var requested string
	fetcher := &ZookeeperFetcher{
		Prefix: "/config/flightdelay/models",
		Get: func(nodePath string) ([]byte, error) {
			requested = nodePath
			return []byte(regressionArtifact), nil
		},
	}

	data, err := fetcher.Fetch(context.Background(), Artifact{Role: config.RoleRegression, File: "regression.json"})
	require.NoError(t, err)
	assert.Equal(t, "/config/flightdelay/models/regression.json", requested)
	assert.Equal(t, regressionArtifact, string(data))
}

type fakeEtcd map[string]string

func (f fakeEtcd) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := f[key]
	if !ok {
		return nil, fmt.Errorf("etcd key %s not found", key)
	}
	return []byte(value), nil
}

func (f fakeEtcd) Close() error { return nil }

func TestEtcdFetcher_Fetch(t *testing.T) {
	fetcher := &EtcdFetcher{
		Client: fakeEtcd{"/config/flightdelay/models/abc": regressionArtifact},
		Prefix: "/config/flightdelay/models/",
	}

	data, err := fetcher.Fetch(context.Background(), Artifact{Role: config.RoleRegression, File: "regression.json", Ref: "abc"})
	require.NoError(t, err)
	assert.Equal(t, regressionArtifact, string(data))
}

func TestCachingFetcher_InvalidDownloadIsNotCached(t *testing.T) {
	var hits atomic.Int32
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/octet-stream")
		if !healthy.Load() {
			_, _ = w.Write([]byte("<html>quota exceeded</html>"))
			return
		}
		_, _ = w.Write([]byte(regressionArtifact))
	}))
	defer server.Close()

	dir := t.TempDir()
	manifest := &config.Manifest{Source: config.SourceURL, CacheDir: dir}
	l := NewLoader(config.SourceURL, cached(manifest, NewURLFetcher(server.URL+"/uc?id={ref}")))
	artifact := Artifact{Role: config.RoleRegression, File: "regression.json", Ref: "abc123"}

	_, err := l.Load(context.Background(), artifact)
	assert.ErrorContains(t, err, "invalid model artifact")
	_, statErr := os.Stat(filepath.Join(dir, "regression.json"))
	assert.True(t, os.IsNotExist(statErr))

	healthy.Store(true)
	model, err := l.Load(context.Background(), artifact)
	require.NoError(t, err)
	assert.Equal(t, "regression_model", model.Name())
	assert.Equal(t, int32(2), hits.Load())

	// served from the cache now
	_, err = l.Load(context.Background(), artifact)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCachingFetcher_ReplacesCorruptCachedFile(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(regressionArtifact))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "regression.json")
	require.NoError(t, os.WriteFile(path, []byte("<html>virus scan warning</html>"), 0o644))

	fetcher := cached(&config.Manifest{CacheDir: dir}, NewURLFetcher(server.URL+"/{ref}"))
	data, err := fetcher.Fetch(context.Background(), Artifact{Role: config.RoleRegression, File: "regression.json", Ref: "x"})
	require.NoError(t, err)
	assert.Equal(t, regressionArtifact, string(data))
	assert.Equal(t, int32(1), hits.Load())

	cachedData, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, regressionArtifact, string(cachedData))
}

func TestURLFetcher_RejectsHTMLPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>Google Drive can't scan this file for viruses</html>"))
	}))
	defer server.Close()

	_, err := NewURLFetcher(server.URL+"/uc?id={ref}").Fetch(context.Background(),
		Artifact{Role: config.RoleRegression, File: "regression.json", Ref: "abc123"})
	assert.ErrorContains(t, err, "confirmation")
}
