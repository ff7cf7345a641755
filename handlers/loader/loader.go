package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/internal/errors"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/config"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/metrics"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/mlmodel"
)

// Artifact identifies one model artifact in a source.
type Artifact struct {
	Role string
	File string
	Ref  string
}

// RemoteName is the identifier used by remote sources, falling back to the file name.
func (a Artifact) RemoteName() string {
	if a.Ref != "" {
		return a.Ref
	}
	return a.File
}

// Fetcher returns the raw bytes of a model artifact.
type Fetcher interface {
	Fetch(ctx context.Context, artifact Artifact) ([]byte, error)
}

// Loader turns fetched artifacts into model objects. The gateway never sees
// which Fetcher was used.
type Loader struct {
	fetcher Fetcher
	source  string
}

func NewLoader(source string, fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher, source: source}
}

func (l *Loader) Load(ctx context.Context, artifact Artifact) (mlmodel.Model, error) {
	tags := []string{"source:" + l.source, "model:" + artifact.Role}
	t := time.Now()
	data, err := l.fetcher.Fetch(ctx, artifact)
	if err != nil {
		metrics.Count("flightdelay.model.load.error", 1, tags)
		return nil, &errors.ModelUnavailableError{Model: artifact.Role, Err: err}
	}
	model, err := mlmodel.Decode(data)
	if err != nil {
		metrics.Count("flightdelay.model.load.error", 1, tags)
		return nil, &errors.ModelUnavailableError{Model: artifact.Role, Err: err}
	}
	metrics.Timing("flightdelay.model.load.latency", time.Since(t), tags)
	logger.Info(fmt.Sprintf("Loaded %s model %s (%s) from %s", artifact.Role, model.Name(), model.Kind(), l.source))
	return model, nil
}

func artifactFor(manifest *config.Manifest, role string) (Artifact, bool) {
	entry, ok := manifest.Entry(role)
	if !ok {
		return Artifact{}, false
	}
	return Artifact{Role: role, File: entry.File, Ref: entry.Ref}, true
}

// LoadModelSet loads every model named by the manifest. Any failure is a
// ModelUnavailableError; callers treat it as fatal.
func LoadModelSet(ctx context.Context, l *Loader, manifest *config.Manifest) (*mlmodel.Set, error) {
	set := &mlmodel.Set{}
	for _, role := range config.RequiredRoles {
		artifact, ok := artifactFor(manifest, role)
		if !ok {
			return nil, &errors.ModelUnavailableError{Model: role, Err: fmt.Errorf("no manifest entry")}
		}
		model, err := l.Load(ctx, artifact)
		if err != nil {
			return nil, err
		}
		switch role {
		case config.RoleRegression:
			set.Regression, ok = model.(mlmodel.Regressor)
		case config.RoleClassification:
			set.Classification, ok = model.(mlmodel.Classifier)
		case config.RoleGradientBoosting:
			set.GradientBoosting, ok = model.(mlmodel.Regressor)
		}
		if !ok {
			return nil, capabilityError(role, model)
		}
	}

	if manifest.ClusteringConfigured() {
		artifact, _ := artifactFor(manifest, config.RolePreprocessor)
		model, err := l.Load(ctx, artifact)
		if err != nil {
			return nil, err
		}
		transformer, ok := model.(mlmodel.Transformer)
		if !ok {
			return nil, capabilityError(config.RolePreprocessor, model)
		}

		artifact, _ = artifactFor(manifest, config.RoleClustering)
		model, err = l.Load(ctx, artifact)
		if err != nil {
			return nil, err
		}
		clusterer, ok := model.(mlmodel.Clusterer)
		if !ok {
			return nil, capabilityError(config.RoleClustering, model)
		}
		set.Preprocessor, set.Clustering = transformer, clusterer
	}

	if err := set.Validate(); err != nil {
		return nil, &errors.ModelUnavailableError{Model: "model-set", Err: err}
	}
	loaded := len(config.RequiredRoles)
	if set.ClusteringConfigured() {
		loaded += 2
	}
	metrics.Gauge("flightdelay.model.loaded", float64(loaded), []string{"source:" + l.source})
	return set, nil
}

func capabilityError(role string, model mlmodel.Model) error {
	return &errors.ModelUnavailableError{
		Model: role,
		Err:   fmt.Errorf("a %s artifact cannot serve the %s stage", model.Kind(), role),
	}
}
