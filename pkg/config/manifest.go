package config

import "fmt"

// model sources
const (
	SourceFile      = "file"
	SourceURL       = "url"
	SourceDrive     = "drive"
	SourceGCS       = "gcs"
	SourceEtcd      = "etcd"
	SourceZookeeper = "zookeeper"
)

// model roles
const (
	RoleRegression       = "regression"
	RoleClassification   = "classification"
	RoleGradientBoosting = "gradient_boosting"
	RoleClustering       = "clustering"
	RolePreprocessor     = "preprocessor"
)

var RequiredRoles = []string{RoleRegression, RoleClassification, RoleGradientBoosting}

type Manifest struct {
	Source      string                `koanf:"source"`
	Directory   string                `koanf:"directory"`
	CacheDir    string                `koanf:"cache_dir"`
	URLTemplate string                `koanf:"url_template"`
	Drive       DriveSource           `koanf:"drive"`
	GCS         GCSSource             `koanf:"gcs"`
	Etcd        PrefixSource          `koanf:"etcd"`
	Zookeeper   PrefixSource          `koanf:"zookeeper"`
	Models      map[string]ModelEntry `koanf:"models"`
}

type DriveSource struct {
	CredentialsFile string `koanf:"credentials_file"`
	TokenFile       string `koanf:"token_file"`
}

type GCSSource struct {
	Bucket string `koanf:"bucket"`
	Prefix string `koanf:"prefix"`
}

type PrefixSource struct {
	Prefix string `koanf:"prefix"`
}

// ModelEntry names one artifact: File is its local/cache file name, Ref its
// identifier in the remote source (Drive file id, object name, key).
type ModelEntry struct {
	File string `koanf:"file"`
	Ref  string `koanf:"ref"`
}

func (m *Manifest) Entry(role string) (ModelEntry, bool) {
	entry, ok := m.Models[role]
	if !ok || (entry.File == "" && entry.Ref == "") {
		return ModelEntry{}, false
	}
	return entry, true
}

// ClusteringConfigured reports whether both halves of the clustering stage are present.
func (m *Manifest) ClusteringConfigured() bool {
	_, clustering := m.Entry(RoleClustering)
	_, preprocessor := m.Entry(RolePreprocessor)
	return clustering && preprocessor
}

func (m *Manifest) Validate() error {
	switch m.Source {
	case SourceFile, SourceURL, SourceDrive, SourceGCS, SourceEtcd, SourceZookeeper:
	default:
		return fmt.Errorf("unsupported model source %q", m.Source)
	}
	for _, role := range RequiredRoles {
		if _, ok := m.Entry(role); !ok {
			return fmt.Errorf("model manifest has no entry for %s", role)
		}
	}
	_, clustering := m.Entry(RoleClustering)
	_, preprocessor := m.Entry(RolePreprocessor)
	if clustering != preprocessor {
		return fmt.Errorf("clustering stage needs both %s and %s entries", RoleClustering, RolePreprocessor)
	}
	if m.Source == SourceGCS && m.GCS.Bucket == "" {
		return fmt.Errorf("gcs source needs a bucket")
	}
	return nil
}
