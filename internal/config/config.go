// Package config provides the declarative ConfigModel: the collection
// description that binds logical vector fields to physical Solr fields and
// retrieval kinds, plus the Solr and embedding-service endpoints.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/solr-hybrid/searchgw/internal/gwerrors"
)

// VectorFieldKind is the retrieval kind of a logical vector field.
type VectorFieldKind string

const (
	KindInline          VectorFieldKind = "INLINE"
	KindEmbeddedDoc     VectorFieldKind = "EMBEDDED_DOC"
	KindChildCollection VectorFieldKind = "CHILD_COLLECTION"
)

// VectorFieldInfo describes one logical vector field: its physical Solr
// field, its retrieval kind, and the defaults used when a request doesn't
// override them.
type VectorFieldInfo struct {
	Name            string          `yaml:"name" json:"name"`
	SolrFieldName   string          `yaml:"solrFieldName" json:"solrFieldName"`
	Kind            VectorFieldKind `yaml:"kind" json:"kind"`
	DefaultTopK     int             `yaml:"defaultTopK" json:"defaultTopK"`
	ChunkCollection string          `yaml:"chunkCollection,omitempty" json:"chunkCollection,omitempty"`
	EmbeddingSource string          `yaml:"embeddingSource" json:"embeddingSource"`
}

func (f VectorFieldInfo) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return configError("vector field: name must not be empty")
	}
	if strings.TrimSpace(f.SolrFieldName) == "" {
		return configError(fmt.Sprintf("vector field %q: solrFieldName must not be empty", f.Name))
	}
	switch f.Kind {
	case KindInline, KindEmbeddedDoc, KindChildCollection:
	default:
		return configError(fmt.Sprintf("vector field %q: kind must be INLINE, EMBEDDED_DOC, or CHILD_COLLECTION, got %q", f.Name, f.Kind))
	}
	if f.DefaultTopK <= 0 {
		return configError(fmt.Sprintf("vector field %q: defaultTopK must be > 0, got %d", f.Name, f.DefaultTopK))
	}
	if f.Kind == KindChildCollection && strings.TrimSpace(f.ChunkCollection) == "" {
		return configError(fmt.Sprintf("vector field %q: chunkCollection is required for kind CHILD_COLLECTION", f.Name))
	}
	if f.Kind != KindChildCollection && f.ChunkCollection != "" {
		return configError(fmt.Sprintf("vector field %q: chunkCollection must be empty unless kind is CHILD_COLLECTION", f.Name))
	}
	return nil
}

// CollectionConfig is the declarative description of one Solr collection:
// its keyword-searchable fields, default field projection, default
// sort/rows, and its registry of logical vector fields.
type CollectionConfig struct {
	CollectionName         string                      `yaml:"collectionName" json:"collectionName"`
	KeywordQueryFields     []string                    `yaml:"keywordQueryFields" json:"keywordQueryFields"`
	DefaultInclusionFields []string                    `yaml:"defaultInclusionFields" json:"defaultInclusionFields"`
	DefaultExclusionFields []string                    `yaml:"defaultExclusionFields" json:"defaultExclusionFields"`
	DefaultRows            int                         `yaml:"defaultRows" json:"defaultRows"`
	DefaultSort            string                      `yaml:"defaultSort" json:"defaultSort"`
	VectorFields           map[string]VectorFieldInfo  `yaml:"vectorFields" json:"vectorFields"`
}

func (c CollectionConfig) validate() error {
	if strings.TrimSpace(c.CollectionName) == "" {
		return configError("collectionName must not be empty")
	}
	if c.DefaultRows <= 0 {
		return configError(fmt.Sprintf("defaultRows must be > 0, got %d", c.DefaultRows))
	}
	if strings.TrimSpace(c.DefaultSort) == "" {
		return configError("defaultSort must not be empty")
	}
	if len(c.KeywordQueryFields) == 0 {
		return gwerrors.FailedPrecondition(gwerrors.ErrCodeNoKeywordFields,
			"keywordQueryFields must not be empty: at least one default keyword field is required at startup", nil)
	}
	for name, field := range c.VectorFields {
		if field.Name == "" {
			field.Name = name
		}
		if field.Name != name {
			return configError(fmt.Sprintf("vectorFields key %q does not match field.name %q", name, field.Name))
		}
		if err := field.validate(); err != nil {
			return err
		}
	}
	return nil
}

// configError wraps a startup validation failure as a failed-precondition
// GatewayError (§C1).
func configError(message string) error {
	return gwerrors.FailedPrecondition(gwerrors.ErrCodeConfigInvalid, message, nil)
}

// EmbeddingServiceConfig configures the outbound embedding backend (C2).
type EmbeddingServiceConfig struct {
	Address    string        `yaml:"address" json:"address"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	MaxRetries int           `yaml:"maxRetries" json:"maxRetries"`
	CacheSize  int           `yaml:"cacheSize" json:"cacheSize"`
}

// SolrConfig configures the outbound Solr collaborator.
type SolrConfig struct {
	URL     string        `yaml:"url" json:"url"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ServerConfig configures ambient concerns (logging, transport).
type ServerConfig struct {
	LogLevel    string `yaml:"logLevel" json:"logLevel"`
	LogFilePath string `yaml:"logFilePath" json:"logFilePath"`
	Transport   string `yaml:"transport" json:"transport"`
}

// Config is the complete gateway configuration: the ConfigModel (C1) plus
// the ambient/outbound collaborator endpoints.
type Config struct {
	Collection       CollectionConfig       `yaml:"collection" json:"collection"`
	EmbeddingService EmbeddingServiceConfig `yaml:"embeddingService" json:"embeddingService"`
	Solr             SolrConfig             `yaml:"solr" json:"solr"`
	Server           ServerConfig           `yaml:"server" json:"server"`
}

// New returns a Config populated with sensible defaults; callers should
// overlay a loaded file and environment overrides on top.
func New() *Config {
	return &Config{
		Collection: CollectionConfig{
			DefaultRows: 10,
			DefaultSort: "score desc",
		},
		EmbeddingService: EmbeddingServiceConfig{
			Timeout:    10 * time.Second,
			MaxRetries: 3,
			CacheSize:  10000,
		},
		Solr: SolrConfig{
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			LogLevel:  "info",
			Transport: "stdio",
		},
	}
}

// Load reads configuration from the YAML file at path, applies
// SEARCHGW_* environment overrides, validates the result, and returns it.
// Validation failures are fail-fast: the gateway must not start with an
// invalid ConfigModel (§4.1).
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SEARCHGW_SOLR_URL"); v != "" {
		c.Solr.URL = v
	}
	if v := os.Getenv("SEARCHGW_EMBEDDING_ADDRESS"); v != "" {
		c.EmbeddingService.Address = v
	}
	if v := os.Getenv("SEARCHGW_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
	if v := os.Getenv("SEARCHGW_TRANSPORT"); v != "" {
		c.Server.Transport = v
	}
	if v := os.Getenv("SEARCHGW_EMBEDDING_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.EmbeddingService.MaxRetries = n
		}
	}
}

// Validate enforces every ConfigModel invariant from spec §3/§4.1. It must
// be called before the gateway serves its first request (P9).
func (c *Config) Validate() error {
	if err := c.Collection.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Solr.URL) == "" {
		return configError("solr.url must not be empty")
	}
	if strings.TrimSpace(c.EmbeddingService.Address) == "" {
		return configError("embeddingService.address must not be empty")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return configError(fmt.Sprintf("server.logLevel must be debug, info, warn, or error, got %q", c.Server.LogLevel))
	}
	validTransports := map[string]bool{"stdio": true, "sse": true}
	if !validTransports[strings.ToLower(c.Server.Transport)] {
		return configError(fmt.Sprintf("server.transport must be stdio or sse, got %q", c.Server.Transport))
	}
	return nil
}
