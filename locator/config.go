package locator

import (
	"encoding/json"
	"math"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

const (
	defaultPointsPerBucket = 3
	defaultDivisions       = 50
	defaultTolerance       = 0.001
	defaultMaxBuckets      = 1 << 24
)

// Config describes how a Locator or Inserter lays out its grid.
type Config struct {
	// Automatic picks divisions from the point count and PointsPerBucket.
	Automatic bool `json:"automatic"`
	// Divisions is either empty or the number of buckets along x, y and z.
	Divisions       []int   `json:"divisions,omitempty"`
	PointsPerBucket int     `json:"points_per_bucket,omitempty"`
	Tolerance       float64 `json:"tolerance,omitempty"`
	MaxBuckets      int     `json:"max_buckets,omitempty"`
}

// DefaultConfig returns an automatic config with three points per bucket.
func DefaultConfig() *Config {
	return &Config{
		Automatic:       true,
		Divisions:       []int{defaultDivisions, defaultDivisions, defaultDivisions},
		PointsPerBucket: defaultPointsPerBucket,
		Tolerance:       defaultTolerance,
		MaxBuckets:      defaultMaxBuckets,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if len(cfg.Divisions) != 0 && len(cfg.Divisions) != 3 {
		err = multierr.Append(err, errors.Errorf("divisions must have 3 entries, got %d", len(cfg.Divisions)))
	}
	for i, d := range cfg.Divisions {
		if d < 0 {
			err = multierr.Append(err, errors.Errorf("divisions[%d] must not be negative, got %d", i, d))
		}
	}
	if !cfg.Automatic && len(cfg.Divisions) == 0 {
		err = multierr.Append(err, goutils.NewConfigValidationFieldRequiredError(path, "divisions"))
	}
	if cfg.PointsPerBucket < 0 {
		err = multierr.Append(err, errors.Errorf("points_per_bucket must not be negative, got %d", cfg.PointsPerBucket))
	}
	if cfg.Tolerance < 0 {
		err = multierr.Append(err, errors.Errorf("tolerance must not be negative, got %v", cfg.Tolerance))
	}
	if math.IsNaN(cfg.Tolerance) || math.IsInf(cfg.Tolerance, 0) {
		err = multierr.Append(err, errors.Errorf("tolerance must be finite, got %v", cfg.Tolerance))
	}
	if cfg.MaxBuckets < 0 {
		err = multierr.Append(err, errors.Errorf("max_buckets must not be negative, got %d", cfg.MaxBuckets))
	}
	if err != nil {
		return goutils.NewConfigValidationError(path, err)
	}
	return nil
}

// withDefaults returns a copy of cfg where zero values are replaced by the defaults.
func (cfg *Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg == nil {
		return *def
	}
	out := *cfg
	out.Divisions = append([]int(nil), cfg.Divisions...)
	if len(out.Divisions) != 3 {
		out.Divisions = def.Divisions
	}
	if out.PointsPerBucket <= 0 {
		out.PointsPerBucket = def.PointsPerBucket
	}
	if out.Tolerance < 0 || math.IsNaN(out.Tolerance) {
		out.Tolerance = 0
	}
	if out.MaxBuckets <= 0 {
		out.MaxBuckets = def.MaxBuckets
	}
	return out
}

// NewConfigFromAttributes decodes a loosely typed attribute map, such as one read from a larger
// JSON document, into a Config. Keys that don't name a Config field are an error.
func NewConfigFromAttributes(attributes map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()
	// attributes replace the default divisions rather than merging into them
	if _, ok := attributes["divisions"]; ok {
		cfg.Divisions = nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode locator attributes")
	}
	return cfg, nil
}

// ReadConfig reads a JSON config from path and validates it. Fields missing from the file keep
// their default values.
func ReadConfig(path string) (*Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read locator config %q", path)
	}
	cfg := DefaultConfig()
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "cannot parse locator config %q", path)
	}
	if _, ok := raw["divisions"]; ok {
		cfg.Divisions = nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse locator config %q", path)
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}
