package syncconfig

import (
	"fmt"

	"github.com/panefs/syncengine/pkg/comparison"
	"github.com/panefs/syncengine/pkg/encoding"
	"github.com/panefs/syncengine/pkg/hashing"
	"github.com/panefs/syncengine/pkg/syncengine"
)

// Configuration is the on-disk representation of default SyncOptions,
// loaded from a YAML file. All fields are optional; zero values resolve to
// the same defaults SyncOptions itself resolves to.
type Configuration struct {
	// Move indicates whether sources should be deleted after a fully
	// successful copy to every destination.
	Move bool `yaml:"move"`
	// CompareMethod names the skip policy; see comparison.Method.
	CompareMethod string `yaml:"compareMethod"`
	// HashAlgorithm names the digest algorithm; see hashing.Algorithm.
	HashAlgorithm string `yaml:"hashAlgorithm"`
	// VerifyDestination enables post-copy digest verification.
	VerifyDestination bool `yaml:"verifyDestination"`
	// Threshold is the store monitor's consecutive-error threshold before a
	// store is marked unavailable. Zero selects storemonitor.DefaultThreshold.
	Threshold int `yaml:"threshold"`
	// Labels carries arbitrary caller-supplied metadata (e.g. profile name,
	// owning team) that travels with the configuration for logging purposes.
	// It has no effect on sync behavior.
	Labels map[string]string `yaml:"labels"`
}

// Load reads and strictly decodes a Configuration from path.
func Load(path string) (*Configuration, error) {
	configuration := &Configuration{}
	if err := encoding.LoadAndUnmarshalYAML(path, configuration); err != nil {
		return nil, err
	}
	if err := configuration.EnsureValid(); err != nil {
		return nil, err
	}
	return configuration, nil
}

// EnsureValid validates that any non-empty enum-like fields name a
// recognized value. Empty strings are valid and mean "use the default."
func (c *Configuration) EnsureValid() error {
	if c.CompareMethod != "" {
		var method comparison.Method
		if err := method.UnmarshalText([]byte(c.CompareMethod)); err != nil {
			return fmt.Errorf("invalid compareMethod: %w", err)
		}
	}
	if c.HashAlgorithm != "" {
		var algorithm hashing.Algorithm
		if err := algorithm.UnmarshalText([]byte(c.HashAlgorithm)); err != nil {
			return fmt.Errorf("invalid hashAlgorithm: %w", err)
		}
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative")
	}
	return nil
}

// ToSyncOptions converts the configuration into syncengine.SyncOptions,
// leaving fields at their zero value (and thus their engine-level default)
// when the corresponding YAML field was empty.
func (c *Configuration) ToSyncOptions() syncengine.SyncOptions {
	options := syncengine.SyncOptions{
		Move:              c.Move,
		VerifyDestination: c.VerifyDestination,
		Threshold:         c.Threshold,
	}

	if c.CompareMethod != "" {
		var method comparison.Method
		method.UnmarshalText([]byte(c.CompareMethod))
		options.CompareMethod = method
	}
	if c.HashAlgorithm != "" {
		var algorithm hashing.Algorithm
		algorithm.UnmarshalText([]byte(c.HashAlgorithm))
		options.HashAlgorithm = algorithm
		options.HasHashAlgorithm = true
	}

	return options
}

// Equal reports whether two configurations hold the same field values,
// including labels. Enum-like fields are compared as written, so "" and
// "size-mtime" compare unequal even though both select the same method. It
// avoids relying on struct comparability of the Labels map.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Move == other.Move &&
		c.CompareMethod == other.CompareMethod &&
		c.HashAlgorithm == other.HashAlgorithm &&
		c.VerifyDestination == other.VerifyDestination &&
		c.Threshold == other.Threshold &&
		comparison.StringMapsEqual(c.Labels, other.Labels)
}
