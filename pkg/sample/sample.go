package sample

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Supported element kinds.
const (
	KindInt    = "int"
	KindFloat  = "float"
	KindString = "string"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

var (
	errUnsupportedKind     = errors.New("unsupported sample kind, supported values are: int, float, string")
	errNegativeCount       = errors.New("the sample count must not be negative")
	errInvalidRange        = errors.New("the sample max must be greater than the sample min")
	errRangeOverflow       = errors.New("the distance between the sample min and max must fit in an int")
	errInvalidStringLength = errors.New("the sample string length must be greater than 0")
)

// Config configures where the values to sort come from.
type Config struct {
	Kind         string `yaml:"kind"`
	Count        int    `yaml:"count"`
	Min          int    `yaml:"min"`
	Max          int    `yaml:"max"`
	StringLength int    `yaml:"string_length"`
	Seed         int64  `yaml:"seed"`
	File         string `yaml:"file"`
}

// RegisterFlags adds the flags required to config this to the given FlagSet.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&cfg.Kind, "sample.kind", KindInt, "Type of the values to sort. Supported values are: int, float, string.")
	f.IntVar(&cfg.Count, "sample.count", 15, "Number of random values to generate.")
	f.IntVar(&cfg.Min, "sample.min", 0, "Lower bound (inclusive) of generated int and float values.")
	f.IntVar(&cfg.Max, "sample.max", 100, "Upper bound (exclusive) of generated int and float values.")
	f.IntVar(&cfg.StringLength, "sample.string-length", 6, "Length of generated string values.")
	f.Int64Var(&cfg.Seed, "sample.seed", 0, "Seed for the random generator. 0 seeds from the current time.")
	f.StringVar(&cfg.File, "sample.file", "", "YAML file holding a list of values to sort. When set, no values are generated.")
}

// Validate the config.
func (cfg *Config) Validate() error {
	switch cfg.Kind {
	case KindInt, KindFloat, KindString:
	default:
		return errUnsupportedKind
	}

	// Generator settings don't matter when values are read from a file.
	if cfg.File != "" {
		return nil
	}
	if cfg.Count < 0 {
		return errNegativeCount
	}
	if cfg.Kind != KindString && cfg.Max <= cfg.Min {
		return errInvalidRange
	}
	// Ints are drawn from r.Intn(max-min), which must not overflow.
	if cfg.Kind == KindInt && cfg.Max-cfg.Min <= 0 {
		return errRangeOverflow
	}
	if cfg.Kind == KindString && cfg.StringLength <= 0 {
		return errInvalidStringLength
	}
	return nil
}

// Ints returns the int values described by the config.
func (cfg *Config) Ints() ([]int, error) {
	if cfg.File != "" {
		return Load[int](cfg.File)
	}
	return GenerateInts(cfg.newRand(), cfg.Count, cfg.Min, cfg.Max), nil
}

// Floats returns the float values described by the config.
func (cfg *Config) Floats() ([]float64, error) {
	if cfg.File != "" {
		return Load[float64](cfg.File)
	}
	return GenerateFloats(cfg.newRand(), cfg.Count, float64(cfg.Min), float64(cfg.Max)), nil
}

// Strings returns the string values described by the config.
func (cfg *Config) Strings() ([]string, error) {
	if cfg.File != "" {
		return Load[string](cfg.File)
	}
	return GenerateStrings(cfg.newRand(), cfg.Count, cfg.StringLength), nil
}

func (cfg *Config) newRand() *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// GenerateInts returns n random ints in [min, max).
func GenerateInts(r *rand.Rand, n, min, max int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, min+r.Intn(max-min))
	}
	return out
}

// GenerateFloats returns n random floats in [min, max).
func GenerateFloats(r *rand.Rand, n int, min, max float64) []float64 {
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, min+r.Float64()*(max-min))
	}
	return out
}

// GenerateStrings returns n random lowercase strings of the given length.
func GenerateStrings(r *rand.Rand, n, length int) []string {
	out := make([]string, 0, n)
	b := make([]byte, length)
	for i := 0; i < n; i++ {
		for j := range b {
			b[j] = letters[r.Intn(len(letters))]
		}
		out = append(out, string(b))
	}
	return out
}

// Load reads a YAML list of values from filename.
func Load[T any](filename string) ([]T, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading sample file")
	}

	var values []T
	if err := yaml.UnmarshalStrict(buf, &values); err != nil {
		return nil, errors.Wrapf(err, "Error parsing sample file %s", filename)
	}
	return values, nil
}
