package sample

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexproject/heapsort/pkg/util/flagext"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}
	flagext.DefaultValues(&cfg)

	assert.Equal(t, KindInt, cfg.Kind)
	assert.Equal(t, 15, cfg.Count)
	assert.Equal(t, 0, cfg.Min)
	assert.Equal(t, 100, cfg.Max)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Empty(t, cfg.File)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		setup    func(cfg *Config)
		expected error
	}{
		"default config": {
			setup:    func(*Config) {},
			expected: nil,
		},
		"unsupported kind": {
			setup:    func(cfg *Config) { cfg.Kind = "complex" },
			expected: errUnsupportedKind,
		},
		"negative count": {
			setup:    func(cfg *Config) { cfg.Count = -1 },
			expected: errNegativeCount,
		},
		"empty range": {
			setup:    func(cfg *Config) { cfg.Min, cfg.Max = 10, 10 },
			expected: errInvalidRange,
		},
		"int range wider than an int": {
			setup:    func(cfg *Config) { cfg.Min, cfg.Max = math.MinInt, 1 },
			expected: errRangeOverflow,
		},
		"widest int range": {
			setup:    func(cfg *Config) { cfg.Min, cfg.Max = math.MinInt, -1 },
			expected: nil,
		},
		"float range wider than an int": {
			setup:    func(cfg *Config) { cfg.Kind, cfg.Min, cfg.Max = KindFloat, math.MinInt, math.MaxInt },
			expected: nil,
		},
		"range is ignored for strings": {
			setup:    func(cfg *Config) { cfg.Kind, cfg.Min, cfg.Max = KindString, 10, 10 },
			expected: nil,
		},
		"zero string length": {
			setup:    func(cfg *Config) { cfg.Kind, cfg.StringLength = KindString, 0 },
			expected: errInvalidStringLength,
		},
		"generator settings are ignored when reading a file": {
			setup:    func(cfg *Config) { cfg.File, cfg.Count, cfg.Max = "values.yaml", -1, -1 },
			expected: nil,
		},
		"kind is still checked when reading a file": {
			setup:    func(cfg *Config) { cfg.File, cfg.Kind = "values.yaml", "bytes" },
			expected: errUnsupportedKind,
		},
	}

	for name, testData := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Config{}
			flagext.DefaultValues(&cfg)
			testData.setup(&cfg)

			assert.Equal(t, testData.expected, cfg.Validate())
		})
	}
}

func TestConfig_ValidatedExtremeRangesDoNotPanic(t *testing.T) {
	for _, r := range [][2]int{{math.MinInt, -1}, {0, math.MaxInt}, {-1, math.MaxInt - 1}} {
		cfg := Config{}
		flagext.DefaultValues(&cfg)
		cfg.Min, cfg.Max, cfg.Seed = r[0], r[1], 1
		require.NoError(t, cfg.Validate())

		var values []int
		require.NotPanics(t, func() {
			var err error
			values, err = cfg.Ints()
			require.NoError(t, err)
		})
		for _, v := range values {
			assert.GreaterOrEqual(t, v, r[0])
			assert.Less(t, v, r[1])
		}
	}
}

func TestGenerateInts(t *testing.T) {
	values := GenerateInts(rand.New(rand.NewSource(1)), 1000, -5, 5)

	require.Len(t, values, 1000)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, -5)
		assert.Less(t, v, 5)
	}
}

func TestGenerateFloats(t *testing.T) {
	values := GenerateFloats(rand.New(rand.NewSource(1)), 1000, 0, 1)

	require.Len(t, values, 1000)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestGenerateStrings(t *testing.T) {
	values := GenerateStrings(rand.New(rand.NewSource(1)), 50, 8)

	require.Len(t, values, 50)
	for _, v := range values {
		assert.Len(t, v, 8)
		assert.Regexp(t, "^[a-z]+$", v)
	}
}

func TestConfig_SeedIsDeterministic(t *testing.T) {
	cfg := Config{}
	flagext.DefaultValues(&cfg)
	cfg.Seed = 42

	first, err := cfg.Ints()
	require.NoError(t, err)
	second, err := cfg.Ints()
	require.NoError(t, err)

	assert.Len(t, first, 15)
	assert.Equal(t, first, second)
}

func TestConfig_ValuesFromFile(t *testing.T) {
	dir := t.TempDir()

	intsFile := filepath.Join(dir, "ints.yaml")
	require.NoError(t, os.WriteFile(intsFile, []byte("[5, 4, 3, 2, 1]\n"), 0o644))

	floatsFile := filepath.Join(dir, "floats.yaml")
	require.NoError(t, os.WriteFile(floatsFile, []byte("- 1.5\n- -2\n- 0.25\n"), 0o644))

	stringsFile := filepath.Join(dir, "strings.yaml")
	require.NoError(t, os.WriteFile(stringsFile, []byte("[pear, apple, fig]\n"), 0o644))

	cfg := Config{File: intsFile}
	ints, err := cfg.Ints()
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ints)

	cfg = Config{File: floatsFile}
	floats, err := cfg.Floats()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 0.25}, floats)

	cfg = Config{File: stringsFile}
	strs, err := cfg.Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"pear", "apple", "fig"}, strs)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load[int](filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error reading sample file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("[1, two, 3]\n"), 0o644))

	_, err = Load[int](invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error parsing sample file")
}
