package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath/authkit/pkg/config"
)

type testConfig struct {
	Host    string        `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Port    int           `env:"TEST_CFG_PORT" envDefault:"5432"`
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"5s"`
	Secret  string        `env:"TEST_CFG_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults and env values", func(t *testing.T) {
		t.Setenv("TEST_CFG_PORT", "6543")
		t.Setenv("TEST_CFG_SECRET", "hunter2")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 6543, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "hunter2", cfg.Secret)
	})

	t.Run("missing required variable", func(t *testing.T) {
		// The required tag trips on absence, not emptiness, so the
		// variable must be genuinely unset. t.Setenv registers the
		// restore before the unset.
		t.Setenv("TEST_CFG_SECRET", "placeholder")
		require.NoError(t, os.Unsetenv("TEST_CFG_SECRET"))

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoadPanics(t *testing.T) {
	t.Setenv("TEST_CFG_SECRET", "placeholder")
	require.NoError(t, os.Unsetenv("TEST_CFG_SECRET"))

	assert.Panics(t, func() {
		var cfg testConfig
		config.MustLoad(&cfg)
	})
}
