package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test; t.Chdir needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInitializeConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "Categories.csv", cfg.Files.Categories)
	assert.Equal(t, "keywords.yaml", cfg.Files.Keywords)
	assert.Equal(t, "MonthlySpending.xlsx", cfg.Files.Workbook)
	assert.Equal(t, "Data", cfg.Files.DataDir)
	assert.Equal(t, "Uncategorized", cfg.Categorization.DefaultCategory)
	assert.Equal(t, "payment", cfg.Categorization.PaymentMarker)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BUDGET_LOG_LEVEL", "debug")
	t.Setenv("BUDGET_FILES_CATEGORIES", "/tmp/cats.csv")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/cats.csv", cfg.Files.Categories)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.CSV.Delimiter = ","
		cfg.Files.Categories = "Categories.csv"
		cfg.Categorization.DefaultCategory = "Uncategorized"
		return cfg
	}

	assert.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.Log.Level = "verbose"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Log.Format = "xml"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.CSV.Delimiter = ";;"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Files.Categories = ""
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Categorization.DefaultCategory = ""
	assert.Error(t, validateConfig(cfg))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestConfigureLoggingFromConfigBadLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "nope"
	cfg.Log.Format = "text"

	logger := ConfigureLoggingFromConfig(cfg)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BUDGET_TEST_KEY", "value")

	assert.Equal(t, "value", GetEnv("BUDGET_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BUDGET_TEST_MISSING", "fallback"))
}
