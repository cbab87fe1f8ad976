package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mindforge/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                ":8080",
		DBPath:              "test.db",
		LogLevel:            "INFO",
		SessionSize:         10,
		RevisionBias:        0.7,
		StudySetSize:        10,
		PlannerSafetyFactor: 5,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_RevisionBias(t *testing.T) {
	tests := []struct {
		name    string
		bias    float64
		wantErr bool
	}{
		{name: "never revise", bias: 0, wantErr: false},
		{name: "default", bias: 0.7, wantErr: false},
		{name: "always revise", bias: 1, wantErr: false},
		{name: "negative", bias: -0.1, wantErr: true},
		{name: "above one", bias: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.RevisionBias = tt.bias

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "REVISION_BIAS")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := validConfig()
	cfg.LogLevel = "LOUD"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel:            "INVALID",
		SessionSize:         0,
		RevisionBias:        2,
		StudySetSize:        0,
		PlannerSafetyFactor: 0,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "SESSION_SIZE")
	assert.Contains(t, errStr, "REVISION_BIAS")
	assert.Contains(t, errStr, "STUDY_SET_SIZE")
	assert.Contains(t, errStr, "PLANNER_SAFETY_FACTOR")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("REVISION_BIAS", "0.5")
	t.Setenv("PLANNER_SAFETY_FACTOR", "8")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 0.5, cfg.RevisionBias)
	assert.Equal(t, 8, cfg.PlannerSafetyFactor)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SESSION_SIZE", "lots")
	t.Setenv("REVISION_BIAS", "often")

	cfg := config.Load()

	assert.Equal(t, 10, cfg.SessionSize)
	assert.Equal(t, 0.7, cfg.RevisionBias)
}
