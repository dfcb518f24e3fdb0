package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maple-budget/maple/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default(model.ProvinceBC)
	cfg.Server.Addr = "127.0.0.1:9000"
	cfg.Coach.FollowUpDays = 14

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", got.Server.Addr)
	assert.Equal(t, "X-User-Email", got.Server.UserHeader)
	assert.Equal(t, "BC", got.Defaults.Province)
	assert.Equal(t, model.ProvinceBC, got.Province())
	assert.Equal(t, 2024, got.Defaults.TaxYear)
	assert.Equal(t, 14, got.Coach.FollowUpDays)
	assert.InDelta(t, 0.7, got.Coach.Temperature, 0.001)
	assert.Equal(t, int32(3000), got.Coach.MaxOutputTokens)
	assert.Equal(t, "info", got.Logging.Level)
	require.NoError(t, got.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := Default(model.ProvinceON)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 90*time.Second, cfg.WriteTimeout())
	assert.Equal(t, "maple.db", cfg.Database.Path)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Coach.APIKeyEnv)
	assert.False(t, cfg.Logging.Development)
	// not loaded from disk, so paths stay as written
	assert.Equal(t, "maple.db", cfg.DatabasePath())
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(model.ProvinceON)
	cfg.Data.ActivityLog = "/var/log/maple/activity.csv"
	path := filepath.Join(dir, FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "maple.db"), got.DatabasePath())
	assert.Equal(t, filepath.Join(dir, "categories.csv"), got.CategoriesPath())
	assert.Equal(t, dir, got.DataDir())
	assert.Equal(t, "/var/log/maple/activity.csv", got.ActivityLogPath())
}

func TestValidate(t *testing.T) {
	cfg := Default(model.ProvinceON)
	cfg.Server.Addr = ""
	cfg.Database.Path = " "
	cfg.Defaults.Province = "ZZ"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	var verrs model.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field
	}
	assert.Equal(t, []string{"server.addr", "database.path", "defaults.province", "logging.level"}, fields)
}

func TestCoachAPIKey(t *testing.T) {
	cfg := Default(model.ProvinceON)
	cfg.Coach.APIKeyEnv = "MAPLE_TEST_COACH_KEY"
	t.Setenv("MAPLE_TEST_COACH_KEY", "secret")
	assert.Equal(t, "secret", cfg.CoachAPIKey())

	cfg.Coach.APIKeyEnv = ""
	assert.Empty(t, cfg.CoachAPIKey())
}

func TestSaveWritesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default(model.ProvinceQC)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "province: QC")
	assert.Contains(t, contents, "user_header: X-User-Email")
	assert.Contains(t, contents, "api_key_env: GEMINI_API_KEY")
	assert.Contains(t, contents, "activity_log: activity.csv")
}
