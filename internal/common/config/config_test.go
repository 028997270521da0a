package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan/internal/planner/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3003", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, 10.0, cfg.ImportScaleMM)
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("GRID_SIZE_MM", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 50.0, cfg.GridSizeMM)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tolerances.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTolerances(t *testing.T) {
	tol, err := LoadTolerances("")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTolerances(), tol)

	tol, err = LoadTolerances(writeFile(t, "connect_mm = 10\nsnap_distance_mm = 300\n"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, tol.Connect)
	assert.Equal(t, 300.0, tol.SnapDistance)
	assert.Equal(t, models.DefaultTolerances().GapLength, tol.GapLength)
}

func TestLoadTolerances_Invalid(t *testing.T) {
	_, err := LoadTolerances(writeFile(t, "angle_degrees = 120\n"))
	assert.Error(t, err)

	_, err = LoadTolerances(writeFile(t, "connect_mm = -1\n"))
	assert.Error(t, err)

	_, err = LoadTolerances(writeFile(t, "connect_mm = \n"))
	assert.Error(t, err)

	_, err = LoadTolerances(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
