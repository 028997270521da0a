package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"floorplan/internal/planner/models"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port           string  `envconfig:"PORT" default:"3003"`
	Environment    string  `envconfig:"ENV" default:"development"`
	ReadTimeout    int     `envconfig:"READ_TIMEOUT" default:"10"`
	WriteTimeout   int     `envconfig:"WRITE_TIMEOUT" default:"10"`
	DBPath         string  `envconfig:"PLANNER_DB_PATH" default:"data/db/planner.db"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"*"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	TolerancesFile string  `envconfig:"TOLERANCES_FILE"`
	ImportScaleMM  float64 `envconfig:"IMPORT_SCALE_MM" default:"10"`
	GridSizeMM     float64 `envconfig:"GRID_SIZE_MM" default:"0"`
}

// Load загружает конфигурацию из переменных окружения.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

// Origins разбирает ALLOWED_ORIGINS (через запятую).
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Tolerances читает допуски из TOLERANCES_FILE поверх значений по умолчанию.
// Без файла возвращаются значения по умолчанию.
func (c *Config) Tolerances() (models.Tolerances, error) {
	return LoadTolerances(c.TolerancesFile)
}

// LoadTolerances читает TOML-файл допусков. Отсутствующие ключи сохраняют значения по умолчанию.
func LoadTolerances(path string) (models.Tolerances, error) {
	tol := models.DefaultTolerances()
	if path == "" {
		return tol, nil
	}

	if _, err := toml.DecodeFile(path, &tol); err != nil {
		return models.Tolerances{}, fmt.Errorf("decode tolerances %s: %w", path, err)
	}
	if err := tol.Validate(); err != nil {
		return models.Tolerances{}, fmt.Errorf("tolerances %s: %w", path, err)
	}
	return tol, nil
}
