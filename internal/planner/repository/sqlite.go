// Package repository хранит шаблоны фигур в SQLite.
package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"floorplan/internal/planner/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound: запрошенной записи нет.
var ErrNotFound = errors.New("not found")

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init применяет встроенные миграции по порядку имен файлов.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Ping проверяет доступность базы (для /health/ready).
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ListTemplates возвращает шаблоны проекта в порядке создания.
func (r *Repository) ListTemplates(ctx context.Context, projectID string) ([]models.Template, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, project_id, name, shapes, created_at
        FROM templates
        WHERE project_id = ?
        ORDER BY created_at, id
    `, projectID)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	out := []models.Template{}
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return out, nil
}

func (r *Repository) GetTemplate(ctx context.Context, projectID, id string) (models.Template, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, project_id, name, shapes, created_at
        FROM templates
        WHERE project_id = ? AND id = ?
    `, projectID, id)

	tpl, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Template{}, ErrNotFound
	}
	return tpl, err
}

// SaveTemplate сохраняет новый шаблон. Пустой ID заменяется на uuid, CreatedAt на текущее время.
func (r *Repository) SaveTemplate(ctx context.Context, tpl models.Template) (models.Template, error) {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = r.now().UTC()
	}
	if tpl.Shapes == nil {
		tpl.Shapes = []models.Shape{}
	}

	shapes, err := json.Marshal(tpl.Shapes)
	if err != nil {
		return models.Template{}, fmt.Errorf("encode shapes: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO templates (id, project_id, name, shapes, created_at)
        VALUES (?, ?, ?, ?, ?)
    `, tpl.ID, tpl.ProjectID, tpl.Name, string(shapes), tpl.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return models.Template{}, fmt.Errorf("insert template: %w", err)
	}
	return tpl, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(s scanner) (models.Template, error) {
	var (
		tpl       models.Template
		shapes    string
		createdAt string
	)
	if err := s.Scan(&tpl.ID, &tpl.ProjectID, &tpl.Name, &shapes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Template{}, err
		}
		return models.Template{}, fmt.Errorf("scan template: %w", err)
	}

	if err := json.Unmarshal([]byte(shapes), &tpl.Shapes); err != nil {
		return models.Template{}, fmt.Errorf("decode shapes of template %s: %w", tpl.ID, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Template{}, fmt.Errorf("parse created_at of template %s: %w", tpl.ID, err)
	}
	tpl.CreatedAt = ts
	return tpl, nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
