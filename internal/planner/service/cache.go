// Package service содержит состояние, которым владеет сервер планировщика.
package service

import (
	"context"
	"fmt"
	"sync"

	"floorplan/internal/planner/models"
)

// TemplateSource: откуда кэш загружает шаблоны проекта.
type TemplateSource interface {
	ListTemplates(ctx context.Context, projectID string) ([]models.Template, error)
}

// ============================================================
// Template Cache
// ============================================================

// TemplateCache хранит шаблоны по проектам до явной инвалидации.
type TemplateCache struct {
	mu       sync.Mutex
	source   TemplateSource
	projects map[string][]models.Template
}

func NewTemplateCache(source TemplateSource) *TemplateCache {
	return &TemplateCache{
		source:   source,
		projects: make(map[string][]models.Template),
	}
}

// Get возвращает шаблоны проекта, загружая их из источника при промахе.
func (c *TemplateCache) Get(ctx context.Context, projectID string) ([]models.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if list, ok := c.projects[projectID]; ok {
		return list, nil
	}

	list, err := c.source.ListTemplates(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load templates of project %s: %w", projectID, err)
	}
	c.projects[projectID] = list
	return list, nil
}

// Find ищет шаблон проекта по id через кэш.
func (c *TemplateCache) Find(ctx context.Context, projectID, id string) (models.Template, bool, error) {
	list, err := c.Get(ctx, projectID)
	if err != nil {
		return models.Template{}, false, err
	}
	for _, tpl := range list {
		if tpl.ID == id {
			return tpl, true, nil
		}
	}
	return models.Template{}, false, nil
}

func (c *TemplateCache) Invalidate(projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.projects, projectID)
}

func (c *TemplateCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.projects = make(map[string][]models.Template)
}
