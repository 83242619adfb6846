package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"anoa.com/edusphere/internal/entity"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	classesIndex       = "classes"
	defaultSearchLimit = 20
)

// ClassSearch keeps accepted classes searchable. Without a meilisearch client
// it falls back to a title match against the store.
type ClassSearch interface {
	IndexClass(ctx context.Context, class *entity.Class) error
	RemoveClass(ctx context.Context, id uuid.UUID) error
	SearchClasses(ctx context.Context, query string, limit int) ([]*entity.Class, error)
	// Reindex pushes every accepted class, refreshing counters that drift
	// between status changes. It returns the number of classes indexed.
	Reindex(ctx context.Context) (int, error)
}

type classSearch struct {
	client    meilisearch.ServiceManager
	classRepo classRepo.ClassRepository
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

func NewClassSearch(client meilisearch.ServiceManager, classRepo classRepo.ClassRepository, logger *zap.Logger) ClassSearch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &classSearch{
		client:    client,
		classRepo: classRepo,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

type classDoc struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	OwnerName   string  `json:"owner_name"`
	Price       float64 `json:"price"`
	EnrollCount int64   `json:"enroll_count"`
	CreatedAt   int64   `json:"created_at"`
}

type searchHits struct {
	Hits []classDoc `json:"hits"`
}

func (s *classSearch) plainText(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	cleanText := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *classSearch) toDoc(class *entity.Class) classDoc {
	return classDoc{
		ID:          class.ID.String(),
		Title:       class.Title,
		Description: s.plainText(class.Description),
		OwnerName:   class.OwnerName,
		Price:       class.Price,
		EnrollCount: class.EnrollCount,
		CreatedAt:   class.CreatedAt.Unix(),
	}
}

func (s *classSearch) IndexClass(ctx context.Context, class *entity.Class) error {
	if s.client == nil {
		return nil
	}

	doc := s.toDoc(class)
	task, err := s.client.Index(classesIndex).AddDocuments([]classDoc{doc}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("failed to index class %s: %w", class.ID, err)
	}
	s.logger.Debug("indexed class", zap.String("class_id", doc.ID), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (s *classSearch) RemoveClass(ctx context.Context, id uuid.UUID) error {
	if s.client == nil {
		return nil
	}

	if _, err := s.client.Index(classesIndex).DeleteDocument(id.String()); err != nil {
		return fmt.Errorf("failed to remove class %s from index: %w", id, err)
	}
	return nil
}

func (s *classSearch) SearchClasses(ctx context.Context, query string, limit int) ([]*entity.Class, error) {
	query = strings.TrimSpace(query)
	if limit <= 0 || limit > 100 {
		limit = defaultSearchLimit
	}

	if s.client == nil {
		return s.classRepo.FindAll(ctx, classRepo.ClassFilter{
			Status: entity.ClassStatusAccepted,
			Search: query,
			Limit:  limit,
		})
	}

	raw, err := s.client.Index(classesIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		s.logger.Warn("meilisearch query failed, falling back to store", zap.Error(err))
		return s.classRepo.FindAll(ctx, classRepo.ClassFilter{
			Status: entity.ClassStatusAccepted,
			Search: query,
			Limit:  limit,
		})
	}

	var res searchHits
	if err := json.Unmarshal(*raw, &res); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	// the index may briefly lag behind status changes and deletions
	classes := make([]*entity.Class, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		class, err := s.classRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if class.Status == entity.ClassStatusAccepted {
			classes = append(classes, class)
		}
	}
	return classes, nil
}

func (s *classSearch) Reindex(ctx context.Context) (int, error) {
	if s.client == nil {
		return 0, nil
	}

	classes, err := s.classRepo.FindAll(ctx, classRepo.ClassFilter{Status: entity.ClassStatusAccepted})
	if err != nil {
		return 0, fmt.Errorf("failed to load accepted classes: %w", err)
	}
	if len(classes) == 0 {
		return 0, nil
	}

	docs := make([]classDoc, 0, len(classes))
	for _, class := range classes {
		docs = append(docs, s.toDoc(class))
	}

	task, err := s.client.Index(classesIndex).AddDocuments(docs, strPtr("id"))
	if err != nil {
		return 0, fmt.Errorf("failed to reindex classes: %w", err)
	}
	s.logger.Info("reindexed classes", zap.Int("count", len(docs)), zap.Int64("task_uid", task.TaskUID))
	return len(docs), nil
}

func strPtr(s string) *string {
	return &s
}
