package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"anoa.com/edusphere/internal/entity"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
)

var _ classRepo.ClassRepository = (*classRepository)(nil)

type classRepository struct {
	db *DB
}

func (r *classRepository) Create(_ context.Context, class *entity.Class) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	class.ID = newID(class.ID)
	if class.Status == "" {
		class.Status = entity.ClassStatusPending
	}
	class.CreatedAt = r.db.now()
	class.UpdatedAt = class.CreatedAt
	r.db.classes.insert(class.ID, *class)
	return nil
}

func (r *classRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.classes.get(id)
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *classRepository) FindAll(_ context.Context, filter classRepo.ClassFilter) ([]*entity.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	classes := r.db.classes.scan(func(c *entity.Class) bool {
		if filter.OwnerEmail != "" && c.OwnerEmail != filter.OwnerEmail {
			return false
		}
		if filter.Status != "" && c.Status != filter.Status {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(c.Title), search)
	})

	if filter.ByEnrollment {
		// stable: ties keep insertion (oldest first) order
		sort.SliceStable(classes, func(i, j int) bool {
			return classes[i].EnrollCount > classes[j].EnrollCount
		})
	} else {
		slices.Reverse(classes)
	}
	if filter.Limit > 0 && len(classes) > filter.Limit {
		classes = classes[:filter.Limit]
	}
	return classes, nil
}

func (r *classRepository) Update(_ context.Context, class *entity.Class) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.classes.get(class.ID)
	if !ok {
		return apperror.ErrNotFound
	}
	c.Title = class.Title
	c.OwnerName = class.OwnerName
	c.Price = class.Price
	c.Description = class.Description
	c.ImageURL = class.ImageURL
	c.UpdatedAt = r.db.now()
	return nil
}

func (r *classRepository) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.classes.get(id)
	if !ok {
		return apperror.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = r.db.now()
	return nil
}

func (r *classRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if !r.db.classes.remove(id) {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *classRepository) IncrementCounter(_ context.Context, id uuid.UUID, field string) (int64, error) {
	if !entity.IsCounter(field) {
		return 0, fmt.Errorf("unknown class counter %q", field)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.classes.get(id)
	if !ok {
		return 0, apperror.ErrNotFound
	}
	switch field {
	case entity.CounterEnroll:
		c.EnrollCount++
	case entity.CounterAssignment:
		c.AssignmentCount++
	case entity.CounterSubmission:
		c.SubmissionCount++
	}
	return c.CounterValue(field), nil
}
