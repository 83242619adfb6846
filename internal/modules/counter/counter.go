// Package counter keeps a class's denormalized child counts in step with the
// child records inserted against it.
package counter

import (
	"context"
	"fmt"

	"anoa.com/edusphere/internal/entity"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InsertFunc stores one child record and returns its id.
type InsertFunc func(ctx context.Context) (uuid.UUID, error)

// PartialError reports a child record that was stored while the parent
// counter was not incremented.
type PartialError struct {
	ClassID uuid.UUID
	Field   string
	ChildID uuid.UUID
	Err     error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("record %s stored but %s of class %s was not updated: %v", e.ChildID, e.Field, e.ClassID, e.Err)
}

func (e *PartialError) Unwrap() []error {
	return []error{apperror.ErrCounterUpdate, e.Err}
}

func (e *PartialError) InsertedID() string {
	return e.ChildID.String()
}

type Updater struct {
	classes classRepo.ClassRepository
	logger  *zap.Logger
}

func NewUpdater(classes classRepo.ClassRepository, logger *zap.Logger) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{classes: classes, logger: logger}
}

// Record inserts a child of classID and increments field, returning the new
// count. A missing class fails before anything is written.
func (u *Updater) Record(ctx context.Context, classID uuid.UUID, field string, insert InsertFunc) (uuid.UUID, int64, error) {
	if !entity.IsCounter(field) {
		return uuid.Nil, 0, fmt.Errorf("unknown class counter %q: %w", field, apperror.ErrInternal)
	}

	if _, err := u.classes.FindByID(ctx, classID); err != nil {
		return uuid.Nil, 0, err
	}

	childID, err := insert(ctx)
	if err != nil {
		return uuid.Nil, 0, err
	}

	count, err := u.classes.IncrementCounter(ctx, classID, field)
	if err != nil {
		u.logger.Error("counter increment failed after insert",
			zap.String("class_id", classID.String()),
			zap.String("field", field),
			zap.String("child_id", childID.String()),
			zap.Error(err),
		)
		return childID, 0, &PartialError{ClassID: classID, Field: field, ChildID: childID, Err: err}
	}

	return childID, count, nil
}
