package database

import (
	"errors"

	"anoa.com/edusphere/pkg/apperror"
	"gorm.io/gorm"
)

// TranslateError maps gorm sentinel errors onto the application's error taxonomy.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.ErrConflict
	default:
		return err
	}
}
