package persistence

import (
	"errors"

	"github.com/campusmarket/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver-level errors to domain errors.
// The database is opened with TranslateError, so unique and foreign key
// violations arrive as gorm sentinel errors on both dialects.
func translateError(err error, duplicateMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDuplicateError(duplicateMsg)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewNotFoundError("Referenced record")
	default:
		return err
	}
}
