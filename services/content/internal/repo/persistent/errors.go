package persistent

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = stderrors.New("record not found")
	ErrAlreadyExists = stderrors.New("record already exists")
)

// translate maps gorm sentinels onto the repository's own and wraps the rest.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	default:
		return errors.Wrap(err, op)
	}
}
