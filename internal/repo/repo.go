package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrValidation marks writes rejected by an invariant check. 400 at the
// handler boundary.
var ErrValidation = errors.New("validation")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
