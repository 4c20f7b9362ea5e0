package repository

import (
	"gorm.io/gorm"
)

// Repositories groups the gorm-backed stores sharing one connection
type Repositories struct {
	Users   *UserRepository
	History *HistoryRepository
}

// New builds all repositories on top of db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(db),
		History: NewHistoryRepository(db),
	}
}
