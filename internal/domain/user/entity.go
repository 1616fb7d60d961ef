package user

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	EntityName    = "User"
	EntityVersion = int64(1)
)

var namePattern = regexp.MustCompile(`^\w+$`)

// ValidName reports whether name is a non-empty word token.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// User represents the users table. ID is uuid.Nil until the user is first persisted.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_name" json:"name"`
}

func (User) TableName() string {
	return "users"
}

func (u User) AggregateID() uuid.UUID {
	return u.ID
}

func (User) EntityName() string {
	return EntityName
}

func (User) EntityVersion() int64 {
	return EntityVersion
}
