package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repositories bundles every repository bound to the same database handle.
type Repositories struct {
	Users        UserRepository
	Sessions     SessionRepository
	Societies    SocietyRepository
	Members      MemberRepository
	Applications ApplicationRepository
	Events       EventRepository
	Attendance   AttendanceRepository
	ResetCodes   ResetCodeRepository
}

// New builds GORM-backed repositories over db.
func New(db *gorm.DB) Repositories {
	return Repositories{
		Users:        NewUserRepository(db),
		Sessions:     NewSessionRepository(db),
		Societies:    NewSocietyRepository(db),
		Members:      NewMemberRepository(db),
		Applications: NewApplicationRepository(db),
		Events:       NewEventRepository(db),
		Attendance:   NewAttendanceRepository(db),
		ResetCodes:   NewResetCodeRepository(db),
	}
}

// Transactor runs a unit of work against repositories bound to one transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a GORM-backed Transactor.
func NewTransactor(db *gorm.DB) Transactor {
	return &transactor{db: db}
}

// WithTransaction executes fn within a database transaction. Returning an
// error from fn rolls the transaction back.
func (t *transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, New(tx))
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a LIKE pattern matching search literally anywhere in
// a column. Backslash is the default LIKE escape on both mysql and postgres.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
