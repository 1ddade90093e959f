package model

import "time"

// Role is a user's standing inside one society.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleMember    Role = "member"
)

// Society permission levels as they travel on the wire.
const (
	LevelAdmin     = 1
	LevelModerator = 2
	LevelMember    = 3
)

// Rank orders roles by authority. A lower rank means more authority.
// Unknown roles rank as members.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return LevelAdmin
	case RoleModerator:
		return LevelModerator
	default:
		return LevelMember
	}
}

// Level returns the wire level for r. Rank and wire level share one scale.
func (r Role) Level() int {
	return r.Rank()
}

// RoleFromLevel translates a wire level into a Role.
func RoleFromLevel(level int) (Role, bool) {
	switch level {
	case LevelAdmin:
		return RoleAdmin, true
	case LevelModerator:
		return RoleModerator, true
	case LevelMember:
		return RoleMember, true
	default:
		return "", false
	}
}

// SocietyMember is the (user, society) relationship. The pair is unique.
type SocietyMember struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	SocietyID uint      `json:"society_id" gorm:"primaryKey;autoIncrement:false;index"`
	Role      Role      `json:"role" gorm:"type:varchar(16);not null;default:'member';index"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	User    User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Society Society `json:"-" gorm:"foreignKey:SocietyID"`
}
