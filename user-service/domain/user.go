package domain

import (
	"fmt"
	"time"

	"github.com/skillswap/gdpr-system/shared/models"
)

// UserStatus represents the lifecycle state of a user account
type UserStatus string

const (
	UserStatusActive     UserStatus = "active"
	UserStatusAnonymized UserStatus = "anonymized"
)

// SkillLevel represents proficiency in a skill
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelExpert       SkillLevel = "expert"
)

// Skill is one skill a user offers or wants to learn
type Skill struct {
	ID          models.ID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Level       SkillLevel `json:"level"`
	Offered     bool       `json:"offered"`
}

// User is the account aggregate owned by the user service
type User struct {
	ID         models.ID
	ExternalID string
	Email      string
	Username   string
	FullName   string
	Bio        string
	Location   string
	AvatarURL  string
	Status     UserStatus
	Skills     []Skill
	Timestamps models.Timestamps
	Version    models.Version
}

// Anonymize strips every personal field from the account while keeping
// the row so references from other services stay resolvable. The
// replacement values carry no trace of the original data.
func (u *User) Anonymize() {
	suffix := u.ID.String()
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}

	u.Email = fmt.Sprintf("deleted-%s@anonymized.invalid", suffix)
	u.Username = "deleted-user-" + suffix
	u.FullName = "Deleted User"
	u.Bio = ""
	u.Location = ""
	u.AvatarURL = ""
	u.Skills = nil
	u.Status = UserStatusAnonymized
	u.Timestamps = u.Timestamps.Update()
	u.Version = u.Version.Update()
}

// Export is the portable representation of everything the user service
// holds about an account.
type Export struct {
	UserID     models.ID  `json:"user_id"`
	ExternalID string     `json:"external_id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	FullName   string     `json:"full_name"`
	Bio        string     `json:"bio,omitempty"`
	Location   string     `json:"location,omitempty"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	Status     UserStatus `json:"status"`
	Skills     []Skill    `json:"skills"`
	MemberFor  string     `json:"member_for"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToExport builds the user's data export
func (u *User) ToExport() *Export {
	return &Export{
		UserID:     u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		Username:   u.Username,
		FullName:   u.FullName,
		Bio:        u.Bio,
		Location:   u.Location,
		AvatarURL:  u.AvatarURL,
		Status:     u.Status,
		Skills:     u.Skills,
		MemberFor:  time.Since(u.Timestamps.CreatedAt).Round(time.Hour).String(),
		CreatedAt:  u.Timestamps.CreatedAt,
	}
}
