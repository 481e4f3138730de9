// FILE: internal/model/profile_model.go
// GORM model for the user_profiles table
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserProfile persists subscription state, usage ledgers and purchased
// credits in one row so a quota check is a single read-modify-write.
type UserProfile struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName string    `gorm:"type:varchar(255);not null"`

	IsSubscribed bool      `gorm:"default:false"`
	CurrentPlan  *string   `gorm:"type:varchar(50)"`
	BillingCycle *string   `gorm:"type:varchar(50)"`
	TrialEndDate time.Time `gorm:"not null"`

	DailyUsageDate   string            `gorm:"type:varchar(10);not null;default:''"` // YYYY-MM-DD
	DailyUsageCounts datatypes.JSONMap `gorm:"type:jsonb"`

	WeeklyUsageWeekStart string            `gorm:"type:varchar(10);not null;default:''"` // Monday YYYY-MM-DD
	WeeklyUsageCounts    datatypes.JSONMap `gorm:"type:jsonb"`

	PurchasedCredits datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
