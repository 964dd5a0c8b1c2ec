package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionStatus tracks a treatment plan subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPaused    SubscriptionStatus = "PAUSED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
)

// AllSubscriptionStatuses lists every subscription status.
var AllSubscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusActive,
	SubscriptionStatusPaused,
	SubscriptionStatusCancelled,
	SubscriptionStatusExpired,
}

var subscriptionStatusDisplays = map[SubscriptionStatus]StatusDisplay{
	SubscriptionStatusActive:    {Label: "Active", Icon: "check-circle"},
	SubscriptionStatusPaused:    {Label: "Paused", Icon: "pause-circle"},
	SubscriptionStatusCancelled: {Label: "Cancelled", Icon: "x-circle"},
	SubscriptionStatusExpired:   {Label: "Expired", Icon: "clock"},
}

func (s SubscriptionStatus) Valid() bool {
	_, ok := subscriptionStatusDisplays[s]
	return ok
}

// Display returns the patient-facing label and icon for the status.
func (s SubscriptionStatus) Display() StatusDisplay {
	if d, ok := subscriptionStatusDisplays[s]; ok {
		return d
	}
	warnUnmappedStatus("subscription_status", string(s))
	return StatusDisplay{Label: "Unknown", Icon: "help-circle"}
}

// Plan is a purchasable treatment plan within a vertical.
type Plan struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Vertical      Vertical        `gorm:"type:varchar(30);not null;index" json:"vertical"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	MonthlyPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monthly_price"`
	DurationDays  int             `gorm:"not null" json:"duration_days"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// Subscription represents a patient's enrollment in a treatment plan.
type Subscription struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	PlanID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"plan_id"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	StartedAt time.Time          `gorm:"not null" json:"started_at"`
	ExpiresAt time.Time          `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Plan    Plan           `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
