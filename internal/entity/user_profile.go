package entity

import "time"

// InvestmentExperience is the self-reported experience level of a user.
type InvestmentExperience string

const (
	ExperienceBeginner     InvestmentExperience = "beginner"
	ExperienceIntermediate InvestmentExperience = "intermediate"
	ExperienceAdvanced     InvestmentExperience = "advanced"
)

// InvestmentGoal is the primary objective a user invests for.
type InvestmentGoal string

const (
	GoalSavings     InvestmentGoal = "savings"
	GoalIncome      InvestmentGoal = "income"
	GoalGrowth      InvestmentGoal = "growth"
	GoalSpeculation InvestmentGoal = "speculation"
)

// Experiences lists the valid experience levels in presentation order.
func Experiences() []InvestmentExperience {
	return []InvestmentExperience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
}

// Goals lists the valid investment goals in presentation order.
func Goals() []InvestmentGoal {
	return []InvestmentGoal{GoalSavings, GoalIncome, GoalGrowth, GoalSpeculation}
}

// UserProfile stores one investment profile per user. Updates are
// last-write-wins.
type UserProfile struct {
	UserID        int64                `gorm:"primaryKey" json:"user_id"`
	Experience    InvestmentExperience `gorm:"not null" json:"experience"`
	Goal          InvestmentGoal       `gorm:"not null" json:"goal"`
	RiskTolerance int                  `gorm:"not null" json:"risk_tolerance"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the UserProfile model.
func (UserProfile) TableName() string {
	return "user_profiles"
}
