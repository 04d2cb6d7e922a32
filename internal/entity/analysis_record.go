package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisRecord is an audit row written for every full analysis a user
// requests. The payload holds the forecast, risk metrics and the final
// recommendation as JSON.
type AnalysisRecord struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Symbol         string         `gorm:"not null" json:"symbol"`
	UserID         *int64         `json:"user_id,omitempty"`
	Action         string         `gorm:"not null" json:"action"`
	ExpectedChange float64        `json:"expected_change"`
	RiskLevel      string         `json:"risk_level"`
	Payload        datatypes.JSON `json:"payload"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the AnalysisRecord model.
func (AnalysisRecord) TableName() string {
	return "analysis_records"
}
