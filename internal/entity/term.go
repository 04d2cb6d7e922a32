package entity

// InvestmentTerm is one entry of the glossary dictionary.
type InvestmentTerm struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Term       string `gorm:"not null" json:"term"`
	Definition string `gorm:"not null" json:"definition"`
}

// TableName specifies the table name for the InvestmentTerm model.
func (InvestmentTerm) TableName() string {
	return "investment_terms"
}
