package models

// Entry is a uniquely named reference value. Entries are never updated.
type Entry struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;type:varchar(150);uniqueIndex;not null" json:"name"`
}

// ModelName is a scale model offered at intake.
type ModelName struct {
	Entry `gorm:"embedded"`
}

func (ModelName) TableName() string {
	return "models"
}

// ClientName is a customer offered at calibration.
type ClientName struct {
	Entry `gorm:"embedded"`
}

func (ClientName) TableName() string {
	return "clients"
}
