package rdb

import "time"

// BuildRecord is the RDB persistence model for domain Build.
// Table name: builds
type BuildRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	StackName   string    `gorm:"type:text;not null;index"`
	Graph       string    `gorm:"type:text"` // JSON encoded model.ResourceGraph
	Environment string    `gorm:"type:text"` // JSON encoded model.DerivedEnvironment
	CreatedAt   time.Time `gorm:"not null"`
}

func (BuildRecord) TableName() string { return "builds" }
