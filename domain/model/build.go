package model

import "time"

// Build is a persisted synthesis result.
type Build struct {
	ID          string              `json:"id"`
	StackName   string              `json:"stackName"`
	Graph       *ResourceGraph      `json:"graph"`
	Environment *DerivedEnvironment `json:"environment"`
	CreatedAt   time.Time           `json:"createdAt"`
}
