package models

import (
	"time"

	"github.com/google/uuid"
)

type Risk struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	Title      string     `json:"title"`
	Likelihood RiskLevel  `json:"likelihood"`
	Impact     RiskLevel  `json:"impact"`
	Status     RiskStatus `json:"status"`
	Mitigation string     `json:"mitigation"`
	Owner      string     `json:"owner"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Risk fields that may be changed one at a time.
const (
	RiskFieldTitle      = "title"
	RiskFieldLikelihood = "likelihood"
	RiskFieldImpact     = "impact"
	RiskFieldStatus     = "status"
	RiskFieldMitigation = "mitigation"
	RiskFieldOwner      = "owner"
)
