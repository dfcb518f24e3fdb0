package model

import (
	"encoding/json"
	"time"
)

// Severity buckets a coach score.
type Severity string

const (
	SeverityExcellent  Severity = "excellent"
	SeverityGood       Severity = "good"
	SeverityConcerning Severity = "concerning"
	SeverityCritical   Severity = "critical"
	SeverityDisaster   Severity = "disaster"
)

// Recommendations is the structured coach feedback of an audit.
type Recommendations struct {
	OverallAssessment string   `json:"overallAssessment"`
	ImmediateReaction string   `json:"immediateReaction"`
	DebtAnalysis      string   `json:"debtAnalysis"`
	ActionPlan        []string `json:"actionPlan"`
	Quotes            []string `json:"coachQuotes"`
}

// Audit is a persisted financial audit.
type Audit struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Snapshot        json.RawMessage `json:"auditData"`
	Recommendations Recommendations `json:"recommendations"`
	Score           int             `json:"score"`
	Severity        Severity        `json:"severity"`
	FollowUpDate    time.Time       `json:"followUpDate"`
	Completed       bool            `json:"completed"`
	CreatedAt       time.Time       `json:"createdAt"`
}
