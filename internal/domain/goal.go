package domain

import (
	"time"
)

type GoalType string

const (
	GoalTypeSaving     GoalType = "saving"
	GoalTypeEmergency  GoalType = "emergency"
	GoalTypeInvestment GoalType = "investment"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

type Goal struct {
	ID            string     `json:"id,omitempty"`
	UserID        string     `json:"user_id,omitempty"`
	Name          string     `json:"goal_name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	Deadline      time.Time  `json:"deadline"`
	Type          GoalType   `json:"goal_type"`
	Status        GoalStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at,omitempty"`
}

// GoalOverview é a visão de leitura de uma meta com campos derivados,
// usada na listagem de metas e no dashboard.
type GoalOverview struct {
	Goal
	Progress      float64    `json:"progress"`
	DaysLeft      int        `json:"days_left"`
	DisplayStatus GoalStatus `json:"display_status"`
}

type UpdateGoalRequest struct {
	ID            string      `json:"id"`
	Name          *string     `json:"goal_name"`
	TargetAmount  *float64    `json:"target_amount"`
	CurrentAmount *float64    `json:"current_amount"`
	Deadline      *time.Time  `json:"deadline"`
	Type          *GoalType   `json:"goal_type"`
	Status        *GoalStatus `json:"status"`
}
