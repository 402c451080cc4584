// Package models holds the request and response shapes of the HTTP API,
// shared between the server handlers and the Go client.
// Dates travel as "YYYY-MM-DD" strings (what the date inputs produce);
// task times travel as minutes in responses and as "H:MM" or bare-minute
// strings in requests.
package models

import "github.com/shopspring/decimal"

// ============================================
// Auth
// ============================================

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ============================================
// Members
// ============================================

type MemberRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
	Role        string `json:"role"`
}

type MemberResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Designation string `json:"designation,omitempty"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ============================================
// Tasks (personal)
// ============================================

type TaskRequest struct {
	Name       string `json:"name"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	AssignedTo string `json:"assignedTo"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	// "H:MM" or bare minutes
	Estimate   string `json:"estimate"`
	ActualTime string `json:"actualTime"`
}

type TaskResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
	AssignedTo      string `json:"assignedTo"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	EstimateMinutes int    `json:"estimateMinutes"`
	ActualMinutes   int    `json:"actualMinutes"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ============================================
// Project Tasks
// ============================================

type ProjectTaskRequest struct {
	WorkspaceID string `json:"workspaceId"`
	ProjectName string `json:"projectName"`
	TaskName    string `json:"taskName"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Estimate    string `json:"estimate"`
	ActualHours string `json:"actualHours"`
}

type ProjectTaskResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	ProjectName string `json:"projectName"`
	TaskName    string `json:"taskName"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Estimate    string `json:"estimate,omitempty"`
	ActualHours string `json:"actualHours,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ============================================
// Workgroups / Workspaces
// ============================================

type WorkgroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

type WorkgroupMembersRequest struct {
	ID      string   `json:"id" binding:"required"`
	Members []string `json:"members"`
}

type WorkgroupResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Members     []MemberResponse    `json:"members"`
	Workspaces  []WorkspaceResponse `json:"workspaces"`
	IsAdmin     bool                `json:"isAdmin"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
}

type WorkspaceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

type WorkspaceResponse struct {
	ID          string   `json:"id"`
	WorkgroupID string   `json:"workgroupId"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ============================================
// Dashboard
// ============================================

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MemberHoursRow struct {
	MemberID string          `json:"memberId"`
	Name     string          `json:"name"`
	Hours    decimal.Decimal `json:"hours"`
}

type DashboardStats struct {
	Members           int              `json:"members"`
	Tasks             int              `json:"tasks"`
	Workgroups        int              `json:"workgroups"`
	ProjectTasks      int              `json:"projectTasks"`
	TaskStatus        []StatusCount    `json:"taskStatus"`
	ProjectTaskStatus []StatusCount    `json:"projectTaskStatus"`
	MemberHours       []MemberHoursRow `json:"memberHours"`
}
