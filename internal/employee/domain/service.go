package domain

import (
	"context"
	"errors"
)

// EmployeeInput is one roster row as supplied by the upload collaborator.
type EmployeeInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

type ReplaceRosterRequest struct {
	Employees []EmployeeInput `json:"employees"`
}

type ReplaceRosterResponse struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

type OverrideInput struct {
	Key        string `json:"key"`
	Department string `json:"department"`
}

type Service interface {
	// ReplaceRoster upserts the roster wholesale: by email when present,
	// by (first, last) name otherwise. Rows missing both are skipped.
	ReplaceRoster(context.Context, ReplaceRosterRequest) (ReplaceRosterResponse, error)
	Roster(context.Context) ([]Employee, error)
	SetOverrides(context.Context, []OverrideInput) error
	Overrides(context.Context) (map[string]string, error)
}

type Repository interface {
	UpsertEmployees(context.Context, []Employee) (inserted, updated int, err error)
	LoadRoster(context.Context) ([]Employee, error)
	ReplaceOverrides(context.Context, []DepartmentOverride) error
	LoadOverrides(context.Context) (map[string]string, error)
}

var (
	ErrEmptyRoster       = errors.New("empty_roster")
	ErrInvalidEmployee   = errors.New("invalid_employee")
	ErrDuplicateEmail    = errors.New("duplicate_email")
	ErrInvalidOverride   = errors.New("invalid_override")
	ErrMissingDepartment = errors.New("missing_department")
)
