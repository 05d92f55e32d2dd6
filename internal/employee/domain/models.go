// Package domain contains persistence models for the employee roster, the
// authoritative identity and department source.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Employee is one roster entry. Email is unique when present (compared
// case-insensitively; stored lower-cased), but the roster legitimately
// carries employees without one.
type Employee struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	FirstName  string       `gorm:"type:text;not null"`
	LastName   string       `gorm:"type:text;not null"`
	Email      *string      `gorm:"type:text;uniqueIndex"`
	Title      *string      `gorm:"type:text"`
	Department string       `gorm:"type:text;not null"`
	Status     *string      `gorm:"type:text"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Employee) TableName() string { return "employees" }

// DepartmentOverride patches department attribution for people who will never
// appear in the roster (contractors). MatchKey is a lower-cased email or
// "first last" full name.
type DepartmentOverride struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	MatchKey   string       `gorm:"type:text;not null;uniqueIndex"`
	Department string       `gorm:"type:text;not null"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (DepartmentOverride) TableName() string { return "department_overrides" }
