package repository

import (
	"context"
	"strings"

	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func Provide(db *gorm.DB, genID *snowflake.Node) employeedomain.Repository {
	return &repo{db: db, genID: genID}
}

// UpsertEmployees merges the incoming roster into storage. Match is by
// lower-cased email when present, by (first, last) name otherwise. Matched
// rows are updated in place; the rest are inserted.
func (r *repo) UpsertEmployees(ctx context.Context, employees []employeedomain.Employee) (int, int, error) {
	var inserted, updated int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := loadAll(ctx, tx)
		if err != nil {
			return err
		}
		byEmail := make(map[string]*employeedomain.Employee, len(existing))
		byName := make(map[string]*employeedomain.Employee, len(existing))
		for i := range existing {
			emp := &existing[i]
			if emp.Email != nil {
				byEmail[strings.ToLower(*emp.Email)] = emp
			}
			byName[nameKey(emp.FirstName, emp.LastName)] = emp
		}

		for i := range employees {
			incoming := &employees[i]
			var match *employeedomain.Employee
			if incoming.Email != nil {
				match = byEmail[strings.ToLower(*incoming.Email)]
			}
			if match == nil {
				match = byName[nameKey(incoming.FirstName, incoming.LastName)]
			}
			if match != nil {
				incoming.ID = match.ID
				incoming.CreatedAt = match.CreatedAt
				if err := tx.Save(incoming).Error; err != nil {
					return err
				}
				updated++
				continue
			}
			incoming.ID = r.genID.Generate()
			if err := tx.Create(incoming).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}

func (r *repo) LoadRoster(ctx context.Context) ([]employeedomain.Employee, error) {
	return loadAll(ctx, r.db)
}

// ReplaceOverrides swaps the manual override mapping wholesale.
func (r *repo) ReplaceOverrides(ctx context.Context, overrides []employeedomain.DepartmentOverride) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&employeedomain.DepartmentOverride{}).Error; err != nil {
			return err
		}
		for i := range overrides {
			if overrides[i].ID == 0 {
				overrides[i].ID = r.genID.Generate()
			}
			if err := tx.Create(&overrides[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) LoadOverrides(ctx context.Context) (map[string]string, error) {
	var rows []employeedomain.DepartmentOverride
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	overrides := make(map[string]string, len(rows))
	for _, row := range rows {
		overrides[strings.ToLower(row.MatchKey)] = row.Department
	}
	return overrides, nil
}

func loadAll(ctx context.Context, db *gorm.DB) ([]employeedomain.Employee, error) {
	var rows []employeedomain.Employee
	err := db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func nameKey(first, last string) string {
	return strings.ToLower(strings.TrimSpace(first)) + "\x00" + strings.ToLower(strings.TrimSpace(last))
}
