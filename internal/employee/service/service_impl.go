package service

import (
	"context"
	"strings"

	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/cell"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log  *zap.Logger
	Repo employeedomain.Repository
}

type Service struct {
	log  *zap.Logger
	repo employeedomain.Repository
}

func NewService(p ServiceParam) employeedomain.Service {
	return &Service{
		log:  p.Log.Named("employee.service"),
		repo: p.Repo,
	}
}

func (s *Service) ReplaceRoster(ctx context.Context, req employeedomain.ReplaceRosterRequest) (employeedomain.ReplaceRosterResponse, error) {
	if len(req.Employees) == 0 {
		return employeedomain.ReplaceRosterResponse{}, employeedomain.ErrEmptyRoster
	}

	seen := make(map[string]struct{}, len(req.Employees))
	rows := make([]employeedomain.Employee, 0, len(req.Employees))
	skipped := 0
	for _, input := range req.Employees {
		row, ok := buildEmployee(input)
		if !ok {
			skipped++
			continue
		}
		if row.Email != nil {
			key := strings.ToLower(*row.Email)
			if _, dup := seen[key]; dup {
				return employeedomain.ReplaceRosterResponse{}, employeedomain.ErrDuplicateEmail
			}
			seen[key] = struct{}{}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return employeedomain.ReplaceRosterResponse{}, employeedomain.ErrEmptyRoster
	}

	inserted, updated, err := s.repo.UpsertEmployees(ctx, rows)
	if err != nil {
		return employeedomain.ReplaceRosterResponse{}, err
	}
	s.log.Info("roster replaced",
		zap.Int("inserted", inserted),
		zap.Int("updated", updated),
		zap.Int("skipped", skipped),
	)
	return employeedomain.ReplaceRosterResponse{Inserted: inserted, Updated: updated, Skipped: skipped}, nil
}

func (s *Service) Roster(ctx context.Context) ([]employeedomain.Employee, error) {
	return s.repo.LoadRoster(ctx)
}

func (s *Service) SetOverrides(ctx context.Context, inputs []employeedomain.OverrideInput) error {
	overrides := make([]employeedomain.DepartmentOverride, 0, len(inputs))
	for _, input := range inputs {
		key := cell.Lower(input.Key)
		department, ok := cell.Normalize(input.Department)
		if key == "" || !ok {
			return employeedomain.ErrInvalidOverride
		}
		overrides = append(overrides, employeedomain.DepartmentOverride{
			MatchKey:   key,
			Department: department,
		})
	}
	return s.repo.ReplaceOverrides(ctx, overrides)
}

func (s *Service) Overrides(ctx context.Context) (map[string]string, error) {
	return s.repo.LoadOverrides(ctx)
}

// buildEmployee normalizes one upload row. A row needs a department and
// either an email or a full name to be usable.
func buildEmployee(input employeedomain.EmployeeInput) (employeedomain.Employee, bool) {
	first, _ := cell.Normalize(input.FirstName)
	last, _ := cell.Normalize(input.LastName)
	department, hasDepartment := cell.Normalize(input.Department)

	row := employeedomain.Employee{
		FirstName:  first,
		LastName:   last,
		Department: department,
	}
	if email := cell.Lower(input.Email); email != "" {
		row.Email = &email
	}
	if title, ok := cell.Normalize(input.Title); ok {
		row.Title = &title
	}
	if status, ok := cell.Normalize(input.Status); ok {
		row.Status = &status
	}

	hasName := first != "" && last != ""
	if !hasDepartment || (row.Email == nil && !hasName) {
		return employeedomain.Employee{}, false
	}
	return row, true
}
