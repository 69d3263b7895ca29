package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/trainee-dashboard/internal/dates"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
	"github.com/SAP-F-2025/trainee-dashboard/internal/validator"
)

// Validate runs the record rules of the draft's collection. Permission durations left
// at zero are derived from the inclusive date span first.
func (c *Controller) Validate() utils.ValidationErrors {
	switch c.schema.Resource {
	case repositories.StageSchema.Resource:
		return c.validator.ValidateStage(c.str("start_date"), c.str("end_date"))

	case repositories.PermissionSchema.Resource:
		if c.number("duration") == 0 {
			if days := dates.DaysInclusive(c.str("start_date"), c.str("end_date")); days > 0 {
				c.draft["duration"] = days
			}
		}
		return c.validator.ValidatePermission(&validator.PermissionRules{
			StartDate: c.str("start_date"),
			EndDate:   c.str("end_date"),
			Duration:  c.number("duration"),
			Type:      c.str("type"),
		})

	case repositories.UserSchema.Resource:
		errs := c.validator.ValidateUser(&validator.UserRules{
			Username: c.str("username"),
			Email:    c.str("email"),
			Password: c.str("password"),
		})
		if c.mode == Create && c.str("password") == "" {
			errs = append(errs, utils.ValidationError{Field: "password", Message: "is required", Rule: "required"})
		}
		return errs
	}
	return nil
}

// Submit persists the draft. The pending file is uploaded first and its reference
// resolved before the record write; if the upload fails nothing is written. An upload
// followed by a failed write is not rolled back.
func Submit[T models.Entity](ctx context.Context, c *Controller, repo repositories.ResourceRepository[T], files repositories.FileRepository) (*T, error) {
	if !c.CanSubmit() {
		return nil, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(c.Missing(), ", "))
	}
	if errs := c.Validate(); len(errs) > 0 {
		return nil, errs
	}

	m := c.Mutation()

	if c.HasFile() && c.schema.File != nil {
		if files == nil {
			return nil, fmt.Errorf("%w: no file store", ErrUploadFailed)
		}
		ref, err := files.Upload(ctx, c.file.Filename, c.file.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
		}
		if ref.Empty() {
			return nil, fmt.Errorf("%w: empty file reference", ErrUploadFailed)
		}
		m.File = &ref
		c.file = nil
	}

	if c.mode == Edit {
		return repo.Update(ctx, c.id, m)
	}
	return repo.Create(ctx, m)
}

func (c *Controller) str(field string) string {
	s, _ := c.draft[field].(string)
	return s
}

func (c *Controller) number(field string) int {
	switch v := c.draft[field].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		var n int
		fmt.Sscanf(v, "%d", &n)
		return n
	}
	return 0
}
