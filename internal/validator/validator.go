// Package validator wraps go-playground/validator with the dashboard's record rules.
package validator

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/trainee-dashboard/internal/dates"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

// Validator validates drafts before they are sent to the CMS
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom rules registered
func New() *Validator {
	v := &Validator{validate: validator.New()}
	v.registerRules()
	return v
}

// Struct validates a tagged struct
func (v *Validator) Struct(s interface{}) utils.ValidationErrors {
	return utils.ToValidationErrors(v.validate.Struct(s))
}

// Filled reports whether value passes the "required" rule: non-zero, non-empty.
func (v *Validator) Filled(value interface{}) bool {
	if value == nil {
		return false
	}
	// "required" only checks nil-ness for collections
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	return v.validate.Var(value, "required") == nil
}

// ===== RECORD RULES =====

// ValidateStage checks a training period's dates.
func (v *Validator) ValidateStage(startDate, endDate string) utils.ValidationErrors {
	return v.Struct(&DateRange{StartDate: startDate, EndDate: endDate})
}

// ValidatePermission checks a leave record.
func (v *Validator) ValidatePermission(req *PermissionRules) utils.ValidationErrors {
	return v.Struct(req)
}

// ValidateUser checks a user account draft.
func (v *Validator) ValidateUser(req *UserRules) utils.ValidationErrors {
	return v.Struct(req)
}

func (v *Validator) registerRules() {
	// Date fields travel as YYYY-MM-DD or RFC3339
	v.validate.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, ok := dates.Parse(value)
		return ok
	})

	// not_before=Other: this date must not precede the sibling field Other
	v.validate.RegisterValidation("not_before", func(fl validator.FieldLevel) bool {
		parent := fl.Parent()
		if parent.Kind() == reflect.Ptr {
			parent = parent.Elem()
		}
		other := parent.FieldByName(fl.Param())
		if !other.IsValid() || other.Kind() != reflect.String {
			return false
		}
		return !dates.Before(fl.Field().String(), other.String())
	})

	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.ParseRole(fl.Field().String()) != models.RoleUnknown
	})
}
