package validator

// DateRange is the shape shared by stages and permissions
type DateRange struct {
	StartDate string `json:"start_date" validate:"required,iso_date"`
	EndDate   string `json:"end_date" validate:"required,iso_date,not_before=StartDate"`
}

// PermissionRules represents the checked part of a leave record
type PermissionRules struct {
	StartDate string `json:"start_date" validate:"required,iso_date"`
	EndDate   string `json:"end_date" validate:"required,iso_date,not_before=StartDate"`
	Duration  int    `json:"duration" validate:"min=0,max=365"`
	Type      string `json:"type" validate:"required,oneof=Maladie Exceptionnelle Reguliere Convalescence"`
}

// UserRules represents the checked part of a user account. Password is only
// required on creation.
type UserRules struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}
