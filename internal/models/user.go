package models

import (
	"encoding/json"
	"strings"
)

// UserRole is the closed set of dashboard roles. Anything the CMS returns outside of it
// is collapsed into RoleUnknown.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RolePublic      UserRole = "public"
	RoleChefCellule UserRole = "chef_cellule"
	RoleDoctor      UserRole = "doctor"
	RoleUnknown     UserRole = "unknown"
)

// Roles are the recognised roles, in display order.
var Roles = []UserRole{RoleAdmin, RolePublic, RoleChefCellule, RoleDoctor}

// ParseRole maps a CMS role name onto the closed enumeration.
func ParseRole(name string) UserRole {
	switch UserRole(strings.ToLower(strings.TrimSpace(name))) {
	case RoleAdmin:
		return RoleAdmin
	case RolePublic:
		return RolePublic
	case RoleChefCellule:
		return RoleChefCellule
	case RoleDoctor:
		return RoleDoctor
	default:
		return RoleUnknown
	}
}

// Role as stored by the users-permissions plugin.
type Role struct {
	ID          int    `json:"id"`
	DocumentID  string `json:"documentId,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts the populated object as well as the raw forms the
// users-permissions plugin returns when the relation is not expanded: a role
// name string or a numeric id.
func (r *Role) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = Role{Name: name}
		return nil
	case strings.HasPrefix(trimmed, "{"):
		type plain Role
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*r = Role(p)
		return nil
	default:
		var id int
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Role{ID: id}
		return nil
	}
}

type User struct {
	Base
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"-"`
	Blocked  bool     `json:"blocked,omitempty"`
	Role     *Role    `json:"role,omitempty"`
	Profile  *FileRef `json:"profile,omitempty"`
}

// RoleName returns the raw role name, or an empty string when the relation was not populated.
func (u User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// ===== SECTIONS =====

// Section is a navigable area of the dashboard.
type Section string

const (
	SectionUsers        Section = "Users"
	SectionSpecialite   Section = "Specialite"
	SectionStage        Section = "Stage"
	SectionNomBrigade   Section = "NomBrigade"
	SectionBrigade      Section = "Brigade"
	SectionStagiaire    Section = "Stagiaire"
	SectionPermission   Section = "Permission"
	SectionPenition     Section = "Penition"
	SectionRemarque     Section = "Remarque"
	SectionConsultation Section = "Consultation"
	SectionPedagogique  Section = "Pedagogique"
)

// Sections lists all eleven sections in sidebar order.
var Sections = []Section{
	SectionUsers,
	SectionSpecialite,
	SectionStage,
	SectionNomBrigade,
	SectionBrigade,
	SectionStagiaire,
	SectionPermission,
	SectionPenition,
	SectionRemarque,
	SectionConsultation,
	SectionPedagogique,
}
