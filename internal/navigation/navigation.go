// Package navigation maps a dashboard role onto the sections it may reach.
package navigation

import (
	"slices"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

// Access is what a role may see. Sidebar is the list rendered in the side menu;
// Visible is the set the content area agrees to render. They only differ for
// unrecognised roles, where the sidebar keeps the full list but nothing renders.
type Access struct {
	Role       models.UserRole  `json:"role"`
	Sidebar    []models.Section `json:"sidebar"`
	Visible    []models.Section `json:"visible"`
	Default    models.Section   `json:"default_section"`
	Authorized bool             `json:"authorized"`
}

// Can reports whether the content area renders section for this access.
func (a Access) Can(section models.Section) bool {
	return a.Authorized && slices.Contains(a.Visible, section)
}

// Landing returns the section to open first, or "" when nothing can render.
func (a Access) Landing() models.Section {
	if !a.Authorized {
		return ""
	}
	return a.Default
}

func allExcept(excluded ...models.Section) []models.Section {
	out := make([]models.Section, 0, len(models.Sections))
	for _, s := range models.Sections {
		if !slices.Contains(excluded, s) {
			out = append(out, s)
		}
	}
	return out
}

var table = map[models.UserRole]Access{
	models.RoleAdmin: {
		Sidebar:    models.Sections,
		Visible:    models.Sections,
		Default:    models.SectionUsers,
		Authorized: true,
	},
	models.RolePublic: {
		Sidebar:    allExcept(models.SectionPedagogique, models.SectionUsers),
		Visible:    allExcept(models.SectionPedagogique, models.SectionUsers),
		Default:    models.SectionSpecialite,
		Authorized: true,
	},
	models.RoleChefCellule: {
		Sidebar:    []models.Section{models.SectionPedagogique},
		Visible:    []models.Section{models.SectionPedagogique},
		Default:    models.SectionPedagogique,
		Authorized: true,
	},
	models.RoleDoctor: {
		Sidebar:    []models.Section{models.SectionConsultation},
		Visible:    []models.Section{models.SectionConsultation},
		Default:    models.SectionConsultation,
		Authorized: true,
	},
	models.RoleUnknown: {
		Sidebar:    models.Sections,
		Visible:    []models.Section{},
		Default:    models.SectionUsers,
		Authorized: false,
	},
}

// Resolve returns the access entry for role. Roles outside the enumeration resolve
// like RoleUnknown.
func Resolve(role models.UserRole) Access {
	entry, ok := table[role]
	if !ok {
		entry = table[models.RoleUnknown]
		role = models.RoleUnknown
	}
	entry.Role = role
	entry.Sidebar = slices.Clone(entry.Sidebar)
	entry.Visible = slices.Clone(entry.Visible)
	return entry
}
