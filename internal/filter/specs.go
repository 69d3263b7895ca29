package filter

import (
	"strconv"
	"strings"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

// ===== PER-ENTITY SPECS =====

func traineeName(s *models.Stagiaire) string {
	if s == nil {
		return ""
	}
	return s.FullName()
}

func traineeKeys(items []models.Stagiaire) []string {
	return models.KeysOf(items)
}

func traineeNames(items []models.Stagiaire) string {
	names := make([]string, 0, len(items))
	for _, s := range items {
		names = append(names, s.FullName())
	}
	return strings.Join(names, " ")
}

var Stagiaires = Spec[models.Stagiaire]{
	Text: []func(models.Stagiaire) string{
		func(s models.Stagiaire) string { return s.MLE },
		func(s models.Stagiaire) string { return s.FirstName },
		func(s models.Stagiaire) string { return s.LastName },
		func(s models.Stagiaire) string { return s.CIN },
	},
	Enums: map[string]func(models.Stagiaire) string{
		"grade": func(s models.Stagiaire) string { return s.Grade },
	},
	Refs: map[string]func(models.Stagiaire) []string{
		"specialite": func(s models.Stagiaire) []string { return []string{models.KeyOf(s.Specialite)} },
		"stage":      func(s models.Stagiaire) []string { return []string{models.KeyOf(s.Stage)} },
		"brigade":    func(s models.Stagiaire) []string { return []string{models.KeyOf(s.Brigade)} },
	},
}

var Specialites = Spec[models.Specialite]{
	Text: []func(models.Specialite) string{
		func(s models.Specialite) string { return s.Name },
		func(s models.Specialite) string { return s.Description },
	},
}

var Stages = Spec[models.Stage]{
	Text: []func(models.Stage) string{
		func(s models.Stage) string { return s.Name },
		func(s models.Stage) string { return s.Description },
	},
	Dates: map[string]func(models.Stage) string{
		"start_date": func(s models.Stage) string { return s.StartDate },
		"end_date":   func(s models.Stage) string { return s.EndDate },
	},
}

var BrigadeNames = Spec[models.BrigadeName]{
	Text: []func(models.BrigadeName) string{
		func(b models.BrigadeName) string { return b.Name },
	},
}

var Brigades = Spec[models.Brigade]{
	Text: []func(models.Brigade) string{
		func(b models.Brigade) string { return b.Label() },
		func(b models.Brigade) string { return strconv.Itoa(b.Effectif) },
	},
	Years: map[string]func(models.Brigade) string{
		"year": func(b models.Brigade) string { return b.Year },
	},
	Refs: map[string]func(models.Brigade) []string{
		"brigade_name": func(b models.Brigade) []string { return []string{models.KeyOf(b.BrigadeName)} },
		"specialite":   func(b models.Brigade) []string { return []string{models.KeyOf(b.Specialite)} },
		"stage":        func(b models.Brigade) []string { return []string{models.KeyOf(b.Stage)} },
	},
}

var Permissions = Spec[models.Permission]{
	Text: []func(models.Permission) string{
		func(p models.Permission) string { return traineeNames(p.Stagiaires) },
		func(p models.Permission) string { return string(p.Type) },
	},
	Dates: map[string]func(models.Permission) string{
		"start_date": func(p models.Permission) string { return p.StartDate },
		"end_date":   func(p models.Permission) string { return p.EndDate },
	},
	Enums: map[string]func(models.Permission) string{
		"type": func(p models.Permission) string { return string(p.Type) },
	},
	Refs: map[string]func(models.Permission) []string{
		"stagiaires": func(p models.Permission) []string { return traineeKeys(p.Stagiaires) },
	},
}

var Penitions = Spec[models.Penition]{
	Text: []func(models.Penition) string{
		func(p models.Penition) string { return p.Motif },
		func(p models.Penition) string { return p.Description },
		func(p models.Penition) string { return traineeNames(p.Stagiaires) },
	},
	Dates: map[string]func(models.Penition) string{
		"date": func(p models.Penition) string { return p.Date },
	},
	Refs: map[string]func(models.Penition) []string{
		"stagiaires": func(p models.Penition) []string { return traineeKeys(p.Stagiaires) },
	},
}

var Remarks = Spec[models.Remark]{
	Text: []func(models.Remark) string{
		func(r models.Remark) string { return r.Content },
		func(r models.Remark) string { return r.Result },
		func(r models.Remark) string { return traineeName(r.Stagiaire) },
	},
	Dates: map[string]func(models.Remark) string{
		"date": func(r models.Remark) string { return r.Date },
	},
	Enums: map[string]func(models.Remark) string{
		"type": func(r models.Remark) string { return string(r.Type) },
	},
	Refs: map[string]func(models.Remark) []string{
		"stagiaire": func(r models.Remark) []string { return []string{models.KeyOf(r.Stagiaire)} },
	},
}

var Consultations = Spec[models.Consultation]{
	Text: []func(models.Consultation) string{
		func(c models.Consultation) string { return c.Note },
		func(c models.Consultation) string { return traineeName(c.Stagiaire) },
	},
	Dates: map[string]func(models.Consultation) string{
		"date": func(c models.Consultation) string { return c.Date },
	},
	Refs: map[string]func(models.Consultation) []string{
		"stagiaire": func(c models.Consultation) []string { return []string{models.KeyOf(c.Stagiaire)} },
	},
}

var Users = Spec[models.User]{
	Text: []func(models.User) string{
		func(u models.User) string { return u.Username },
		func(u models.User) string { return u.Email },
	},
	Enums: map[string]func(models.User) string{
		"role": func(u models.User) string { return string(models.ParseRole(u.RoleName())) },
	},
}
