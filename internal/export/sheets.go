package export

import (
	"strings"

	"github.com/SAP-F-2025/trainee-dashboard/internal/dates"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

// ===== SHEETS =====

func name[T any](e *T, get func(*T) string) string {
	if e == nil {
		return ""
	}
	return get(e)
}

var StagiaireColumns = []Column[models.Stagiaire]{
	{Header: "MLE", Width: 12, Value: func(s models.Stagiaire) any { return s.MLE }},
	{Header: "CIN", Width: 14, Value: func(s models.Stagiaire) any { return s.CIN }},
	{Header: "Nom", Width: 20, Value: func(s models.Stagiaire) any { return s.LastName }},
	{Header: "Prénom", Width: 20, Value: func(s models.Stagiaire) any { return s.FirstName }},
	{Header: "Grade", Width: 14, Value: func(s models.Stagiaire) any { return s.Grade }},
	{Header: "Date de naissance", Width: 18, Value: func(s models.Stagiaire) any { return dates.ISODate(s.DateOfBirth) }},
	{Header: "Téléphone", Width: 16, Value: func(s models.Stagiaire) any { return s.Phone }},
	{Header: "Groupe sanguin", Width: 14, Value: func(s models.Stagiaire) any { return s.BloodGroup }},
	{Header: "Spécialité", Width: 20, Value: func(s models.Stagiaire) any {
		return name(s.Specialite, func(x *models.Specialite) string { return x.Name })
	}},
	{Header: "Stage", Width: 20, Value: func(s models.Stagiaire) any {
		return name(s.Stage, func(x *models.Stage) string { return x.Name })
	}},
	{Header: "Brigade", Width: 16, Value: func(s models.Stagiaire) any {
		return name(s.Brigade, func(x *models.Brigade) string { return x.Label() })
	}},
}

var BrigadeColumns = []Column[models.Brigade]{
	{Header: "Brigade", Width: 18, Value: func(b models.Brigade) any { return b.Label() }},
	{Header: "Année", Width: 10, Value: func(b models.Brigade) any { return dates.YearUTC(b.Year) }},
	{Header: "Effectif", Width: 10, Value: func(b models.Brigade) any { return b.Effectif }},
	{Header: "Spécialité", Width: 20, Value: func(b models.Brigade) any {
		return name(b.Specialite, func(x *models.Specialite) string { return x.Name })
	}},
	{Header: "Stage", Width: 20, Value: func(b models.Brigade) any {
		return name(b.Stage, func(x *models.Stage) string { return x.Name })
	}},
	{Header: "Stagiaires", Width: 10, Value: func(b models.Brigade) any { return len(b.Stagiaires) }},
}

var PermissionColumns = []Column[models.Permission]{
	{Header: "Stagiaires", Width: 30, Value: func(p models.Permission) any {
		names := make([]string, 0, len(p.Stagiaires))
		for _, s := range p.Stagiaires {
			names = append(names, s.FullName())
		}
		return strings.Join(names, ", ")
	}},
	{Header: "Type", Width: 16, Value: func(p models.Permission) any { return string(p.Type) }},
	{Header: "Début", Width: 12, Value: func(p models.Permission) any { return dates.ISODate(p.StartDate) }},
	{Header: "Fin", Width: 12, Value: func(p models.Permission) any { return dates.ISODate(p.EndDate) }},
	{Header: "Durée (jours)", Width: 14, Value: func(p models.Permission) any { return p.Duration }},
}

func Stagiaires(items []models.Stagiaire) ([]byte, error) {
	return Workbook("Stagiaires", StagiaireColumns, items)
}

func Brigades(items []models.Brigade) ([]byte, error) {
	return Workbook("Brigades", BrigadeColumns, items)
}

func Permissions(items []models.Permission) ([]byte, error) {
	return Workbook("Permissions", PermissionColumns, items)
}
