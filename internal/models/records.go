package models

type PermissionType string

const (
	PermissionMaladie        PermissionType = "Maladie"
	PermissionExceptionnelle PermissionType = "Exceptionnelle"
	PermissionReguliere      PermissionType = "Reguliere"
	PermissionConvalescence  PermissionType = "Convalescence"
)

// PermissionTypes lists the leave categories accepted by the CMS.
var PermissionTypes = []PermissionType{
	PermissionMaladie,
	PermissionExceptionnelle,
	PermissionReguliere,
	PermissionConvalescence,
}

// Permission is a leave record. Duration is in days and stays editable on its own.
type Permission struct {
	Base
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date"`
	Duration   int            `json:"duration"`
	Type       PermissionType `json:"type"`
	Stagiaires []Stagiaire    `json:"stagiaires,omitempty"`
}

// Penition is a punishment record.
type Penition struct {
	Base
	Date        string      `json:"date"`
	Motif       string      `json:"motif"`
	Description string      `json:"description"`
	Stagiaires  []Stagiaire `json:"stagiaires,omitempty"`
}

type RemarkType string

const (
	RemarkPositive RemarkType = "Positive"
	RemarkNegative RemarkType = "Negative"
)

type Remark struct {
	Base
	Date      string     `json:"date"`
	Content   string     `json:"content"`
	Result    string     `json:"result"`
	Type      RemarkType `json:"type"`
	Stagiaire *Stagiaire `json:"stagiaire,omitempty"`
}

type Consultation struct {
	Base
	Date      string     `json:"date"`
	Note      string     `json:"note"`
	File      *FileRef   `json:"file,omitempty"`
	Stagiaire *Stagiaire `json:"stagiaire,omitempty"`
}
