package models

// ===== TRAINEE PROGRAM RECORDS =====

type Stagiaire struct {
	Base
	CIN         string       `json:"cin"`
	MLE         string       `json:"mle"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Grade       string       `json:"grade"`
	DateOfBirth string       `json:"date_of_birth"`
	Phone       string       `json:"phone"`
	BloodGroup  string       `json:"blood_group"`
	Image       *FileRef     `json:"image,omitempty"`
	Specialite  *Specialite  `json:"specialite,omitempty"`
	Stage       *Stage       `json:"stage,omitempty"`
	Brigade     *Brigade     `json:"brigade,omitempty"`
	Remarks     []Remark     `json:"remarks,omitempty"`
	Penitions   []Penition   `json:"penitions,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// FullName joins first and last name the way the tables display it.
func (s Stagiaire) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

type Specialite struct {
	Base
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Stagiaires  []Stagiaire `json:"stagiaires,omitempty"`
	Brigades    []Brigade   `json:"brigades,omitempty"`
	Stages      []Stage     `json:"stages,omitempty"`
}

// Stage is a training period.
type Stage struct {
	Base
	Name        string       `json:"name"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Description string       `json:"description"`
	Stagiaires  []Stagiaire  `json:"stagiaires,omitempty"`
	Specialites []Specialite `json:"specialites,omitempty"`
	Brigades    []Brigade    `json:"brigades,omitempty"`
}

// BrigadeName is the separately managed lookup of brigade labels.
type BrigadeName struct {
	Base
	Name string `json:"name"`
}

// Brigade groups trainees for an academic year. Year is stored as a full date.
type Brigade struct {
	Base
	Year        string       `json:"year"`
	Effectif    int          `json:"effectif"`
	BrigadeName *BrigadeName `json:"brigade_name,omitempty"`
	Specialite  *Specialite  `json:"specialite,omitempty"`
	Stage       *Stage       `json:"stage,omitempty"`
	Stagiaires  []Stagiaire  `json:"stagiaires,omitempty"`
}

// Label returns the brigade lookup name, or an empty string.
func (b Brigade) Label() string {
	if b.BrigadeName == nil {
		return ""
	}
	return b.BrigadeName.Name
}
