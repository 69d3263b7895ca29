package repositories

// RelationField describes one reference of an entity.
//   - Multi relations hold a list of document ids.
//   - Scalar relations are sent as a bare numeric id instead of connect/disconnect
//     (the users-permissions role).
type RelationField struct {
	Name   string
	Multi  bool
	Scalar bool
}

// FileField describes a media attachment. ByDocumentID selects which identifier of the
// uploaded file is written into the record; the CMS models differ per entity.
type FileField struct {
	Name         string
	ByDocumentID bool
}

// Schema is the editable shape of an entity, shared by the form controller and the
// CMS client.
type Schema struct {
	Resource   string
	Fields     []string
	DateFields []string
	Required   []string
	Relations  []RelationField
	File       *FileField
}

// Relation returns the relation definition for name.
func (s Schema) Relation(name string) (RelationField, bool) {
	for _, r := range s.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return RelationField{}, false
}

var (
	StagiaireSchema = Schema{
		Resource:   "stagiaires",
		Fields:     []string{"cin", "mle", "first_name", "last_name", "grade", "date_of_birth", "phone", "blood_group"},
		DateFields: []string{"date_of_birth"},
		Required:   []string{"cin", "mle", "first_name", "last_name"},
		Relations: []RelationField{
			{Name: "specialite"},
			{Name: "stage"},
			{Name: "brigade"},
		},
		File: &FileField{Name: "image"},
	}

	SpecialiteSchema = Schema{
		Resource: "specialites",
		Fields:   []string{"name", "description"},
		Required: []string{"name"},
		Relations: []RelationField{
			{Name: "stagiaires", Multi: true},
			{Name: "brigades", Multi: true},
			{Name: "stages", Multi: true},
		},
	}

	StageSchema = Schema{
		Resource:   "stages",
		Fields:     []string{"name", "start_date", "end_date", "description"},
		DateFields: []string{"start_date", "end_date"},
		Required:   []string{"name", "start_date", "end_date"},
		Relations: []RelationField{
			{Name: "stagiaires", Multi: true},
			{Name: "specialites", Multi: true},
			{Name: "brigades", Multi: true},
		},
	}

	BrigadeNameSchema = Schema{
		Resource: "brigade-names",
		Fields:   []string{"name"},
		Required: []string{"name"},
	}

	BrigadeSchema = Schema{
		Resource:   "brigades",
		Fields:     []string{"year", "effectif"},
		DateFields: []string{"year"},
		Required:   []string{"year", "brigade_name"},
		Relations: []RelationField{
			{Name: "brigade_name"},
			{Name: "specialite"},
			{Name: "stage"},
			{Name: "stagiaires", Multi: true},
		},
	}

	PermissionSchema = Schema{
		Resource:   "permissions",
		Fields:     []string{"start_date", "end_date", "duration", "type"},
		DateFields: []string{"start_date", "end_date"},
		Required:   []string{"start_date", "end_date", "type", "stagiaires"},
		Relations: []RelationField{
			{Name: "stagiaires", Multi: true},
		},
	}

	PenitionSchema = Schema{
		Resource:   "penitions",
		Fields:     []string{"date", "motif", "description"},
		DateFields: []string{"date"},
		Required:   []string{"date", "motif", "stagiaires"},
		Relations: []RelationField{
			{Name: "stagiaires", Multi: true},
		},
	}

	RemarkSchema = Schema{
		Resource:   "remarks",
		Fields:     []string{"date", "content", "result", "type"},
		DateFields: []string{"date"},
		Required:   []string{"date", "content", "type", "stagiaire"},
		Relations: []RelationField{
			{Name: "stagiaire"},
		},
	}

	ConsultationSchema = Schema{
		Resource:   "consultations",
		Fields:     []string{"date", "note"},
		DateFields: []string{"date"},
		Required:   []string{"date", "stagiaire"},
		Relations: []RelationField{
			{Name: "stagiaire"},
		},
		File: &FileField{Name: "file", ByDocumentID: true},
	}

	UserSchema = Schema{
		Resource: "users",
		Fields:   []string{"username", "email", "password"},
		Required: []string{"username", "email", "role"},
		Relations: []RelationField{
			{Name: "role", Scalar: true},
		},
		File: &FileField{Name: "profile"},
	}
)
