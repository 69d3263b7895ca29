package form

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

type recorder struct {
	calls []string
}

type fakeRepo[T models.Entity] struct {
	rec    *recorder
	schema repositories.Schema
	last   *repositories.Mutation
	lastID string
	err    error
}

func (f *fakeRepo[T]) Schema() repositories.Schema          { return f.schema }
func (f *fakeRepo[T]) List(context.Context) ([]T, error)    { return nil, nil }
func (f *fakeRepo[T]) Remove(context.Context, string) error { return nil }
func (f *fakeRepo[T]) ItemID(e T) string                    { return e.Key() }

func (f *fakeRepo[T]) Create(_ context.Context, m *repositories.Mutation) (*T, error) {
	f.rec.calls = append(f.rec.calls, "create")
	f.last = m
	if f.err != nil {
		return nil, f.err
	}
	var zero T
	return &zero, nil
}

func (f *fakeRepo[T]) Update(_ context.Context, id string, m *repositories.Mutation) (*T, error) {
	f.rec.calls = append(f.rec.calls, "update")
	f.last, f.lastID = m, id
	if f.err != nil {
		return nil, f.err
	}
	var zero T
	return &zero, nil
}

type fakeFiles struct {
	rec *recorder
	ref models.FileRef
	err error
}

func (f *fakeFiles) Upload(_ context.Context, filename string, r io.Reader) (models.FileRef, error) {
	f.rec.calls = append(f.rec.calls, "upload:"+filename)
	io.ReadAll(r)
	return f.ref, f.err
}

func TestNewEditFlattensEntity(t *testing.T) {
	s := models.Stagiaire{
		Base:        models.Base{DocumentID: "s1"},
		MLE:         "M1",
		FirstName:   "Ali",
		DateOfBirth: "2001-05-04T00:00:00.000Z",
		Brigade:     &models.Brigade{Base: models.Base{DocumentID: "B1"}},
	}
	c, err := NewEdit(repositories.StagiaireSchema, "s1", s)
	if err != nil {
		t.Fatalf("NewEdit() error = %v", err)
	}

	if c.Mode() != Edit || c.ID() != "s1" {
		t.Errorf("mode/id = %v/%q", c.Mode(), c.ID())
	}
	if got := c.Value("date_of_birth"); got != "2001-05-04" {
		t.Errorf("date_of_birth = %v", got)
	}
	if got := c.Relation("brigade"); !reflect.DeepEqual(got, []string{"B1"}) {
		t.Errorf("brigade = %v", got)
	}
	if got := c.Relation("stage"); len(got) != 0 {
		t.Errorf("stage = %v", got)
	}
}

func TestNewEditMultiAndScalarRelations(t *testing.T) {
	p := models.Permission{
		Base:       models.Base{DocumentID: "p1"},
		Type:       models.PermissionMaladie,
		Stagiaires: []models.Stagiaire{{Base: models.Base{DocumentID: "a"}}, {Base: models.Base{DocumentID: "b"}}},
	}
	c, err := NewEdit(repositories.PermissionSchema, "p1", p)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Relation("stagiaires"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("stagiaires = %v", got)
	}

	u := models.User{Base: models.Base{ID: 4, DocumentID: "u4"}, Username: "doc", Role: &models.Role{ID: 3, Name: "doctor"}}
	uc, err := NewEdit(repositories.UserSchema, "4", u)
	if err != nil {
		t.Fatal(err)
	}
	if got := uc.Relation("role"); !reflect.DeepEqual(got, []string{"3"}) {
		t.Errorf("role = %v, want numeric id", got)
	}
}

func TestCanSubmit(t *testing.T) {
	c := NewCreate(repositories.RemarkSchema, nil)
	if c.CanSubmit() {
		t.Fatal("empty draft must not be submittable")
	}

	c.Apply(map[string]any{"date": "2024-03-01", "content": "Bon travail", "type": "Positive"})
	if !reflect.DeepEqual(c.Missing(), []string{"stagiaire"}) {
		t.Errorf("Missing() = %v", c.Missing())
	}

	c.SetRelation("stagiaire", "s1")
	if !c.CanSubmit() {
		t.Errorf("Missing() = %v", c.Missing())
	}

	c.Set("content", "")
	if c.CanSubmit() {
		t.Error("cleared required field must block submit")
	}
}

func TestSubmitUploadsBeforeWrite(t *testing.T) {
	rec := &recorder{}
	repo := &fakeRepo[models.Consultation]{rec: rec, schema: repositories.ConsultationSchema}
	files := &fakeFiles{rec: rec, ref: models.FileRef{ID: 8, DocumentID: "f8"}}

	c := NewCreate(repositories.ConsultationSchema, map[string]any{
		"date":      "2024-05-01",
		"note":      "RAS",
		"stagiaire": "s1",
	})
	c.AttachFile("scan.pdf", strings.NewReader("%PDF"))

	if _, err := Submit(context.Background(), c, repo, files); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !reflect.DeepEqual(rec.calls, []string{"upload:scan.pdf", "create"}) {
		t.Errorf("calls = %v", rec.calls)
	}
	if repo.last.File == nil || repo.last.File.DocumentID != "f8" {
		t.Errorf("mutation file = %+v", repo.last.File)
	}
}

func TestSubmitAbortsWhenUploadFails(t *testing.T) {
	rec := &recorder{}
	repo := &fakeRepo[models.Stagiaire]{rec: rec, schema: repositories.StagiaireSchema}
	files := &fakeFiles{rec: rec, err: errors.New("413 too large")}

	c := NewCreate(repositories.StagiaireSchema, map[string]any{
		"cin": "0123", "mle": "M1", "first_name": "Ali", "last_name": "B",
	})
	c.AttachFile("photo.png", strings.NewReader("png"))

	_, err := Submit(context.Background(), c, repo, files)
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("Submit() error = %v, want ErrUploadFailed", err)
	}
	if !reflect.DeepEqual(rec.calls, []string{"upload:photo.png"}) {
		t.Errorf("entity write must not be sent, calls = %v", rec.calls)
	}
}

func TestSubmitEmptyUploadReference(t *testing.T) {
	rec := &recorder{}
	repo := &fakeRepo[models.Stagiaire]{rec: rec, schema: repositories.StagiaireSchema}
	files := &fakeFiles{rec: rec}

	c := NewCreate(repositories.StagiaireSchema, map[string]any{
		"cin": "0123", "mle": "M1", "first_name": "Ali", "last_name": "B",
	})
	c.AttachFile("photo.png", strings.NewReader("png"))

	if _, err := Submit(context.Background(), c, repo, files); !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("calls = %v", rec.calls)
	}
}

func TestSubmitIncomplete(t *testing.T) {
	rec := &recorder{}
	repo := &fakeRepo[models.Remark]{rec: rec}

	_, err := Submit(context.Background(), NewCreate(repositories.RemarkSchema, nil), repo, nil)
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Submit() error = %v, want ErrIncomplete", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v", rec.calls)
	}
}

func TestSubmitEditSendsOriginals(t *testing.T) {
	rec := &recorder{}
	repo := &fakeRepo[models.Remark]{rec: rec, schema: repositories.RemarkSchema}

	r := models.Remark{
		Base:      models.Base{DocumentID: "r1"},
		Date:      "2024-03-01",
		Content:   "x",
		Type:      models.RemarkNegative,
		Stagiaire: &models.Stagiaire{Base: models.Base{DocumentID: "old"}},
	}
	c, err := NewEdit(repositories.RemarkSchema, "r1", r)
	if err != nil {
		t.Fatal(err)
	}
	c.SetRelation("stagiaire", "new")

	if _, err := Submit(context.Background(), c, repo, nil); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if repo.lastID != "r1" || !repo.last.Edit {
		t.Errorf("update id/edit = %q/%v", repo.lastID, repo.last.Edit)
	}
	if !reflect.DeepEqual(repo.last.Original["stagiaire"], []string{"old"}) {
		t.Errorf("Original = %v", repo.last.Original)
	}
	if !reflect.DeepEqual(repo.last.Relations["stagiaire"], []string{"new"}) {
		t.Errorf("Relations = %v", repo.last.Relations)
	}
}

func TestValidatePermissionDerivesDuration(t *testing.T) {
	c := NewCreate(repositories.PermissionSchema, map[string]any{
		"start_date": "2024-02-01",
		"end_date":   "2024-02-03",
		"type":       "Maladie",
		"stagiaires": []any{"s1"},
	})
	if errs := c.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v", errs)
	}
	if got := c.Value("duration"); got != 3 {
		t.Errorf("duration = %v, want 3", got)
	}

	c.Set("duration", float64(5))
	c.Validate()
	if got := c.Value("duration"); got != float64(5) {
		t.Errorf("explicit duration overwritten: %v", got)
	}
}

func TestValidateStageRejectsReversedDates(t *testing.T) {
	rec := &recorder{}
	repo := &fakeRepo[models.Stage]{rec: rec}
	c := NewCreate(repositories.StageSchema, map[string]any{
		"name": "Été", "start_date": "2024-07-01", "end_date": "2024-06-01",
	})

	_, err := Submit(context.Background(), c, repo, nil)
	var verrs utils.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 1 {
		t.Fatalf("Submit() error = %v, want one validation error", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v", rec.calls)
	}
}

func TestValidateUserPasswordOnCreate(t *testing.T) {
	c := NewCreate(repositories.UserSchema, map[string]any{"username": "amal", "email": "a@x.tn", "role": float64(3)})
	errs := c.Validate()
	if len(errs) != 1 || errs[0].Field != "password" {
		t.Errorf("Validate() = %v", errs)
	}
}

func TestMutationDropsEmptyDates(t *testing.T) {
	c := NewCreate(repositories.StagiaireSchema, map[string]any{"mle": "M1", "date_of_birth": ""})
	m := c.Mutation()
	if _, present := m.Fields["date_of_birth"]; present {
		t.Errorf("empty date sent: %v", m.Fields)
	}
	if m.Fields["mle"] != "M1" {
		t.Errorf("Fields = %v", m.Fields)
	}
}

func TestBrigadeYearInput(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "bare year string", value: "2024", want: "2024-01-01"},
		{name: "json number", value: float64(2023), want: "2023-01-01"},
		{name: "full timestamp", value: "2022-01-01T00:00:00.000Z", want: "2022-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCreate(repositories.BrigadeSchema, nil)
			c.Set("year", tt.value)
			if got := c.Value("year"); got != tt.want {
				t.Errorf("year = %v, want %q", got, tt.want)
			}
		})
	}
}
