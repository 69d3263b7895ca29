package strapi

import (
	"reflect"
	"testing"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

func TestEncodeRelation(t *testing.T) {
	single := repositories.RelationField{Name: "brigade"}
	multi := repositories.RelationField{Name: "stagiaires", Multi: true}
	scalar := repositories.RelationField{Name: "role", Scalar: true}

	tests := []struct {
		name     string
		field    repositories.RelationField
		current  []string
		original []string
		edit     bool
		want     any
		wantOK   bool
	}{
		{name: "single create set", field: single, current: []string{"B1"}, want: RelationPayload{Connect: []string{"B1"}}, wantOK: true},
		{name: "single create empty omitted", field: single},
		{name: "single edit cleared disconnects", field: single, original: []string{"X"}, edit: true, want: RelationPayload{Disconnect: []string{"X"}}, wantOK: true},
		{name: "single edit changed connects", field: single, current: []string{"Y"}, original: []string{"X"}, edit: true, want: RelationPayload{Connect: []string{"Y"}}, wantOK: true},
		{name: "single edit untouched empty omitted", field: single, edit: true},
		{name: "multi create", field: multi, current: []string{"a", "b", "a", ""}, want: RelationPayload{Connect: []string{"a", "b"}}, wantOK: true},
		{
			name: "multi edit connects current and disconnects removed", field: multi,
			current: []string{"b", "c"}, original: []string{"a", "b"}, edit: true,
			want: RelationPayload{Connect: []string{"b", "c"}, Disconnect: []string{"a"}}, wantOK: true,
		},
		{name: "multi edit cleared", field: multi, original: []string{"a"}, edit: true, want: RelationPayload{Connect: []string{}, Disconnect: []string{"a"}}, wantOK: true},
		{name: "scalar numeric", field: scalar, current: []string{"3"}, want: 3, wantOK: true},
		{name: "scalar empty omitted", field: scalar, original: []string{"3"}, edit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EncodeRelation(tt.field, tt.current, tt.original, tt.edit)
			if ok != tt.wantOK {
				t.Fatalf("EncodeRelation() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EncodeRelation() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEncodeMutationFileConvention(t *testing.T) {
	file := &models.FileRef{ID: 42, DocumentID: "doc42"}

	trainee := EncodeMutation(repositories.StagiaireSchema, &repositories.Mutation{
		Fields: map[string]any{"mle": "M1", "phone": nil},
		File:   file,
	})
	if trainee["image"] != 42 {
		t.Errorf("stagiaire image = %#v, want numeric id", trainee["image"])
	}
	if _, present := trainee["phone"]; present {
		t.Error("nil field should be omitted")
	}

	consultation := EncodeMutation(repositories.ConsultationSchema, &repositories.Mutation{
		Fields: map[string]any{"note": "ok"},
		File:   file,
	})
	if consultation["file"] != "doc42" {
		t.Errorf("consultation file = %#v, want documentId", consultation["file"])
	}
}

func TestEncodeMutationDropsUnmentionedRelations(t *testing.T) {
	data := EncodeMutation(repositories.StagiaireSchema, &repositories.Mutation{
		Fields:    map[string]any{"mle": "M1"},
		Relations: map[string][]string{"stage": {"S1"}},
	})
	if _, present := data["brigade"]; present {
		t.Errorf("brigade should be omitted: %v", data)
	}
	if _, present := data["stage"]; !present {
		t.Errorf("stage should be present: %v", data)
	}
}
