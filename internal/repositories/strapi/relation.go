package strapi

import (
	"slices"
	"strconv"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

// RelationPayload is the CMS shape for mutating a reference.
type RelationPayload struct {
	Connect    []string `json:"connect,omitempty"`
	Disconnect []string `json:"disconnect,omitempty"`
}

// EncodeRelation shapes one relation field. The second result is false when the key
// must be left out of the body entirely.
//
// Clearing a relation while editing is not the same as not mentioning it: a single
// relation that had a value and now has none is sent as {disconnect: [old]}. Multi
// relations connect the current selection and disconnect whatever was removed.
func EncodeRelation(field repositories.RelationField, current, original []string, edit bool) (any, bool) {
	current = compact(current)
	original = compact(original)

	if field.Scalar {
		if len(current) == 0 {
			return nil, false
		}
		if n, err := strconv.Atoi(current[0]); err == nil {
			return n, true
		}
		return current[0], true
	}

	if !field.Multi {
		if len(current) > 0 {
			return RelationPayload{Connect: current[:1]}, true
		}
		if edit && len(original) > 0 {
			return RelationPayload{Disconnect: original[:1]}, true
		}
		return nil, false
	}

	var removed []string
	if edit {
		for _, id := range original {
			if !slices.Contains(current, id) {
				removed = append(removed, id)
			}
		}
	}
	if len(current) == 0 && len(removed) == 0 {
		return nil, false
	}
	return RelationPayload{Connect: current, Disconnect: removed}, true
}

// EncodeFile returns the identifier of an uploaded file in the convention the field uses.
func EncodeFile(field repositories.FileField, ref models.FileRef) any {
	if field.ByDocumentID {
		return ref.DocumentID
	}
	return ref.ID
}

// EncodeMutation builds the inner data object of a create/update body from a mutation.
func EncodeMutation(schema repositories.Schema, m *repositories.Mutation) map[string]any {
	data := make(map[string]any, len(m.Fields)+len(schema.Relations)+1)

	for key, value := range m.Fields {
		if value == nil {
			continue
		}
		if _, isRelation := schema.Relation(key); isRelation {
			continue
		}
		data[key] = value
	}

	for _, field := range schema.Relations {
		current, mentioned := m.Relations[field.Name]
		original := m.Original[field.Name]
		if !mentioned && !(m.Edit && len(original) > 0) {
			continue
		}
		if value, ok := EncodeRelation(field, current, original, m.Edit); ok {
			data[field.Name] = value
		}
	}

	if schema.File != nil && m.File != nil && !m.File.Empty() {
		data[schema.File.Name] = EncodeFile(*schema.File, *m.File)
	}

	return data
}

func compact(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
