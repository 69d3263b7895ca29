// Package form holds the create/edit draft of one record and turns it into a CMS
// mutation. A pending file is always uploaded before the record write is sent.
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/trainee-dashboard/internal/dates"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
	"github.com/SAP-F-2025/trainee-dashboard/internal/validator"
)

var (
	ErrIncomplete   = errors.New("required fields are missing")
	ErrUploadFailed = errors.New("file upload failed")
)

type Mode int

const (
	Create Mode = iota
	Edit
)

func (m Mode) String() string {
	if m == Edit {
		return "edit"
	}
	return "create"
}

// PendingFile is a file chosen in the form but not uploaded yet.
type PendingFile struct {
	Filename string
	Content  io.Reader
}

// Controller is the draft of one record.
type Controller struct {
	mode      Mode
	schema    repositories.Schema
	id        string
	draft     map[string]any
	relations map[string][]string
	original  map[string][]string
	file      *PendingFile
	validator *validator.Validator
}

// NewCreate starts an empty draft. defaults pre-fills fields and relations.
func NewCreate(schema repositories.Schema, defaults map[string]any) *Controller {
	c := newController(Create, schema, "")
	c.Apply(defaults)
	return c
}

// NewEdit starts a draft from an existing entity. id is the path identifier the
// collection addresses the entity by. Date fields are normalised to YYYY-MM-DD and
// relations are flattened to id lists.
func NewEdit(schema repositories.Schema, id string, entity any) (*Controller, error) {
	c := newController(Edit, schema, id)

	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("flatten %s: %w", schema.Resource, err)
	}
	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("flatten %s: %w", schema.Resource, err)
	}

	for _, field := range schema.Fields {
		value, ok := flat[field]
		if !ok || value == nil {
			continue
		}
		c.draft[field] = value
	}
	for _, field := range schema.DateFields {
		if s, ok := c.draft[field].(string); ok {
			c.draft[field] = dates.ISODate(s)
		}
	}
	for _, rel := range schema.Relations {
		ids := relationIDs(flat[rel.Name], rel.Scalar)
		c.relations[rel.Name] = ids
		c.original[rel.Name] = slices.Clone(ids)
	}
	return c, nil
}

func newController(mode Mode, schema repositories.Schema, id string) *Controller {
	return &Controller{
		mode:      mode,
		schema:    schema,
		id:        id,
		draft:     map[string]any{},
		relations: map[string][]string{},
		original:  map[string][]string{},
		validator: validator.New(),
	}
}

func (c *Controller) Mode() Mode                  { return c.mode }
func (c *Controller) ID() string                  { return c.id }
func (c *Controller) Schema() repositories.Schema { return c.schema }

// Value returns the draft value of a scalar field.
func (c *Controller) Value(field string) any {
	return c.draft[field]
}

// Relation returns the selected ids of a relation field.
func (c *Controller) Relation(field string) []string {
	return slices.Clone(c.relations[field])
}

// Set changes one scalar field. Unknown fields are ignored.
func (c *Controller) Set(field string, value any) {
	if !slices.Contains(c.schema.Fields, field) {
		return
	}
	if slices.Contains(c.schema.DateFields, field) {
		value = dateValue(value)
	}
	c.draft[field] = value
}

// dateValue normalises a date input. A bare year, as sent by the brigade year
// picker, becomes January 1st of that year.
func dateValue(value any) any {
	switch v := value.(type) {
	case float64:
		return dates.YearDate(int(v))
	case int:
		return dates.YearDate(v)
	case string:
		if v = strings.TrimSpace(v); len(v) == 4 {
			if year, err := strconv.Atoi(v); err == nil {
				return dates.YearDate(year)
			}
		}
		return dates.ISODate(v)
	}
	return value
}

// SetRelation replaces the selection of a relation field.
func (c *Controller) SetRelation(field string, ids ...string) {
	if _, ok := c.schema.Relation(field); !ok {
		return
	}
	c.relations[field] = slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == "" })
}

// Apply copies a submitted body onto the draft. Relation values may be an id, a list
// of ids or populated objects.
func (c *Controller) Apply(input map[string]any) {
	for key, value := range input {
		if rel, ok := c.schema.Relation(key); ok {
			c.SetRelation(key, relationIDs(value, rel.Scalar)...)
			continue
		}
		c.Set(key, value)
	}
}

// AttachFile queues a file for upload on submit.
func (c *Controller) AttachFile(filename string, content io.Reader) {
	if content == nil {
		c.file = nil
		return
	}
	c.file = &PendingFile{Filename: filename, Content: content}
}

// HasFile reports whether a file is waiting to be uploaded.
func (c *Controller) HasFile() bool {
	return c.file != nil
}

// Missing lists the required fields that are still empty.
func (c *Controller) Missing() []string {
	var missing []string
	for _, field := range c.schema.Required {
		var value any
		if _, isRelation := c.schema.Relation(field); isRelation {
			value = c.relations[field]
		} else {
			value = c.draft[field]
		}
		if !c.validator.Filled(value) {
			missing = append(missing, field)
		}
	}
	return missing
}

// CanSubmit reports whether every required field is filled.
func (c *Controller) CanSubmit() bool {
	return len(c.Missing()) == 0
}

// Mutation converts the draft into a backend-neutral write.
func (c *Controller) Mutation() *repositories.Mutation {
	m := &repositories.Mutation{
		Edit:      c.mode == Edit,
		Fields:    make(map[string]any, len(c.draft)),
		Relations: make(map[string][]string, len(c.relations)),
		Original:  maps.Clone(c.original),
	}
	for key, value := range c.draft {
		if s, ok := value.(string); ok && s == "" && slices.Contains(c.schema.DateFields, key) {
			continue
		}
		m.Fields[key] = value
	}
	for key, ids := range c.relations {
		m.Relations[key] = slices.Clone(ids)
	}
	return m
}

// relationIDs flattens a relation value: {documentId} objects, bare ids, numbers or
// lists of any of those. Scalar relations are addressed by numeric id.
func relationIDs(value any, scalar bool) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}
	case int:
		return []string{strconv.Itoa(v)}
	case []string:
		return slices.DeleteFunc(slices.Clone(v), func(id string) bool { return id == "" })
	case []any:
		var ids []string
		for _, item := range v {
			ids = append(ids, relationIDs(item, scalar)...)
		}
		return ids
	case map[string]any:
		if !scalar {
			if doc, ok := v["documentId"].(string); ok && doc != "" {
				return []string{doc}
			}
		}
		if id, ok := v["id"].(float64); ok && id != 0 {
			return []string{strconv.FormatFloat(id, 'f', -1, 64)}
		}
		if doc, ok := v["documentId"].(string); ok && doc != "" {
			return []string{doc}
		}
	}
	return nil
}
