package strapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
)

// Envelope is the body shape a collection uses.
type Envelope int

const (
	// Wrapped bodies are {data: ...} with pagination under meta.
	Wrapped Envelope = iota
	// Bare bodies are the entity (or array) itself; the users-permissions
	// plugin answers this way.
	Bare
)

// pageSize is the largest page the CMS returns by default.
const pageSize = 100

// ResourceDef configures one collection.
type ResourceDef struct {
	Schema   repositories.Schema
	Populate string
	Envelope Envelope
	// PathByNumericID addresses single records by numeric id instead of documentId.
	PathByNumericID bool
}

// Resource is the generic CMS repository of one collection.
type Resource[T models.Entity] struct {
	client *Client
	def    ResourceDef
}

// NewResource binds a collection definition to a client.
func NewResource[T models.Entity](client *Client, def ResourceDef) *Resource[T] {
	return &Resource[T]{client: client, def: def}
}

func (r *Resource[T]) Schema() repositories.Schema {
	return r.def.Schema
}

func (r *Resource[T]) name() string {
	return r.def.Schema.Resource
}

func (r *Resource[T]) collectionPath() string {
	return "/api/" + r.name()
}

func (r *Resource[T]) itemPath(id string) string {
	return r.collectionPath() + "/" + url.PathEscape(id)
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
	Meta struct {
		Pagination struct {
			Page      int `json:"page"`
			PageSize  int `json:"pageSize"`
			PageCount int `json:"pageCount"`
			Total     int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

type itemEnvelope[T any] struct {
	Data *T `json:"data"`
}

// List fetches the whole collection. Wrapped collections are walked page by page.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	if r.def.Envelope == Bare {
		return r.listBare(ctx)
	}

	var items []T
	for page := 1; ; page++ {
		query, err := r.listQuery(page)
		if err != nil {
			return nil, err
		}

		var body listEnvelope[T]
		resp, err := r.client.request(ctx).
			SetQueryString(query).
			Get(r.collectionPath())
		if err := r.client.check(ctx, r.name(), "list", resp, err); err != nil {
			return nil, err
		}
		if err := decodeBody(r.name(), resp.Body(), &body); err != nil {
			return nil, err
		}

		items = append(items, body.Data...)
		if page >= body.Meta.Pagination.PageCount || len(body.Data) == 0 {
			break
		}
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T]) listBare(ctx context.Context) ([]T, error) {
	var items []T
	resp, err := r.client.request(ctx).
		SetQueryString(r.def.Populate).
		Get(r.collectionPath())
	if err := r.client.check(ctx, r.name(), "list", resp, err); err != nil {
		return nil, err
	}
	if err := decodeBody(r.name(), resp.Body(), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// listQuery merges the populate expression with the pagination parameters.
func (r *Resource[T]) listQuery(page int) (string, error) {
	values, err := url.ParseQuery(r.def.Populate)
	if err != nil {
		return "", fmt.Errorf("invalid populate for %s: %w", r.name(), err)
	}
	values.Set("pagination[page]", strconv.Itoa(page))
	values.Set("pagination[pageSize]", strconv.Itoa(pageSize))
	return values.Encode(), nil
}

// Create posts a new record.
func (r *Resource[T]) Create(ctx context.Context, m *repositories.Mutation) (*T, error) {
	req := r.client.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(r.body(m))

	raw, err := r.send(ctx, "create", func() (*resty.Response, error) { return req.Post(r.collectionPath()) })
	if err != nil {
		return nil, err
	}
	return r.decode(raw)
}

// Update replaces the editable fields of an existing record.
func (r *Resource[T]) Update(ctx context.Context, id string, m *repositories.Mutation) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("update %s: empty id", r.name())
	}
	req := r.client.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(r.body(m))

	raw, err := r.send(ctx, "update", func() (*resty.Response, error) { return req.Put(r.itemPath(id)) })
	if err != nil {
		return nil, err
	}
	return r.decode(raw)
}

// Remove deletes a record. Only 204 No Content counts as success; any other 2xx
// answer is reported as ErrDeleteNotConfirmed.
func (r *Resource[T]) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("remove %s: empty id", r.name())
	}
	resp, err := r.client.request(ctx).Delete(r.itemPath(id))
	if err := r.client.check(ctx, r.name(), "remove", resp, err); err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusNoContent {
		r.client.logger.WarnContext(ctx, "CMS delete not confirmed",
			"resource", r.name(),
			"id", id,
			"status", resp.StatusCode())
		return fmt.Errorf("remove %s %s: %w (status %d)", r.name(), id, ErrDeleteNotConfirmed, resp.StatusCode())
	}
	return nil
}

func (r *Resource[T]) body(m *repositories.Mutation) any {
	data := EncodeMutation(r.def.Schema, m)
	if r.def.Envelope == Bare {
		return data
	}
	return map[string]any{"data": data}
}

func (r *Resource[T]) send(ctx context.Context, op string, do func() (*resty.Response, error)) ([]byte, error) {
	resp, err := do()
	if err := r.client.check(ctx, r.name(), op, resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// decode reads the saved entity of a create/update answer. An answer without an
// entity is ErrEmptyResponse.
func (r *Resource[T]) decode(raw []byte) (*T, error) {
	if r.def.Envelope == Bare {
		var item T
		if err := decodeBody(r.name(), raw, &item); err != nil {
			return nil, err
		}
		return &item, nil
	}
	var body itemEnvelope[T]
	if err := decodeBody(r.name(), raw, &body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return nil, fmt.Errorf("decode %s: %w", r.name(), ErrEmptyResponse)
	}
	return body.Data, nil
}

// ItemID returns the path identifier of an entity for this collection.
func (r *Resource[T]) ItemID(e T) string {
	if r.def.PathByNumericID {
		return strconv.Itoa(e.NumericID())
	}
	return e.Key()
}
