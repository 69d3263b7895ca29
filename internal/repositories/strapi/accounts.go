package strapi

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

const (
	mePopulate       = "populate[role]=*&populate[profile]=*"
	accountsResource = "users-permissions"
)

// Accounts wraps the users-permissions endpoints that are not plain collections.
type Accounts struct {
	client *Client
}

func NewAccounts(client *Client) *Accounts {
	return &Accounts{client: client}
}

// Me returns the user owning the bearer token of ctx.
func (a *Accounts) Me(ctx context.Context) (*models.User, error) {
	if TokenFrom(ctx) == "" {
		return nil, ErrMissingToken
	}

	var user models.User
	resp, err := a.client.request(ctx).
		SetQueryString(mePopulate).
		Get("/api/users/me")
	if err := a.client.check(ctx, "users/me", "get", resp, err); err != nil {
		return nil, err
	}
	if err := decodeBody("users/me", resp.Body(), &user); err != nil {
		return nil, err
	}
	if user.ID == 0 && user.DocumentID == "" {
		return nil, fmt.Errorf("decode users/me: no user: %w", ErrEmptyResponse)
	}
	return &user, nil
}

// Roles lists every role defined in the CMS.
func (a *Accounts) Roles(ctx context.Context) ([]models.Role, error) {
	var body struct {
		Roles []models.Role `json:"roles"`
	}
	resp, err := a.client.request(ctx).
		Get("/api/users-permissions/roles")
	if err := a.client.check(ctx, accountsResource, "roles", resp, err); err != nil {
		return nil, err
	}
	if err := decodeBody(accountsResource, resp.Body(), &body); err != nil {
		return nil, err
	}
	if body.Roles == nil {
		body.Roles = []models.Role{}
	}
	return body.Roles, nil
}
