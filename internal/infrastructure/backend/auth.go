package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/autoparts-storefront/internal/application/session"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

var _ session.AuthGateway = (*Client)(nil)

// Login POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	var out loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out, "auth/login"); err != nil {
		return nil, "", err
	}
	return out.User.entity(), out.Token, nil
}

// Register POST /auth/register.
func (c *Client) Register(ctx context.Context, in entity.Registration) (*entity.User, error) {
	var out userWire
	body := userBody{RUT: in.RUT, Name: in.Name, Email: in.Email, Password: in.Password, Role: in.Role}
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &out, "auth/register"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// GetUser GET /usuarios/{id}.
func (c *Client) GetUser(ctx context.Context, token, id string) (*entity.User, error) {
	var out userWire
	if err := c.do(ctx, http.MethodGet, "/usuarios/"+seg(id), token, nil, &out, "usuarios"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// ListUsers GET /usuarios.
func (c *Client) ListUsers(ctx context.Context, token string) ([]*entity.User, error) {
	var out []userWire
	if err := c.do(ctx, http.MethodGet, "/usuarios", token, nil, &out, "usuarios"); err != nil {
		return nil, err
	}
	list := make([]*entity.User, 0, len(out))
	for _, w := range out {
		list = append(list, w.entity())
	}
	return list, nil
}

// UpdateUser PUT /usuarios/{id}.
func (c *Client) UpdateUser(ctx context.Context, token string, u *entity.User) (*entity.User, error) {
	var out userWire
	body := userBody{RUT: u.RUT, Name: u.Name, Email: u.Email, Role: u.Role}
	if err := c.do(ctx, http.MethodPut, "/usuarios/"+seg(u.ID), token, body, &out, "usuarios"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// DeleteUser DELETE /usuarios/{id}.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/usuarios/"+seg(id), token, nil, nil, "usuarios")
}
