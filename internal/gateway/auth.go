package gateway

import (
	"context"
	"net/http"

	"parley/client/internal/model"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

// Login exchanges credentials for the viewer identity. Invalid credentials
// come back as an auth failure, malformed input as a validation failure.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	var resp loginResponse
	req := credentialsRequest{Username: creds.Username, Password: creds.Password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return model.User{}, err
	}
	user := resp.User
	if user.ID <= 0 || user.Username == "" {
		return model.User{}, &APIError{Code: CodeRemote, Message: "malformed login response"}
	}
	user.Role = model.NormalizeRole(string(user.Role))
	return user, nil
}

// Signup registers a new account. It returns no user; the caller logs in
// afterwards.
func (c *Client) Signup(ctx context.Context, creds model.Credentials) error {
	req := credentialsRequest{Username: creds.Username, Password: creds.Password}
	return c.do(ctx, http.MethodPost, "/auth/signup", nil, req, nil)
}
