package api

import (
	"context"
	"net/http"
)

// User is the account profile the API returns
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns a session token
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &MalformedResponseError{Reason: "register response has no token"}
	}
	return &resp, nil
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &MalformedResponseError{Reason: "login response has no token"}
	}
	return &resp, nil
}

// GetProfile fetches the authenticated user's profile
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
