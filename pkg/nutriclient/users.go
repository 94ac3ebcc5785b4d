package nutriclient

import (
	"context"
	"net/http"

	"github.com/pageza/nutriapp/backend/pkg/types"
)

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*Session, *types.Profile, error) {
	var resp types.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/Users/register", req, &resp); err != nil {
		return nil, nil, err
	}
	session, err := NewSession(resp.Token)
	if err != nil {
		return nil, nil, err
	}
	return session, &resp.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var token string
	if err := c.do(ctx, http.MethodPost, "/Users/login", types.LoginRequest{Email: email, Password: password}, &token); err != nil {
		return nil, err
	}
	return NewSession(token)
}

// EmailExists asks whether an account is registered for email.
func (c *Client) EmailExists(ctx context.Context, email string) (bool, error) {
	var resp types.CheckEmailResponse
	if err := c.do(ctx, http.MethodPost, "/auth/google/check-email", types.CheckEmailRequest{Email: email}, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// GoogleLogin trades a Google access token for a session.
func (c *Client) GoogleLogin(ctx context.Context, accessToken, email string) (*Session, error) {
	var token string
	req := types.GoogleLoginRequest{AccessToken: accessToken, Email: email}
	if err := c.do(ctx, http.MethodPost, "/auth/google/login", req, &token); err != nil {
		return nil, err
	}
	return NewSession(token)
}

func (c *Client) Profile(ctx context.Context) (*types.Profile, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}
	var profile types.Profile
	if err := c.do(ctx, http.MethodGet, "/Users/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile changes the name and username. Empty values are left alone.
func (c *Client) UpdateProfile(ctx context.Context, name, username string) (*types.Profile, error) {
	session, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	req := types.UpdateProfileRequest{UserID: session.UserID.String(), Name: name, Username: username}
	var profile types.Profile
	if err := c.do(ctx, http.MethodPut, "/Users/update-profile", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
