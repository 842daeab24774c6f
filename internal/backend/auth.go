package backend

import (
	"context"
	"errors"
	"net/http"
)

type AuthResult struct {
	User    User
	Message string
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User *User `json:"user"`
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (AuthResult, error) {
	return c.authenticate(ctx, "signup", "/signup", signupRequest{Name: name, Email: email, Password: password})
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	return c.authenticate(ctx, "login", "/login", loginRequest{Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, op, path string, body any) (AuthResult, error) {
	var resp authResponse
	message, err := c.do(ctx, op, http.MethodPost, path, body, &resp)
	if err != nil {
		return AuthResult{}, err
	}
	if resp.User == nil {
		return AuthResult{}, &Error{Kind: KindProtocol, Op: op, Status: http.StatusOK, Err: errors.New("response has no user")}
	}
	return AuthResult{User: *resp.User, Message: message}, nil
}

func (c *Client) Logout(ctx context.Context) (string, error) {
	return c.do(ctx, "logout", http.MethodPost, "/logout", nil, nil)
}

// CheckAuth probes the backend session. An unauthenticated probe answers 401;
// that is reported as a non-authenticated status rather than an error.
func (c *Client) CheckAuth(ctx context.Context) (AuthStatus, error) {
	var status AuthStatus
	_, err := c.do(ctx, "check_auth", http.MethodGet, "/check_auth", nil, &status)
	if err != nil {
		if IsKind(err, KindProtocol) && AsError("check_auth", err).Status == http.StatusUnauthorized {
			return AuthStatus{}, nil
		}
		return AuthStatus{}, err
	}
	if status.Authenticated && status.User == nil {
		return AuthStatus{}, &Error{Kind: KindProtocol, Op: "check_auth", Status: http.StatusOK, Err: errors.New("authenticated response has no user")}
	}
	return status, nil
}
