package portal

import "context"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. A 401 here carries the
// backend's own message (KindAuthInvalid), never a forced re-login.
func (c *Client) Login(ctx context.Context, email, password string) (*Response[Session], error) {
	var env Response[Session]
	if err := c.postJSON(ctx, loginPath, loginRequest{Email: email, Password: password}, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Logout invalidates the session on the backend. Local state is the
// caller's responsibility.
func (c *Client) Logout(ctx context.Context) (*Response[struct{}], error) {
	var env Response[struct{}]
	if err := c.postJSON(ctx, "/auth/logout", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// CurrentUser returns the account behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (*Response[User], error) {
	var env Response[User]
	if err := c.get(ctx, "/auth/user", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
