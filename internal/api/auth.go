package api

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a backend account. Input is validated locally before
// any network call; a duplicate email surfaces as KindConflict.
func (c *Client) Register(ctx context.Context, email, password, name string) error {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return validationErr("name is required")
	case email == "":
		return validationErr("email is required")
	case !emailPattern.MatchString(email):
		return validationErr("%q is not a valid email address", email)
	case len(password) < 8:
		return validationErr("password must be at least 8 characters")
	}

	_, err := c.postAnon(ctx, "/v1/auth/register", registerRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	return err
}

// Login exchanges credentials for a bearer token. The endpoint speaks
// OAuth2 password-flow form encoding, with the email as the username.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", validationErr("email and password are required")
	}

	body, err := c.postForm(ctx, "/v1/auth/login", url.Values{
		"username": {email},
		"password": {password},
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" {
		return "", shapeErr("login response carried no access token")
	}
	return resp.AccessToken, nil
}
