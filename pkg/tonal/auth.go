package tonal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/curlrequests/toneget/pkg/whttp"
	"github.com/tidwall/gjson"
)

type loginRequest struct {
	GrantType string `json:"grant_type"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Scope     string `json:"scope"`
}

// Login exchanges account credentials for an API session using the OAuth2
// resource owner password grant, the same flow the vendor's mobile app uses.
// The API accepts the id_token as bearer, not the access_token.
func (c *Client) Login(ctx context.Context, email string, password string) error {
	payload, err := json.Marshal(loginRequest{
		GrantType: "password",
		ClientID:  c.cfg.ClientID,
		Username:  email,
		Password:  password,
		Scope:     AUTH_SCOPE,
	})
	if err != nil {
		return err
	}

	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		URL:    c.cfg.AuthBase + TOKEN_ENDPOINT,
		Method: "POST",
		Body:   string(payload),
		Headers: []whttp.WHTTPHeader{
			{Name: "Content-Type", Value: "application/json"},
		},
	}, c.httpClient)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to connect to Tonal: %v", err)
	}

	switch {
	case res.StatusCode == 401:
		return ErrInvalidCredentials
	case res.StatusCode == 403:
		return ErrAccessDenied
	case res.StatusCode != 200:
		return fmt.Errorf("authentication failed: %d - %s", res.StatusCode, res.BodyString)
	}

	idToken := gjson.Get(res.BodyString, "id_token").String()
	if idToken == "" {
		return errors.New("authentication response missing id_token")
	}

	c.idToken = idToken
	return nil
}
