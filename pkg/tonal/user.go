package tonal

import (
	"context"
	"fmt"

	"github.com/curlrequests/toneget/internal/utils"
)

// GetUserInfo fetches the authenticated user's account record. The user ID in
// it drives every other API call, so a failure here is fatal to the run.
func (c *Client) GetUserInfo(ctx context.Context) (Document, error) {
	res, err := c.get(ctx, USERINFO_ENDPOINT, nil)
	if err != nil {
		return Document{}, err
	}
	if res.StatusCode != 200 {
		return Document{}, &APIError{StatusCode: res.StatusCode, Endpoint: USERINFO_ENDPOINT}
	}

	return NewDocument(res.BodyString), nil
}

// GetUserProfile fetches the user's workout statistics. The profile is nice to
// have, not required: a rejected request leaves an empty object in the export.
// Transport errors still abort, they mean the API is unreachable.
func (c *Client) GetUserProfile(ctx context.Context, userID string) (Document, error) {
	endpoint := fmt.Sprintf(USER_PROFILE_ENDPOINT, userID)

	res, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return Document{}, err
	}
	if res.StatusCode != 200 {
		utils.Log.Warnf("Failed to fetch user profile: status %d", res.StatusCode)
		return NewDocument("{}"), nil
	}

	return NewDocument(res.BodyString), nil
}
