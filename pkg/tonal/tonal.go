package tonal

import (
	"context"

	"github.com/curlrequests/toneget/pkg/whttp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	DEFAULT_API_BASE  = "https://api.tonal.com"
	DEFAULT_AUTH_BASE = "https://tonal.auth0.com"

	// Tonal's public OAuth2 client, the same one their mobile app ships with.
	DEFAULT_CLIENT_ID = "ERCyexW-xoVG_Yy3RDe-eV4xsOnRHP6L"

	TOKEN_ENDPOINT              = "/oauth/token"
	USERINFO_ENDPOINT           = "/v6/users/userinfo"
	USER_PROFILE_ENDPOINT       = "/v6/users/%s/profile"
	WORKOUT_ACTIVITIES_ENDPOINT = "/v6/users/%s/workout-activities"
	WORKOUT_TEMPLATE_ENDPOINT   = "/v6/workouts/%s"
	STRENGTH_HISTORY_ENDPOINT   = "/v6/users/%s/strength-scores/history"
	STRENGTH_CURRENT_ENDPOINT   = "/v6/users/%s/strength-scores/current"

	AUTH_SCOPE = "openid profile email offline_access"

	// API maximum for pg-limit
	PAGE_SIZE = 100

	HISTORY_LIMIT = 5000

	DEFAULT_CONCURRENCY = 3
)

// Workout types the Tonal catalog ships with. A workout activity carrying any
// other type points at a user-created template.
var DefaultKnownWorkoutTypes = []string{"PROGRAM", "ON_DEMAND", "QUICK_FIT", "LIVE", "MOVEMENT", "ASSESSMENT"}

type Config struct {
	APIBase           string
	AuthBase          string
	ClientID          string
	Concurrency       int
	KnownWorkoutTypes []string
}

func DefaultConfig() Config {
	return Config{
		APIBase:           DEFAULT_API_BASE,
		AuthBase:          DEFAULT_AUTH_BASE,
		ClientID:          DEFAULT_CLIENT_ID,
		Concurrency:       DEFAULT_CONCURRENCY,
		KnownWorkoutTypes: DefaultKnownWorkoutTypes,
	}
}

// Client talks to the Tonal cloud API on behalf of a single account.
// Login must succeed before any other call.
type Client struct {
	cfg        Config
	httpClient *retryablehttp.Client
	idToken    string
}

// NewClient returns a client for the given config. Zero fields fall back to
// the defaults, so NewClient(tonal.Config{}) is a working production client.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.APIBase == "" {
		cfg.APIBase = def.APIBase
	}
	if cfg.AuthBase == "" {
		cfg.AuthBase = def.AuthBase
	}
	if cfg.ClientID == "" {
		cfg.ClientID = def.ClientID
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.KnownWorkoutTypes == nil {
		cfg.KnownWorkoutTypes = def.KnownWorkoutTypes
	}

	return &Client{
		cfg:        cfg,
		httpClient: whttp.GetDefaultClient(),
	}
}

// get performs an authenticated GET against the API.
func (c *Client) get(ctx context.Context, path string, extraHeaders []whttp.WHTTPHeader) (*whttp.WHTTPRes, error) {
	headers := []whttp.WHTTPHeader{
		{Name: "Authorization", Value: "Bearer " + c.idToken},
	}
	headers = append(headers, extraHeaders...)

	return whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		URL:     c.cfg.APIBase + path,
		Method:  "GET",
		Headers: headers,
	}, c.httpClient)
}
