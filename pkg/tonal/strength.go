package tonal

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/curlrequests/toneget/internal/utils"
	"github.com/tidwall/gjson"
)

// MuscleScore is one muscle family's strength score.
type MuscleScore struct {
	Score     int    `json:"score"`
	Region    string `json:"region"`
	UpdatedAt string `json:"updatedAt"`
}

// ParsedStrength is the region/muscle breakdown derived from the raw
// strength-score payload.
type ParsedStrength struct {
	Regions map[string]float64     `json:"regions"`
	Muscles map[string]MuscleScore `json:"muscles"`
}

// StrengthScores pairs the raw current-scores payload with its parsed
// breakdown. The zero value marshals as an empty object.
type StrengthScores struct {
	Raw    Document       `json:"raw"`
	Parsed ParsedStrength `json:"parsed"`
}

func (s StrengthScores) IsZero() bool {
	return s.Raw.IsZero()
}

func (s StrengthScores) MarshalJSON() ([]byte, error) {
	if s.Raw.IsZero() {
		return []byte("{}"), nil
	}

	type alias StrengthScores
	return json.Marshal(alias(s))
}

// GetStrengthScoreHistory fetches the user's full strength score history.
// The history is an optional extra: any failure is logged and an empty list
// is returned, except a cancelled context which aborts the run.
func (c *Client) GetStrengthScoreHistory(ctx context.Context, userID string) (Document, error) {
	endpoint := fmt.Sprintf(STRENGTH_HISTORY_ENDPOINT, userID)
	endpoint += fmt.Sprintf("?limit=%d&endDate=%s", HISTORY_LIMIT, time.Now().Format("2006-01-02"))

	empty := NewDocument("[]")

	res, err := c.get(ctx, endpoint, nil)
	if err != nil {
		if ctx.Err() != nil {
			return Document{}, ctx.Err()
		}
		utils.Log.Warnf("Failed to fetch strength score history: %v", err)
		return empty, nil
	}
	if res.StatusCode != 200 {
		utils.Log.Warnf("Failed to fetch strength score history: status %d", res.StatusCode)
		return empty, nil
	}

	history := gjson.Parse(res.BodyString)
	if !history.IsArray() {
		utils.Log.Warn("Strength score history response is not a list")
		return empty, nil
	}

	entries := history.Array()
	if len(entries) == 0 {
		utils.Log.Warn("No strength score history found")
		return empty, nil
	}

	utils.Log.Infof("Got %d strength score entries", len(entries))
	if overall := entries[0].Get("overall"); overall.Exists() {
		utils.Log.Infof("Current strength score: %s", overall.String())
	}

	return NewDocument(res.BodyString), nil
}

// GetCurrentStrengthScores fetches the per-region strength scores and derives
// the region and muscle maps from them. Like the history, this is optional:
// failures degrade to the zero value instead of killing the export.
func (c *Client) GetCurrentStrengthScores(ctx context.Context, userID string) (StrengthScores, error) {
	endpoint := fmt.Sprintf(STRENGTH_CURRENT_ENDPOINT, userID)

	res, err := c.get(ctx, endpoint, nil)
	if err != nil {
		if ctx.Err() != nil {
			return StrengthScores{}, ctx.Err()
		}
		utils.Log.Warnf("Failed to fetch current strength scores: %v", err)
		return StrengthScores{}, nil
	}
	if res.StatusCode != 200 {
		utils.Log.Warnf("Failed to fetch current strength scores: status %d", res.StatusCode)
		return StrengthScores{}, nil
	}

	regions := gjson.Parse(res.BodyString)
	if !regions.IsArray() || len(regions.Array()) == 0 {
		utils.Log.Warn("No granular strength score data found")
		return StrengthScores{}, nil
	}

	parsed := ParsedStrength{
		Regions: make(map[string]float64),
		Muscles: make(map[string]MuscleScore),
	}

	for _, region := range regions.Array() {
		regionName := region.Get("strengthBodyRegion").String()
		if regionName == "" {
			regionName = "Unknown"
		}
		parsed.Regions[regionName] = region.Get("score").Float()

		for _, muscle := range region.Get("familyActivity").Array() {
			muscleName := muscle.Get("strengthFamily").String()
			if muscleName == "" {
				muscleName = "Unknown"
			}
			parsed.Muscles[muscleName] = MuscleScore{
				Score:     int(math.Round(muscle.Get("score").Float())),
				Region:    regionName,
				UpdatedAt: muscle.Get("updatedAt").String(),
			}
		}
	}

	if overall, ok := parsed.Regions["Overall"]; ok {
		utils.Log.Infof("Overall strength score: %g", overall)
	}

	return StrengthScores{Raw: NewDocument(res.BodyString), Parsed: parsed}, nil
}
