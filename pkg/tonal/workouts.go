package tonal

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/curlrequests/toneget/internal/utils"
	"github.com/curlrequests/toneget/pkg/whttp"
	"github.com/tidwall/gjson"
)

// Workout is a single workout activity exactly as the API returned it.
type Workout struct {
	Document
}

func (w Workout) Type() string {
	return w.Get("workoutType").String()
}

// TemplateID is the ID of the workout template this activity was started from.
func (w Workout) TemplateID() string {
	return w.Get("workoutId").String()
}

func (w Workout) BeginTime() string {
	return w.Get("beginTime").String()
}

// CustomWorkout is the slice of a workout template kept in the export.
type CustomWorkout struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	UserID string `json:"userId"`
}

func pageHeaders(offset int) []whttp.WHTTPHeader {
	return []whttp.WHTTPHeader{
		{Name: "pg-offset", Value: strconv.Itoa(offset)},
		{Name: "pg-limit", Value: strconv.Itoa(PAGE_SIZE)},
	}
}

func appendPage(workouts []Workout, body string) []Workout {
	for _, item := range gjson.Parse(body).Array() {
		workouts = append(workouts, Workout{NewDocument(item.Raw)})
	}
	return workouts
}

// DownloadWorkouts fetches every workout activity for the user. The API
// paginates through the pg-offset/pg-limit/pg-total headers; the first
// response announces the total and each page is requested exactly once.
// A failed page is skipped with a warning so one bad offset cannot kill
// an otherwise working export.
func (c *Client) DownloadWorkouts(ctx context.Context, userID string) ([]Workout, error) {
	endpoint := fmt.Sprintf(WORKOUT_ACTIVITIES_ENDPOINT, userID)

	res, err := c.get(ctx, endpoint, pageHeaders(0))
	if err != nil {
		return nil, err
	}
	if res.StatusCode != 200 {
		return nil, &APIError{StatusCode: res.StatusCode, Endpoint: endpoint}
	}

	// A missing or malformed pg-total means there is nothing to page through.
	total, _ := strconv.Atoi(res.Headers.Get("pg-total"))
	if total <= 0 {
		utils.Log.Info("No workouts found")
		return []Workout{}, nil
	}

	utils.Log.Infof("Found %d workouts to download", total)

	workouts := make([]Workout, 0, total)
	workouts = appendPage(workouts, res.BodyString)

	for offset := PAGE_SIZE; offset < total; offset += PAGE_SIZE {
		res, err := c.get(ctx, endpoint, pageHeaders(offset))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			utils.Log.Warnf("Error at offset %d, continuing: %v", offset, err)
			continue
		}
		if res.StatusCode != 200 {
			utils.Log.Warnf("Error at offset %d, continuing: status %d", offset, res.StatusCode)
			continue
		}

		workouts = appendPage(workouts, res.BodyString)

		downloaded := offset + PAGE_SIZE
		if downloaded > total {
			downloaded = total
		}
		utils.Log.Debugf("Downloaded %d/%d workouts", downloaded, total)
	}

	if len(workouts) < total {
		utils.Log.Warnf("Downloaded %d of %d workouts, the export will be partial", len(workouts), total)
	} else {
		utils.Log.Infof("Downloaded %d workouts", len(workouts))
	}

	return workouts, nil
}

// GetWorkoutTemplate fetches a single workout template by ID.
func (c *Client) GetWorkoutTemplate(ctx context.Context, workoutID string) (Document, error) {
	endpoint := fmt.Sprintf(WORKOUT_TEMPLATE_ENDPOINT, workoutID)

	res, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return Document{}, err
	}
	if res.StatusCode != 200 {
		return Document{}, &APIError{StatusCode: res.StatusCode, Endpoint: endpoint}
	}

	return NewDocument(res.BodyString), nil
}

// FetchCustomWorkouts resolves the user-created templates referenced by the
// given workout activities. Template IDs are deduplicated before fetching and
// a template that cannot be fetched is simply left out of the result, which
// is never nil.
func (c *Client) FetchCustomWorkouts(ctx context.Context, workouts []Workout) map[string]CustomWorkout {
	known := make(map[string]bool)
	for _, workoutType := range c.cfg.KnownWorkoutTypes {
		known[workoutType] = true
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, w := range workouts {
		templateID := w.TemplateID()
		if templateID == "" {
			continue
		}
		workoutType := w.Type()
		if workoutType != "Custom" && known[workoutType] {
			continue
		}
		if !seen[templateID] {
			seen[templateID] = true
			ids = append(ids, templateID)
		}
	}

	customWorkouts := make(map[string]CustomWorkout)
	if len(ids) == 0 {
		return customWorkouts
	}

	utils.Log.Infof("Fetching %d custom workout templates...", len(ids))

	idChan := make(chan string, c.cfg.Concurrency)
	var mutex sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < c.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for templateID := range idChan {
				if ctx.Err() != nil {
					continue
				}

				details, err := c.GetWorkoutTemplate(ctx, templateID)
				if err != nil {
					utils.Log.Warnf("Failed to fetch workout template %s: %v", templateID, err)
					continue
				}

				mutex.Lock()
				customWorkouts[templateID] = CustomWorkout{
					ID:     details.Get("id").String(),
					Title:  details.Get("title").String(),
					UserID: details.Get("userId").String(),
				}
				mutex.Unlock()
			}
		}()
	}

	for _, templateID := range ids {
		idChan <- templateID
	}
	close(idChan)
	wg.Wait()

	utils.Log.Infof("Fetched %d custom workout details", len(customWorkouts))
	return customWorkouts
}
