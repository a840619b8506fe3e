package export

import (
	"sort"
	"time"

	"github.com/curlrequests/toneget/pkg/tonal"
)

const (
	// EnvelopeVersion is the export file format version.
	EnvelopeVersion = "3.0"

	// ExporterVersion is the version of the tool itself.
	ExporterVersion = "3.0.0"

	exportedWith = "ToneGet v" + ExporterVersion
)

// Envelope is the on-disk layout of an export. Field order here is the field
// order in the file.
type Envelope struct {
	Version               string                         `json:"version"`
	ExportedAt            string                         `json:"exportedAt"`
	ExportedWith          string                         `json:"exportedWith"`
	User                  tonal.Document                 `json:"user"`
	Profile               tonal.Document                 `json:"profile"`
	Workouts              []tonal.Workout                `json:"workouts"`
	CustomWorkouts        map[string]tonal.CustomWorkout `json:"customWorkouts"`
	StrengthScoreHistory  tonal.Document                 `json:"strengthScoreHistory"`
	CurrentStrengthScores tonal.StrengthScores           `json:"currentStrengthScores"`
}

// Assemble builds an export envelope from the downloaded pieces. Workouts are
// sorted newest first without touching the caller's slice, and the optional
// pieces fall back to their empty serializations so the envelope shape is
// always the same.
func Assemble(user tonal.Document, profile tonal.Document, workouts []tonal.Workout,
	customWorkouts map[string]tonal.CustomWorkout, history tonal.Document, current tonal.StrengthScores) *Envelope {

	sorted := make([]tonal.Workout, len(workouts))
	copy(sorted, workouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BeginTime() > sorted[j].BeginTime()
	})

	if customWorkouts == nil {
		customWorkouts = map[string]tonal.CustomWorkout{}
	}
	if profile.IsZero() {
		profile = tonal.NewDocument("{}")
	}
	if history.IsZero() {
		history = tonal.NewDocument("[]")
	}

	return &Envelope{
		Version:               EnvelopeVersion,
		ExportedAt:            time.Now().UTC().Format(time.RFC3339),
		ExportedWith:          exportedWith,
		User:                  user,
		Profile:               profile,
		Workouts:              sorted,
		CustomWorkouts:        customWorkouts,
		StrengthScoreHistory:  history,
		CurrentStrengthScores: current,
	}
}
