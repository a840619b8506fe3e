package export

import (
	"fmt"
	"strings"

	"github.com/curlrequests/toneget/pkg/tonal"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// sjson reads dots and wildcards as path syntax, so they are escaped to
// address blocklisted keys literally.
var pathEscaper = strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`)

// TrimProfile lists the fields dropped from each record class when the
// optimized export mode is on.
type TrimProfile struct {
	UserFields    []string
	WorkoutFields []string
	SetFields     []string
}

// DefaultTrimProfile drops the machine-control and bookkeeping fields the
// downstream dashboards never read.
func DefaultTrimProfile() TrimProfile {
	return TrimProfile{
		UserFields: []string{
			"recentMobileDevice", "auth0Id", "isGuestAccount", "isDemoAccount",
			"watchedSafetyVideo", "social", "profileAssetID", "mobileWorkoutsEnabled",
			"accountType", "sharingCustomWorkoutsDisabled", "workoutDurationMin",
			"workoutDurationMax", "updatedPreferencesAt", "primaryDeviceType",
			"emailVerified", "workoutsPerWeek",
		},
		WorkoutFields: []string{"deletedAt"},
		SetFields: []string{
			"beginTimeMCB", "endTimeMCB",
			"romWeightMode", "romWeight", "romWeightFrac",
			"isoModeSpeed", "dualMotorReps", "suggestedResistanceLevel",
			"offMachineModifiedWeight", "userWeightPounds", "meanMaxPos",
			"velAtMaxConPower", "weightAtMaxConPower",
			"inchesUpdated", "powerUpdated",
			"triggeredFeedback", "reps",
			"workoutActivityID", "workoutId", "userId", "setId",
		},
	}
}

// Apply returns a trimmed copy of the envelope. The input is left untouched
// and trimming an already trimmed envelope is a no-op.
func (p TrimProfile) Apply(env *Envelope) *Envelope {
	out := *env
	out.User = trimDocument(env.User, p.UserFields)
	out.Profile = trimDocument(env.Profile, p.UserFields)

	trimmed := make([]tonal.Workout, len(env.Workouts))
	for i, w := range env.Workouts {
		trimmed[i] = p.trimWorkout(w)
	}
	out.Workouts = trimmed

	return &out
}

func (p TrimProfile) trimWorkout(w tonal.Workout) tonal.Workout {
	raw := w.Raw()
	raw = deleteFields(raw, "", p.WorkoutFields)

	setCount := gjson.Get(raw, "workoutSetActivity.#").Int()
	for i := int64(0); i < setCount; i++ {
		raw = deleteFields(raw, fmt.Sprintf("workoutSetActivity.%d.", i), p.SetFields)
	}

	return tonal.Workout{Document: tonal.NewDocument(raw)}
}

func trimDocument(doc tonal.Document, fields []string) tonal.Document {
	return tonal.NewDocument(deleteFields(doc.Raw(), "", fields))
}

func deleteFields(raw string, prefix string, fields []string) string {
	for _, field := range fields {
		if out, err := sjson.Delete(raw, prefix+pathEscaper.Replace(field)); err == nil {
			raw = out
		}
	}
	return raw
}
