package export

import "github.com/tidwall/gjson"

// Summary holds the headline numbers printed once an export finishes.
type Summary struct {
	Workouts       int
	CustomWorkouts int
	TotalVolume    float64
	TotalReps      int64
	FirstWorkout   string
	LastWorkout    string

	HasStrengthScore bool
	Overall          string
	Upper            string
	Lower            string
	Core             string
}

// Summarize computes the summary for an envelope. Date bounds come from the
// workouts' beginTime and are reported as bare dates.
func Summarize(env *Envelope) Summary {
	s := Summary{
		Workouts:       len(env.Workouts),
		CustomWorkouts: len(env.CustomWorkouts),
	}

	for _, w := range env.Workouts {
		s.TotalVolume += w.Get("totalVolume").Float()
		s.TotalReps += w.Get("totalReps").Int()

		begin := w.BeginTime()
		if begin == "" {
			continue
		}
		if s.FirstWorkout == "" || begin < s.FirstWorkout {
			s.FirstWorkout = begin
		}
		if s.LastWorkout == "" || begin > s.LastWorkout {
			s.LastWorkout = begin
		}
	}
	s.FirstWorkout = dateOnly(s.FirstWorkout)
	s.LastWorkout = dateOnly(s.LastWorkout)

	if latest := env.StrengthScoreHistory.Get("0"); latest.Exists() {
		s.HasStrengthScore = true
		s.Overall = scoreOrNA(latest.Get("overall"))
		s.Upper = scoreOrNA(latest.Get("upper"))
		s.Lower = scoreOrNA(latest.Get("lower"))
		s.Core = scoreOrNA(latest.Get("core"))
	}

	return s
}

func dateOnly(timestamp string) string {
	if len(timestamp) > 10 {
		return timestamp[:10]
	}
	return timestamp
}

func scoreOrNA(result gjson.Result) string {
	if !result.Exists() {
		return "N/A"
	}
	return result.String()
}
