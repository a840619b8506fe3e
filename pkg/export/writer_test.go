package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/curlrequests/toneget/pkg/tonal"
	"github.com/klauspost/compress/gzip"
	"github.com/tidwall/gjson"
)

func writerFixture() *Envelope {
	workouts := make([]tonal.Workout, 0, 50)
	for i := 0; i < 50; i++ {
		raw := fmt.Sprintf(`{"id":"workout-%d","workoutType":"PROGRAM","totalVolume":12345,"beginTime":"2024-01-01T10:00:00Z"}`, i)
		workouts = append(workouts, tonal.Workout{Document: tonal.NewDocument(raw)})
	}

	return &Envelope{
		Version:              EnvelopeVersion,
		ExportedAt:           "2026-01-02T03:04:05Z",
		ExportedWith:         "ToneGet v" + ExporterVersion,
		User:                 tonal.NewDocument(`{"id":"u1"}`),
		Profile:              tonal.NewDocument("{}"),
		Workouts:             workouts,
		CustomWorkouts:       map[string]tonal.CustomWorkout{},
		StrengthScoreHistory: tonal.NewDocument("[]"),
	}
}

func TestSave(t *testing.T) {
	base := filepath.Join(t.TempDir(), "tonal_workouts_test")

	result, err := Save(writerFixture(), base, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.JSON.Filename != base+".json" {
		t.Fatalf("unexpected JSON filename: %s", result.JSON.Filename)
	}

	data, err := os.ReadFile(result.JSON.Filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gjson.ValidBytes(data) {
		t.Fatal("expected the JSON artifact to be valid JSON")
	}
	if bytes.ContainsAny(data, "\n\t") {
		t.Fatal("expected compact JSON output")
	}
	if int64(len(data)) != result.JSON.Size {
		t.Fatalf("expected JSON size %d, got %d", len(data), result.JSON.Size)
	}
	if gjson.GetBytes(data, "workouts.#").Int() != 50 {
		t.Fatalf("expected 50 workouts in the file, got %s", data)
	}

	if result.Gzip == nil {
		t.Fatal("expected a gzip artifact")
	}
	f, err := os.Open(result.Gzip.Filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decompressed, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("expected the gzip artifact to decompress to the JSON artifact")
	}

	info, err := os.Stat(result.Gzip.Filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Size() != result.Gzip.Size {
		t.Fatalf("expected gzip size %d, got %d", info.Size(), result.Gzip.Size)
	}

	// The fixture is repetitive enough that compression must help.
	if result.CompressionRatio <= 0 {
		t.Fatalf("expected a positive compression ratio, got %v", result.CompressionRatio)
	}
}

func TestSave_NoGzip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "tonal_workouts_test")

	result, err := Save(writerFixture(), base, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Gzip != nil {
		t.Fatalf("expected no gzip artifact, got %#v", result.Gzip)
	}

	if _, err := os.Stat(base + ".json.gz"); !os.IsNotExist(err) {
		t.Fatal("expected no gzip file on disk")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Fatalf("expected the JSON file on disk: %v", err)
	}
}
