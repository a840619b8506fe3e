package export

import (
	"encoding/json"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/tidwall/pretty"
)

// Artifact is one file written to disk.
type Artifact struct {
	Filename string
	Size     int64
}

// SaveResult reports what Save wrote.
type SaveResult struct {
	JSON Artifact

	// Gzip is nil when compression was skipped.
	Gzip             *Artifact
	CompressionRatio float64
}

// Save writes the envelope as compact JSON to <baseFilename>.json and, when
// gzip is on, a maximum-compression copy to <baseFilename>.json.gz.
func Save(env *Envelope, baseFilename string, useGzip bool) (*SaveResult, error) {
	encoded, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	// Raw records pass through Marshal verbatim, so squeeze out any
	// whitespace the API sent along with them.
	encoded = pretty.Ugly(encoded)

	jsonFilename := baseFilename + ".json"
	if err := os.WriteFile(jsonFilename, encoded, 0644); err != nil {
		return nil, err
	}

	result := &SaveResult{
		JSON: Artifact{Filename: jsonFilename, Size: int64(len(encoded))},
	}

	if !useGzip {
		return result, nil
	}

	gzFilename := baseFilename + ".json.gz"
	f, err := os.Create(gzFilename)
	if err != nil {
		return nil, err
	}

	gzWriter, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		f.Close()
		return nil, err
	}
	if _, err := gzWriter.Write(encoded); err != nil {
		f.Close()
		return nil, err
	}
	if err := gzWriter.Close(); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	info, err := os.Stat(gzFilename)
	if err != nil {
		return nil, err
	}

	result.Gzip = &Artifact{Filename: gzFilename, Size: info.Size()}
	result.CompressionRatio = (1 - float64(info.Size())/float64(len(encoded))) * 100

	return result, nil
}
