package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/collide/internal/scenario"
)

type ExportCrossing struct {
	Time     float32 `json:"time"`
	Kind     string  `json:"kind"`
	A        string  `json:"a"`
	B        string  `json:"b"`
	Distance float32 `json:"distance"`
}

type ExportData struct {
	Scenario  string             `json:"scenario"`
	Duration  float32            `json:"duration"`
	Crossings []ExportCrossing   `json:"crossings"`
	Actions   []scenario.Action  `json:"actions"`
	Pairs     []string           `json:"pairs"`
	Times     []float32          `json:"times"`
	Distances [][]float32        `json:"distances"`
	Metrics   map[string]float64 `json:"metrics"`
}

func exportData(result *scenario.Result) ExportData {
	data := ExportData{
		Scenario:  result.Name,
		Duration:  result.Duration,
		Crossings: make([]ExportCrossing, len(result.Crossings)),
		Actions:   result.Actions,
		Pairs:     result.Pairs,
		Times:     make([]float32, len(result.Samples)),
		Distances: make([][]float32, len(result.Samples)),
		Metrics:   result.Metrics,
	}
	for i, c := range result.Crossings {
		data.Crossings[i] = ExportCrossing{Time: c.Time, Kind: c.Kind.String(), A: c.A, B: c.B, Distance: c.Distance}
	}
	for i, s := range result.Samples {
		data.Times[i] = s.Time
		data.Distances[i] = s.Distances
	}
	return data
}

// ExportJSON writes the whole result as indented JSON.
func ExportJSON(w io.Writer, result *scenario.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(result))
}

func ExportJSONFile(path string, result *scenario.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, result)
}
