package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/collide/internal/attacher"
	"github.com/san-kum/collide/internal/scenario"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Duration  float32            `json:"duration"`
	Crossings int                `json:"crossings"`
	Actions   int                `json:"actions"`
	Pairs     []string           `json:"pairs"`
	Metrics   map[string]float64 `json:"metrics"`
	Stats     attacher.Stats     `json:"stats"`
}

func (s *Store) Save(result *scenario.Result) (string, error) {
	runID, runDir, err := s.newRunDir(result.Name)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  result.Name,
		Timestamp: time.Now(),
		Duration:  result.Duration,
		Crossings: len(result.Crossings),
		Actions:   len(result.Actions),
		Pairs:     result.Pairs,
		Metrics:   result.Metrics,
		Stats:     result.Stats,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	events := [][]string{{"time", "kind", "a", "b", "distance"}}
	for _, c := range result.Crossings {
		events = append(events, []string{formatFloat(c.Time), c.Kind.String(), c.A, c.B, formatFloat(c.Distance)})
	}
	if err := writeCSV(filepath.Join(runDir, "events.csv"), events); err != nil {
		return "", err
	}

	actions := [][]string{{"time", "body", "other", "behaviour"}}
	for _, a := range result.Actions {
		actions = append(actions, []string{formatFloat(a.Time), a.Body, a.Other, a.Behaviour})
	}
	if err := writeCSV(filepath.Join(runDir, "actions.csv"), actions); err != nil {
		return "", err
	}

	samples := [][]string{append([]string{"time"}, result.Pairs...)}
	for _, smp := range result.Samples {
		row := []string{formatFloat(smp.Time)}
		for _, d := range smp.Distances {
			row = append(row, formatFloat(d))
		}
		samples = append(samples, row)
	}
	if err := writeCSV(filepath.Join(runDir, "samples.csv"), samples); err != nil {
		return "", err
	}

	return runID, nil
}

// newRunDir creates a fresh directory for a run of name. Runs saved within
// the same millisecond get a numeric suffix.
func (s *Store) newRunDir(name string) (string, string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", strings.ReplaceAll(name, "/", "-"), time.Now().UnixMilli())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadEvents reads the crossings of a run. Rows that fail to parse are skipped.
func (s *Store) LoadEvents(runID string) ([]scenario.Record, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "events.csv"))
	if err != nil {
		return nil, err
	}

	out := make([]scenario.Record, 0, len(records))
	for _, rec := range records {
		if len(rec) < 5 {
			continue
		}
		t, err := parseFloat(rec[0])
		if err != nil {
			continue
		}
		kind, ok := parseKind(rec[1])
		if !ok {
			continue
		}
		d, err := parseFloat(rec[4])
		if err != nil {
			continue
		}
		out = append(out, scenario.Record{Time: t, Kind: kind, A: rec[2], B: rec[3], Distance: d})
	}
	return out, nil
}

// LoadSamples reads the distance samples of a run with their pair labels.
func (s *Store) LoadSamples(runID string) ([]string, []scenario.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return []string{}, []scenario.Sample{}, nil
	}

	pairs := rows[0][1:]
	samples := make([]scenario.Sample, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		t, err := parseFloat(row[0])
		if err != nil {
			continue
		}
		ds := make([]float32, 0, len(row)-1)
		for _, v := range row[1:] {
			d, err := parseFloat(v)
			if err != nil {
				continue
			}
			ds = append(ds, d)
		}
		samples = append(samples, scenario.Sample{Time: t, Distances: ds})
	}

	return pairs, samples, nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// readCSV returns every row after the header.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return [][]string{}, nil
	}
	return rows[1:], nil
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 32)
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func parseKind(s string) (attacher.Kind, bool) {
	for _, k := range []attacher.Kind{attacher.Upper, attacher.Intermediate, attacher.Lower} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
