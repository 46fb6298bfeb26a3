// Package storage persists completed runs: a metadata.json per run plus a
// states.csv with one row per tick and four columns per blob.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/lavasim/internal/sim"
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
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Ticks     int                `json:"ticks"`
	Blobs     int                `json:"blobs"`
	Collision string             `json:"collision"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(seed int64, dt float64, collision string, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("lamp_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	blobs := 0
	if len(result.Snapshots) > 0 {
		blobs = len(result.Snapshots[0].Blobs)
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Ticks:     result.TicksTaken,
		Blobs:     blobs,
		Collision: collision,
		Metrics:   result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Snapshots) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range result.Snapshots[0].Blobs {
		header = append(header,
			fmt.Sprintf("b%d_x", i),
			fmt.Sprintf("b%d_y", i),
			fmt.Sprintf("b%d_temp", i),
			fmt.Sprintf("b%d_density", i),
		)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, snap := range result.Snapshots {
		row := []string{strconv.FormatFloat(snap.Time, 'f', 6, 64)}
		for _, b := range snap.Blobs {
			row = append(row,
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Temperature, 'f', 6, 64),
				strconv.FormatFloat(b.Density, 'f', 6, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
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

// LoadStates reads back the per-tick rows: times plus the flattened blob
// columns in header order (x, y, temperature, density per blob).
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		state := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		states = append(states, state)
	}

	return states, times, nil
}

// ExportJSONStdout writes a run's metadata and state rows to stdout as a
// single JSON document.
func ExportJSONStdout(meta *RunMetadata, states [][]float64, times []float64) error {
	doc := struct {
		Meta   *RunMetadata `json:"meta"`
		Times  []float64    `json:"times"`
		States [][]float64  `json:"states"`
	}{meta, times, states}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
