package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

const (
	metadataFile     = "metadata.json"
	trajectoriesFile = "trajectories.csv"
)

var csvHeader = []string{"traj", "index", "time", "x", "y", "z"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string { return filepath.Join(s.baseDir, runID) }

type RunMetadata struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	T0           float64            `json:"t0"`
	T1           float64            `json:"t1"`
	Samples      int                `json:"samples"`
	Integrator   string             `json:"integrator"`
	Trajectories int                `json:"trajectories"`
	Diverged     int                `json:"diverged"`
	Lyapunov     float64            `json:"lyapunov,omitempty"`
	Params       map[string]float64 `json:"params,omitempty"`
}

// Run is a completed integration ready to persist.
type Run struct {
	Seed         int64
	Integrator   string
	Trajectories []*dynamo.Trajectory
	Lyapunov     float64
	Params       map[string]float64
}

// Save writes run under a new directory and returns its id.
func (s *Store) Save(run Run) (string, error) {
	if len(run.Trajectories) == 0 {
		return "", dynamo.NewConfigError("trajectories", "nothing to save")
	}

	now := time.Now()
	runID := fmt.Sprintf("lorenz_%d", now.UnixNano())
	runDir := s.Dir(runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Timestamp:    now,
		Seed:         run.Seed,
		Integrator:   run.Integrator,
		Trajectories: len(run.Trajectories),
		Lyapunov:     run.Lyapunov,
		Params:       run.Params,
	}
	first := run.Trajectories[0]
	meta.Samples = first.Len()
	if n := len(first.Times); n > 0 {
		meta.T0, meta.T1 = first.Times[0], first.Times[n-1]
	}
	for _, t := range run.Trajectories {
		if !t.Finite() {
			meta.Diverged++
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectories(filepath.Join(runDir, trajectoriesFile), run.Trajectories); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func writeTrajectories(path string, trajs []*dynamo.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for ti, t := range trajs {
		for i, p := range t.Points {
			tm := 0.0
			if i < len(t.Times) {
				tm = t.Times[i]
			}
			row := []string{
				strconv.Itoa(ti), strconv.Itoa(i), formatFloat(tm),
				formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns the saved runs, oldest first. Directories without
// readable metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectories reads the trajectories of a saved run. All returned
// trajectories share the Times slice of trajectory 0.
func (s *Store) LoadTrajectories(runID string) ([]*dynamo.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), trajectoriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	var trajs []*dynamo.Trajectory
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}

		var vals [4]float64
		ti, err1 := strconv.Atoi(record[0])
		idx, err2 := strconv.Atoi(record[1])
		if err1 != nil || err2 != nil || ti < 0 || ti > len(trajs) {
			return nil, fmt.Errorf("run %s: line %d: bad trajectory index", runID, line)
		}
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[2+j], 64); err != nil {
				return nil, fmt.Errorf("run %s: line %d: %w", runID, line, err)
			}
		}

		if ti == len(trajs) {
			trajs = append(trajs, &dynamo.Trajectory{})
		}
		t := trajs[ti]
		if idx != len(t.Points) {
			return nil, fmt.Errorf("run %s: line %d: expected index %d, got %d", runID, line, len(t.Points), idx)
		}
		p := dynamo.Point{X: vals[1], Y: vals[2], Z: vals[3]}
		if idx == 0 {
			t.Initial = p
		}
		t.Points = append(t.Points, p)
		if ti == 0 {
			t.Times = append(t.Times, vals[0])
		}
	}

	for _, t := range trajs[min(1, len(trajs)):] {
		t.Times = trajs[0].Times
	}
	return trajs, nil
}
