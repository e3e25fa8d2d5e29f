package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gravsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	metadataFile     = "metadata.json"
	samplesFile      = "samples.csv"
	trajectoriesFile = "trajectories.csv"
)

// Store keeps run records, one directory per run. Records are output for
// inspection; nothing is ever loaded back into a simulator.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Primary returns the recorded primary body, if any.
func (m *RunMetadata) Primary() (BodyMetadata, bool) {
	for _, b := range m.Bodies {
		if b.Primary {
			return b, true
		}
	}
	return BodyMetadata{}, false
}

type BodyMetadata struct {
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	Mass    float64 `json:"mass"`
	Primary bool    `json:"primary,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	TimeScale   float64            `json:"time_scale"`
	G           float64            `json:"g"`
	Steps       int                `json:"steps"`
	Bodies      []BodyMetadata     `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift float64            `json:"energy_drift"`
}

// RunInfo describes how a run was configured.
type RunInfo struct {
	Preset    string
	Dt        float64
	TimeScale float64
	G         float64
}

// Trajectory is one body's retained trail as read back from disk.
type Trajectory struct {
	Name   string
	Color  string
	Points []r2.Vec
}

func (s *Store) newRunDir(preset string) (string, string, error) {
	base := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runID := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return runID, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	runID, runDir, err := s.newRunDir(info.Preset)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Preset:      info.Preset,
		Timestamp:   time.Now(),
		Dt:          info.Dt,
		TimeScale:   info.TimeScale,
		G:           info.G,
		Steps:       result.StepsTaken,
		Bodies:      make([]BodyMetadata, len(result.Bodies)),
		Metrics:     result.Metrics,
		EnergyDrift: result.EnergyDrift,
	}
	for i, b := range result.Bodies {
		meta.Bodies[i] = BodyMetadata{
			Name: b.Name, Color: b.Color, Mass: b.Mass, Primary: b.Primary,
			X: b.Pos.X, Y: b.Pos.Y, VX: b.Vel.X, VY: b.Vel.Y,
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result.Samples); err != nil {
		return "", err
	}
	if err := writeTrajectories(filepath.Join(runDir, trajectoriesFile), result.Bodies); err != nil {
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
	return encodeJSON(f, v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeSamples(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "energy", "accuracy", "avg_speed"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			formatFloat(smp.Time),
			formatFloat(smp.Energy),
			formatFloat(smp.Accuracy),
			formatFloat(smp.AvgSpeed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTrajectories(path string, bodies []sim.BodyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"body", "color", "index", "x", "y"}); err != nil {
		return err
	}
	for _, b := range bodies {
		for i, p := range b.Trail {
			row := []string{b.Name, b.Color, strconv.Itoa(i), formatFloat(p.X), formatFloat(p.Y)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, len(records))
	for i, rec := range records {
		if len(rec) < 4 {
			return nil, fmt.Errorf("%s row %d: expected 4 fields, got %d", samplesFile, i+1, len(rec))
		}
		v, err := parseFloats(rec[:4])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", samplesFile, i+1, err)
		}
		samples = append(samples, sim.Sample{Time: v[0], Energy: v[1], Accuracy: v[2], AvgSpeed: v[3]})
	}
	return samples, nil
}

// LoadTrajectories returns trails in the order the bodies were saved.
func (s *Store) LoadTrajectories(runID string) ([]Trajectory, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, trajectoriesFile))
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	out := make([]Trajectory, 0)
	for i, rec := range records {
		if len(rec) < 5 {
			return nil, fmt.Errorf("%s row %d: expected 5 fields, got %d", trajectoriesFile, i+1, len(rec))
		}
		v, err := parseFloats(rec[3:5])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", trajectoriesFile, i+1, err)
		}
		k, ok := index[rec[0]]
		if !ok {
			k = len(out)
			index[rec[0]] = k
			out = append(out, Trajectory{Name: rec[0], Color: rec[1]})
		}
		out[k].Points = append(out[k].Points, r2.Vec{X: v[0], Y: v[1]})
	}
	return out, nil
}

// Export bundles everything recorded for a run.
type Export struct {
	Run          RunMetadata             `json:"run"`
	Samples      []ExportSample          `json:"samples"`
	Trajectories map[string][][2]float64 `json:"trajectories"`
}

type ExportSample struct {
	Time     float64 `json:"time"`
	Energy   float64 `json:"energy"`
	Accuracy float64 `json:"accuracy"`
	AvgSpeed float64 `json:"avg_speed"`
}

func (s *Store) buildExport(runID string) (*Export, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	trajs, err := s.LoadTrajectories(runID)
	if err != nil {
		return nil, err
	}

	ex := &Export{
		Run:          *meta,
		Samples:      make([]ExportSample, len(samples)),
		Trajectories: make(map[string][][2]float64, len(trajs)),
	}
	for i, smp := range samples {
		ex.Samples[i] = ExportSample(smp)
	}
	for _, tr := range trajs {
		pts := make([][2]float64, len(tr.Points))
		for i, p := range tr.Points {
			pts[i] = [2]float64{p.X, p.Y}
		}
		ex.Trajectories[tr.Name] = pts
	}
	return ex, nil
}

// ExportJSON writes a run as one JSON document to w.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	ex, err := s.buildExport(runID)
	if err != nil {
		return err
	}
	return encodeJSON(w, ex)
}

func (s *Store) ExportJSONFile(runID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.ExportJSON(runID, f)
}
