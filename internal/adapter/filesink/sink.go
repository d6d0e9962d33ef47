// Package filesink writes run reports and their images to a directory.
package filesink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// Artifact file names inside the output directory.
const (
	ReportFile  = "report.json"
	TableFile   = "table.png"
	ChartFile   = "chart.png"
	StationFile = "station.png"
)

// Sink overwrites the artifacts of the previous run on every Publish.
type Sink struct {
	dir    string
	logger *slog.Logger
}

// New creates the output directory if needed.
func New(dir string, logger *slog.Logger) (*Sink, error) {
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Sink{dir: dir, logger: logger}, nil
}

// Publish writes report.json and every image that was rendered. An image
// that is absent from the report is removed so the directory never mixes runs.
func (s *Sink) Publish(ctx context.Context, report domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize report: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{TableFile, report.Images.Table},
		{ChartFile, report.Images.Chart},
		{StationFile, report.Images.Station},
		{ReportFile, data},
	}
	for _, f := range files {
		path := filepath.Join(s.dir, f.name)
		if f.data == nil {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove stale %s: %w", f.name, err)
			}
			continue
		}
		if err := writeFile(path, f.data); err != nil {
			return err
		}
	}
	s.logger.Debug("report written", "run_id", report.RunID, "dir", s.dir)
	return nil
}

// writeFile replaces path through a rename so readers never see a partial file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadReport loads a report written by Publish. Images are not restored.
func ReadReport(path string) (domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Report{}, fmt.Errorf("read report: %w", err)
	}
	var r domain.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}
	return r, nil
}
