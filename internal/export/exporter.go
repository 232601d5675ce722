// Package export projects session data into downloadable datasets and writes
// them as CSV, JSON or Parquet files.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/foodpredict/internal/clock"
	"github.com/chrisdamba/foodpredict/internal/logger"
	"github.com/chrisdamba/foodpredict/internal/metrics"
	"github.com/lucsky/cuid"
)

const dateLayout = "2006-01-02"

var (
	ErrNoDatasets   = errors.New("no datasets selected")
	ErrEmptyDataset = errors.New("dataset has no records")
)

// File is one encoded dataset.
type File struct {
	Dataset     Dataset
	Format      Format
	Name        string
	ContentType string
	Rows        int
	Data        []byte
}

// FileName is <stem>_<date>.<format>, dated in UTC.
func FileName(d Dataset, f Format, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", d.FileStem(), at.UTC().Format(dateLayout), f)
}

// Build encodes one dataset. It returns ErrEmptyDataset when the projection is empty.
func Build(src Source, d Dataset, f Format, at time.Time) (*File, error) {
	var (
		data []byte
		rows int
		err  error
	)
	switch d {
	case DatasetPredictions:
		r := PredictionRows(src)
		rows = len(r)
		if rows > 0 {
			data, err = Encode(r, f)
		}
	case DatasetRestaurants:
		r := RestaurantRows(src)
		rows = len(r)
		if rows > 0 {
			data, err = Encode(r, f)
		}
	case DatasetHistorical:
		r := HistoricalRows(src)
		rows = len(r)
		if rows > 0 {
			data, err = Encode(r, f)
		}
	case DatasetFlagged:
		r := FlaggedRows(src)
		rows = len(r)
		if rows > 0 {
			data, err = Encode(r, f)
		}
	default:
		return nil, fmt.Errorf("unknown dataset %q", d)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", d, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, d)
	}
	return &File{
		Dataset:     d,
		Format:      f,
		Name:        FileName(d, f, at),
		ContentType: f.ContentType(),
		Rows:        rows,
		Data:        data,
	}, nil
}

type WrittenFile struct {
	Dataset  Dataset `json:"dataset"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Rows     int     `json:"rows"`
	Bytes    int     `json:"bytes"`
}

type Result struct {
	ID      string        `json:"id"`
	Format  Format        `json:"format"`
	Files   []WrittenFile `json:"files"`
	Skipped []Dataset     `json:"skipped,omitempty"`
}

func (r *Result) Summary() string {
	return fmt.Sprintf("%d file(s) exported successfully", len(r.Files))
}

type Exporter struct {
	sink    Sink
	clock   clock.Clock
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewExporter(sink Sink, clk clock.Clock, m *metrics.Metrics, log *logger.Logger) *Exporter {
	return &Exporter{
		sink:    sink,
		clock:   clk,
		metrics: m,
		log:     logger.OrNop(log).With("component", "export"),
	}
}

// Export writes one file per selected dataset. Empty datasets are skipped and
// not counted.
func (e *Exporter) Export(ctx context.Context, src Source, datasets []Dataset, f Format) (*Result, error) {
	if len(datasets) == 0 {
		return nil, ErrNoDatasets
	}
	now := e.clock.Now()
	res := &Result{ID: cuid.New(), Format: f, Files: []WrittenFile{}}

	for _, d := range datasets {
		file, err := Build(src, d, f, now)
		if errors.Is(err, ErrEmptyDataset) {
			e.log.Debug("skipping empty dataset", "export_id", res.ID, "dataset", d)
			res.Skipped = append(res.Skipped, d)
			continue
		}
		if err != nil {
			return res, err
		}

		location, err := e.sink.Put(ctx, file.Name, file.ContentType, file.Data)
		if err != nil {
			return res, fmt.Errorf("failed to store %s: %w", file.Name, err)
		}
		e.metrics.RecordExport(string(d), string(f), len(file.Data))
		res.Files = append(res.Files, WrittenFile{
			Dataset:  d,
			Name:     file.Name,
			Location: location,
			Rows:     file.Rows,
			Bytes:    len(file.Data),
		})
	}

	e.log.Info("export finished", "export_id", res.ID, "format", f, "files", len(res.Files), "skipped", len(res.Skipped))
	return res, nil
}
