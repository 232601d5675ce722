package simulator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chrisdamba/foodpredict/internal/logger"
	"github.com/chrisdamba/foodpredict/internal/models"
	"github.com/chrisdamba/foodpredict/internal/simulator/producers"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// ConsoleOutput prints one "[topic] payload" line per event.
type ConsoleOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends events as JSON lines under
// <base>/<topic>/year=YYYY/month=MM/day=DD/hour=HH/data.json.
type JSONOutput struct {
	mu       sync.Mutex
	basePath string
	files    map[string]*os.File
}

func NewJSONOutput(basePath string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	var event struct {
		Timestamp *int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}
	if event.Timestamp == nil {
		return fmt.Errorf("invalid timestamp")
	}

	eventTime := time.Unix(*event.Timestamp, 0).UTC()
	year, month, day := eventTime.Date()
	partitionPath := fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, eventTime.Hour())
	fullPath := filepath.Join(j.basePath, topic, partitionPath)

	j.mu.Lock()
	defer j.mu.Unlock()

	file, ok := j.files[fullPath]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		j.files[fullPath] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err := file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	var errs []error
	for key, file := range j.files {
		errs = append(errs, file.Close())
		delete(j.files, key)
	}
	return errors.Join(errs...)
}

// MultiOutput fans each event out to every destination.
type MultiOutput []OutputDestination

func (m MultiOutput) WriteMessage(topic string, msg []byte) error {
	var errs []error
	for _, out := range m {
		if err := out.WriteMessage(topic, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiOutput) Close() error {
	var errs []error
	for _, out := range m {
		errs = append(errs, out.Close())
	}
	return errors.Join(errs...)
}

// NewOutputDestination wires every enabled event sink. It returns nil when
// none is configured.
func NewOutputDestination(cfg models.EventsConfig, log *logger.Logger) (OutputDestination, error) {
	var outputs MultiOutput
	fail := func(err error) (OutputDestination, error) {
		_ = outputs.Close()
		return nil, err
	}

	if cfg.KafkaEnabled {
		saramaProducer, err := producers.NewSaramaProducer(cfg, log)
		if err != nil {
			return fail(err)
		}
		outputs = append(outputs, saramaProducer)
	}
	if cfg.NATSURL != "" {
		publisher, err := producers.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return fail(err)
		}
		outputs = append(outputs, publisher)
	}
	if cfg.OutputPath != "" {
		outputs = append(outputs, NewJSONOutput(cfg.OutputPath))
	}
	if cfg.Console {
		outputs = append(outputs, NewConsoleOutput(os.Stdout))
	}

	switch len(outputs) {
	case 0:
		return nil, nil
	case 1:
		return outputs[0], nil
	default:
		return outputs, nil
	}
}
