package roster

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/roster.yaml
var defaultRoster []byte

// File is the on-disk shape of a YAML or JSON roster
type File struct {
	Workers []models.Worker `json:"workers" yaml:"workers"`
}

// CSVHeader lists the columns ParseCSV expects, in any order
var CSVHeader = append([]string{"name", "email", "shift"}, models.WeekdayKeys...)

var (
	defaultOnce    sync.Once
	defaultWorkers []models.Worker
	defaultErr     error
)

// Default returns the embedded NOC roster. It is parsed once per process.
func Default() ([]models.Worker, error) {
	defaultOnce.Do(func() {
		defaultWorkers, defaultErr = ParseYAML(bytes.NewReader(defaultRoster))
		if defaultErr == nil {
			defaultErr = Validate(defaultWorkers)
		}
	})
	return defaultWorkers, defaultErr
}

// Load reads a roster file, picking the parser from the file extension
func Load(path string) ([]models.Worker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	var workers []models.Worker
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		workers, err = ParseYAML(f)
	case ".json":
		workers, err = ParseJSON(f)
	case ".csv":
		workers, err = ParseCSV(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrUnsupportedRosterFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}

	if err := Validate(workers); err != nil {
		return nil, err
	}
	return workers, nil
}

// ParseYAML decodes a roster from YAML
func ParseYAML(r io.Reader) ([]models.Worker, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return file.Workers, nil
}

// ParseJSON decodes a roster from JSON. Both {"workers": [...]} and a bare array are accepted.
func ParseJSON(r io.Reader) ([]models.Worker, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var workers []models.Worker
		if err := json.Unmarshal(data, &workers); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return workers, nil
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return file.Workers, nil
}

// ParseCSV decodes a roster from CSV with a header row of CSVHeader columns
func ParseCSV(r io.Reader) ([]models.Worker, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range CSVHeader {
		if _, ok := cols[want]; !ok {
			return nil, apperrors.NewValidationError(want, "missing csv column")
		}
	}

	var workers []models.Worker
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		w := models.Worker{
			Name:  strings.TrimSpace(record[cols["name"]]),
			Email: strings.TrimSpace(record[cols["email"]]),
			Shift: models.ShiftCategory(strings.ToLower(strings.TrimSpace(record[cols["shift"]]))),
		}
		for day, key := range models.WeekdayKeys {
			w.Schedule.Set(time.Weekday(day), strings.TrimSpace(record[cols[key]]))
		}
		workers = append(workers, w)
	}
	return workers, nil
}

// WriteCSV encodes a roster in the format ParseCSV reads
func WriteCSV(w io.Writer, workers []models.Worker) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, wk := range workers {
		record := []string{wk.Name, wk.Email, string(wk.Shift)}
		for day := range models.WeekdayKeys {
			record = append(record, wk.Schedule.On(time.Weekday(day)))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

var validate = validator.New()

// Validate checks every worker and returns a ValidationError for the first problem found
func Validate(workers []models.Worker) error {
	seen := make(map[string]bool, len(workers))
	for i, w := range workers {
		field := fmt.Sprintf("roster[%d]", i)

		if err := validate.Struct(w); err != nil {
			return apperrors.NewValidationError(field, "%s: %v", w.Name, err)
		}
		if !w.Shift.IsValid() {
			return apperrors.NewValidationError(field+".shift", "%s: unknown shift %q", w.Name, w.Shift)
		}
		email := strings.ToLower(w.Email)
		if seen[email] {
			return apperrors.NewValidationError(field+".email", "duplicate email %s", w.Email)
		}
		seen[email] = true

		for day, key := range models.WeekdayKeys {
			v := w.Schedule.On(time.Weekday(day))
			if v == models.Off {
				continue
			}
			if _, err := models.ParseWindow(v); err != nil {
				return apperrors.NewValidationError(field+".schedule."+key, "%s: %v", w.Name, err)
			}
		}
	}
	return nil
}

// Summary counts workers per category
func Summary(workers []models.Worker) map[models.ShiftCategory]int {
	out := make(map[models.ShiftCategory]int, len(models.Categories))
	for _, c := range models.Categories {
		out[c] = 0
	}
	for _, w := range workers {
		out[w.Shift]++
	}
	return out
}
