// Package intake collects raw appliance input from files and interactive
// prompts and feeds it through the ledger.
package intake

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jgoulah/homeload/internal/ledger"
)

// Format is an appliance file format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned for files whose extension is not recognised.
var ErrUnknownFormat = errors.New("intake: unknown appliance file format")

var csvColumns = []string{"name", "power_watts", "quantity", "daily_hours"}

// RowError describes an appliance row the ledger rejected
type RowError struct {
	Row      int // 1-based item index for YAML, file line for CSV
	Name     string
	Messages []string
}

// LoadResult reports what happened to each row of an appliance file
type LoadResult struct {
	Added    []*ledger.Appliance
	Rejected []RowError
}

// rawAppliance keeps every field as text so file input is validated exactly
// like typed input.
type rawAppliance struct {
	Name       string `yaml:"name"`
	PowerWatts string `yaml:"power_watts"`
	Quantity   string `yaml:"quantity"`
	DailyHours string `yaml:"daily_hours"`

	row int
}

type applianceFile struct {
	Appliances []rawAppliance `yaml:"appliances"`
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s (use .yaml, .yml or .csv)", ErrUnknownFormat, path)
	}
}

// LoadFile adds every appliance in the file at path to l
func LoadFile(path string, l *ledger.Ledger) (*LoadResult, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening appliance file: %w", err)
	}
	defer f.Close()

	return Load(f, format, l)
}

// Load adds every appliance read from r to l. Rows the ledger rejects are
// reported in the result; only malformed files return an error.
func Load(r io.Reader, format Format, l *ledger.Ledger) (*LoadResult, error) {
	var rows []rawAppliance
	var err error

	switch format {
	case FormatYAML:
		rows, err = readYAML(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	result := &LoadResult{}
	for _, row := range rows {
		entry, err := l.Add(row.Name, row.PowerWatts, row.Quantity, row.DailyHours)
		if err != nil {
			var failure *ledger.ValidationFailure
			if !errors.As(err, &failure) {
				return nil, fmt.Errorf("adding row %d: %w", row.row, err)
			}
			result.Rejected = append(result.Rejected, RowError{
				Row:      row.row,
				Name:     strings.TrimSpace(row.Name),
				Messages: failure.Messages(),
			})
			continue
		}
		result.Added = append(result.Added, entry)
	}

	return result, nil
}

func readYAML(r io.Reader) ([]rawAppliance, error) {
	var file applianceFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing appliance file: %w", err)
	}
	for i := range file.Appliances {
		file.Appliances[i].row = i + 1
	}
	return file.Appliances, nil
}

func readCSV(r io.Reader) ([]rawAppliance, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing appliance file: %w", err)
	}

	// Spreadsheet exports often start with a byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("parsing appliance file: missing column %q", col)
		}
	}

	field := func(rec []string, col string) string {
		if i := index[col]; i < len(rec) {
			return rec[i]
		}
		return ""
	}

	var rows []rawAppliance
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing appliance file: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, rawAppliance{
			Name:       field(rec, "name"),
			PowerWatts: field(rec, "power_watts"),
			Quantity:   field(rec, "quantity"),
			DailyHours: field(rec, "daily_hours"),
			row:        line,
		})
	}
	return rows, nil
}
