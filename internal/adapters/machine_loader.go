package adapters

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/ntmtrace/pkg/domain"
	"gopkg.in/yaml.v3"
)

// headerLines is the number of CSV lines before the transition rows:
// name, states, input alphabet, tape alphabet, start, accept, reject.
const headerLines = 7

// FileLoader implements ports.MachineLoader for a description on disk.
// The format is chosen by extension: .yaml/.yml and .json are documents,
// anything else is the tabular CSV format.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader for path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// LoadMachine reads and parses the description.
func (l *FileLoader) LoadMachine() (*domain.Machine, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine description: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(l.Path)) {
	case ".yaml", ".yml":
		return ParseMachineDocument(l.Path, f, FormatYAML)
	case ".json":
		return ParseMachineDocument(l.Path, f, FormatJSON)
	default:
		return ParseMachineCSV(l.Path, f)
	}
}

// Format names a machine document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseMachineCSV parses the tabular format: seven header lines followed by
// one "state,read,next,write,direction" row per transition. Rows for the same
// (state, read) pair become non-deterministic choices in file order.
func ParseMachineCSV(name string, r io.Reader) (*domain.Machine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var header [][]string
	var b *domain.MachineBuilder
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.ParseError{Path: name, Err: fmt.Errorf("%w: %v", domain.ErrMalformedMachine, err)}
		}
		line, _ := reader.FieldPos(0)

		if len(header) < headerLines {
			header = append(header, record)
			if len(header) == headerLines {
				b = domain.NewMachineBuilder(machineHeader(header))
			}
			continue
		}

		if len(record) != 5 {
			return nil, &domain.ParseError{
				Path: name,
				Line: line,
				Err:  fmt.Errorf("%w: transition needs 5 fields, got %d", domain.ErrMalformedMachine, len(record)),
			}
		}
		b.Add(record[0], record[1], domain.Transition{
			Next:  record[2],
			Write: record[3],
			Move:  domain.Direction(record[4]),
		})
	}

	if b == nil {
		return nil, &domain.ParseError{
			Path: name,
			Err:  fmt.Errorf("%w: expected %d header lines, got %d", domain.ErrMalformedMachine, headerLines, len(header)),
		}
	}
	return b.Build(), nil
}

func machineHeader(lines [][]string) domain.Machine {
	return domain.Machine{
		Name:          lines[0][0],
		States:        lines[1],
		InputAlphabet: lines[2],
		TapeAlphabet:  lines[3],
		StartState:    lines[4][0],
		AcceptState:   lines[5][0],
		RejectState:   lines[6][0],
	}
}

// ParseMachineDocument parses a YAML or JSON machine document.
func ParseMachineDocument(name string, r io.Reader, format Format) (*domain.Machine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine description: %w", err)
	}

	var doc domain.MachineDocument
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &domain.ParseError{Path: name, Err: fmt.Errorf("%w: %v", domain.ErrMalformedMachine, err)}
	}

	m, err := doc.Machine()
	if err != nil {
		return nil, &domain.ParseError{Path: name, Err: err}
	}
	return m, nil
}

// EncodeMachineDocument writes m in the given document format.
func EncodeMachineDocument(w io.Writer, m *domain.Machine, format Format) error {
	doc := m.Document()
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
