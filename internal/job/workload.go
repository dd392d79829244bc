// Package job reads batches of tasks for the scheduler.
package job

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"schedsim/internal/sched"
)

// Spec describes one task before it is handed to a scheduler.
type Spec struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	Burst    int64  `yaml:"burst"`
}

// Adder is satisfied by *sched.Scheduler.
type Adder interface {
	Add(name string, priority int, burst int64) (*sched.Task, error)
}

// LoadFile reads a workload from path. Files ending in .yml or .yaml are
// parsed as a YAML list of specs; anything else as "name, priority, burst"
// lines.
func LoadFile(path string) ([]Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseYAML(f)
	default:
		return ParseCSV(f)
	}
}

// ParseCSV reads one task per line in the form "T1, 4, 20". Blank lines and
// lines starting with '#' are skipped.
func ParseCSV(r io.Reader) ([]Spec, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 3

	var specs []Spec
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return specs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("workload: %w", err)
		}
		line, _ := cr.FieldPos(0)

		priority, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("workload line %d: priority %q: %w", line, rec[1], err)
		}
		burst, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("workload line %d: burst %q: %w", line, rec[2], err)
		}
		specs = append(specs, Spec{Name: strings.TrimSpace(rec[0]), Priority: priority, Burst: burst})
	}
}

// ParseYAML reads a YAML sequence of {name, priority, burst} mappings.
func ParseYAML(r io.Reader) ([]Spec, error) {
	var specs []Spec
	if err := yaml.NewDecoder(r).Decode(&specs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("workload: %w", err)
	}
	return specs, nil
}

// Submit adds every spec to the scheduler in order, stopping at the first
// rejected task.
func Submit(a Adder, specs []Spec) error {
	for i, sp := range specs {
		if _, err := a.Add(sp.Name, sp.Priority, sp.Burst); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return nil
}
