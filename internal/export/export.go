// Package export writes solved trajectories to CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Run captures one solve together with its outcome for disk export.
type Run struct {
	Model     string             `json:"model"`
	Method    string             `json:"method"`
	Precision string             `json:"precision"`
	Samples   int                `json:"samples"`
	Iters     int                `json:"iters"`
	Delta     float64            `json:"delta"`
	Converged bool               `json:"converged"`
	Params    map[string]float64 `json:"params,omitempty"`
	Times     []float64          `json:"times"`
	States    [][]float64        `json:"states"`
}

// WriteCSV writes one row per time point with a time,y0,y1,... header.
// Values keep full precision so a written run reloads bit-exact.
func WriteCSV(w io.Writer, times []float64, states [][]float64) error {
	if len(times) != len(states) {
		return fmt.Errorf("export: %d times for %d state rows", len(times), len(states))
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time"}
	if len(states) > 0 {
		for i := range states[0] {
			header = append(header, fmt.Sprintf("y%d", i))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, row := range states {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(times[i], 'g', -1, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the trajectory to a file.
func SaveCSV(path string, times []float64, states [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCSV(f, times, states); err != nil {
		return err
	}
	return f.Close()
}

// WriteJSON writes the run as indented JSON.
func WriteJSON(w io.Writer, run Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// SaveJSON writes the run to a file.
func SaveJSON(path string, run Run) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteJSON(f, run); err != nil {
		return err
	}
	return f.Close()
}

// LoadJSON reads back a run written by SaveJSON.
func LoadJSON(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, err
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, err
	}
	return run, nil
}
