package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MapDef is the YAML map description (e.g. assets/maps/arena.yaml). Row i
// holds the cells of z = i, written like a line of a text map.
type MapDef struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// LoadFile reads a map from path. Files ending in .yaml or .yml are parsed
// as MapDef; anything else as plain text with one row per line.
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]Cell
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		rows, err = ParseYAML(f)
	default:
		rows, err = ParseText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(rows)
}

// ParseText reads a text map. Line i lists the cells of z = i for x = 0, 1,
// ...: either whitespace-separated codes ("1 0 2") or packed digits ("102").
// Blank lines and lines starting with # are skipped. Lines may differ in
// length; missing cells are Empty. The result is indexed [x][z], ready for
// New.
func ParseText(r io.Reader) ([][]Cell, error) {
	var lines [][]Cell
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(lines), err)
		}
		lines = append(lines, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyMap
	}
	return transpose(lines), nil
}

// ParseYAML decodes a MapDef.
func ParseYAML(r io.Reader) ([][]Cell, error) {
	var def MapDef
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyMap
		}
		return nil, err
	}
	if len(def.Rows) == 0 {
		return nil, ErrEmptyMap
	}
	lines := make([][]Cell, 0, len(def.Rows))
	for i, s := range def.Rows {
		row, err := parseRow(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		lines = append(lines, row)
	}
	return transpose(lines), nil
}

// parseRow reads one map line. A line with several fields has one code per
// field; a single field is read digit by digit.
func parseRow(s string) ([]Cell, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 {
		fields = strings.Split(fields[0], "")
	}
	row := make([]Cell, 0, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < int(Empty) || n > int(Coin) {
			return nil, fmt.Errorf("%w: %q at x=%d", ErrBadCell, f, i)
		}
		row = append(row, Cell(n))
	}
	return row, nil
}

// transpose turns lines indexed [z][x] into rows indexed [x][z], padding
// short lines with Empty.
func transpose(lines [][]Cell) [][]Cell {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	rows := make([][]Cell, width)
	for x := range rows {
		rows[x] = make([]Cell, len(lines))
		for z, l := range lines {
			if x < len(l) {
				rows[x][z] = l[x]
			}
		}
	}
	return rows
}
