package ioload

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

// Targets are taxa a tree is pruned to, together with common names
// supplied by the user.
type Targets struct {
	// Names are scientific names of target taxa in the order of input.
	Names []string
	// Common maps scientific names to user-supplied common names.
	Common map[string]string
}

// ParseTargets converts command line arguments into targets. A single
// argument that contains a dot and names an existing file is read with
// ReadTargets. Otherwise every argument is a scientific name.
func ParseTargets(args []string) (Targets, error) {
	if len(args) == 1 && strings.Contains(args[0], ".") {
		if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
			f, err := os.Open(args[0])
			if err != nil {
				return Targets{}, TargetsError(args[0], err)
			}
			defer f.Close()
			res, err := ReadTargets(f)
			if err != nil {
				return Targets{}, TargetsError(args[0], err)
			}
			return res, nil
		}
	}

	res := Targets{Common: make(map[string]string)}
	for _, v := range args {
		v = cleanName(v)
		if v != "" {
			res.Names = append(res.Names, v)
		}
	}
	return res, nil
}

// ReadTargets reads CSV lines shaped "common name,scientific name".
// Empty lines are skipped, an empty common name is allowed.
func ReadTargets(r io.Reader) (Targets, error) {
	res := Targets{Common: make(map[string]string)}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		if len(row) < 2 {
			line, _ := cr.FieldPos(0)
			return res, ParseError(line, strings.Join(row, ","))
		}

		common := strings.TrimSpace(row[0])
		name := cleanName(row[1])
		if name == "" {
			continue
		}
		res.Names = append(res.Names, name)
		if common != "" {
			res.Common[name] = common
		}
	}
	return res, nil
}
