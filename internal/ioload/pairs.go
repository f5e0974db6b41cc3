package ioload

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/gnames/gntree/pkg/taxon"
)

// maxLine limits the length of one line of a relation source.
const maxLine = 1 << 20

var pairRe = regexp.MustCompile(`^(.+) -> (.+)$`)

// ReadPairs reads "parent -> child" lines into an adjacency mapping.
// Blank lines are skipped, any other line that does not match the pattern
// stops the load with ParseError. Underscores in names are read as spaces.
func ReadPairs(r io.Reader) (*taxon.Links, error) {
	res := taxon.NewLinks()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var num int
	for sc.Scan() {
		num++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parent, child, ok := parsePair(line)
		if !ok {
			return nil, ParseError(num, line)
		}
		res.Add(parent, child)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func parsePair(line string) (string, string, bool) {
	m := pairRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	parent := cleanName(m[1])
	child := cleanName(m[2])
	if parent == "" || child == "" {
		return "", "", false
	}
	return parent, child, true
}

func cleanName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return strings.TrimSpace(s)
}
