package watchlist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// TrendFilteredGroup names the watch-list section whose alerts require
// the price to sit below the 200-session average.
const TrendFilteredGroup = "v200"

// Load reads a sectioned watch-list CSV. A row with a non-blank first
// cell and a blank second cell opens a group named by that cell; every
// following row contributes its second cell as a symbol of that group.
// Blank cells and rows before the first group are ignored. Group order
// and in-group symbol order follow the file.
func Load(path string) ([]model.WatchGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watch-list: %w", err)
	}
	defer f.Close()

	groups, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse watch-list %s: %w", path, err)
	}
	return groups, nil
}

func parse(r io.Reader) ([]model.WatchGroup, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var groups []model.WatchGroup
	cur := -1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var first, second string
		if len(rec) > 0 {
			first = strings.TrimSpace(rec[0])
		}
		if len(rec) > 1 {
			second = strings.TrimSpace(rec[1])
		}
		switch {
		case first != "" && second == "":
			groups = append(groups, model.WatchGroup{
				Name:          first,
				TrendFiltered: strings.EqualFold(first, TrendFilteredGroup),
			})
			cur = len(groups) - 1
		case second != "" && cur >= 0:
			groups[cur].Symbols = append(groups[cur].Symbols, second)
		}
	}
	return groups, nil
}
