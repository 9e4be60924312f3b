package lexicon

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseCSV reads override rows of the form
//
//	category,text,level,hint
//
// after a header row. The level and hint columns are optional; a missing or
// unknown level is beginner. Rows are grouped by category in first-seen order.
func ParseCSV(r io.Reader) ([]Category, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var order []CategoryID
	grouped := make(map[CategoryID][]Entry)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		if len(record) < 2 {
			continue
		}

		id := CategoryID(strings.TrimSpace(record[0]))
		if !id.Valid() {
			log.Warnf("Lexicon CSV line %d: unknown category %q", line, id)
			continue
		}
		text := strings.TrimSpace(record[1])
		if text == "" {
			continue
		}

		entry := Entry{Text: text}
		if len(record) > 2 {
			lvl, ok := ParseLevel(record[2])
			if !ok && strings.TrimSpace(record[2]) != "" {
				log.Warnf("Lexicon CSV line %d: unknown level %q, using beginner", line, record[2])
			}
			entry.Level = lvl
		}
		if len(record) > 3 {
			entry.Hint = strings.TrimSpace(record[3])
		}

		if _, seen := grouped[id]; !seen {
			order = append(order, id)
		}
		grouped[id] = append(grouped[id], entry)
	}

	out := make([]Category, 0, len(order))
	for _, id := range order {
		out = append(out, Category{ID: id, Entries: grouped[id]})
	}
	return out, nil
}

// LoadWithOverrides builds a Store from the builtin tables extended with the
// rows of the CSV file at path. Override entries are appended after the
// builtin entries of their category.
func LoadWithOverrides(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon override %s: %w", path, err)
	}
	defer file.Close()

	overrides, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("parse lexicon override %s: %w", path, err)
	}

	categories := append(BuiltinCategories(), overrides...)
	log.Debugf("Loaded %d override categories from %s", len(overrides), path)
	return NewStore(categories, BuiltinClasses()), nil
}
