// Package catalogue holds the animal records shown by the browser and the
// loader that reads them once at startup.
package catalogue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no record carries the requested id.
var ErrNotFound = errors.New("animal not found")

// Record is one animal entry.
type Record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Habitat     string `json:"habitat"`
}

// Label returns the display name, falling back to the id.
func (r Record) Label() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return r.ID
}

// Catalogue is an ordered, read-only sequence of records.
type Catalogue struct {
	records []Record
}

// New builds a catalogue from records, preserving their order.
func New(records []Record) Catalogue {
	return Catalogue{records: cloneRecords(records)}
}

// Empty returns a catalogue without records.
func Empty() Catalogue {
	return Catalogue{}
}

// Len reports the number of records.
func (c Catalogue) Len() int {
	return len(c.records)
}

// At returns the record at index i.
func (c Catalogue) At(i int) Record {
	return c.records[i]
}

// Records returns a copy of the records in catalogue order.
func (c Catalogue) Records() []Record {
	return cloneRecords(c.records)
}

// IDs returns the record ids in catalogue order.
func (c Catalogue) IDs() []string {
	ids := make([]string, len(c.records))
	for i, r := range c.records {
		ids[i] = r.ID
	}
	return ids
}

// FindByID is the method form of FindByID.
func (c Catalogue) FindByID(id string) (Record, bool) {
	return FindByID(c, id)
}

// Get resolves id or returns an error wrapping ErrNotFound.
func (c Catalogue) Get(id string) (Record, error) {
	if r, ok := FindByID(c, id); ok {
		return r, nil
	}
	return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Duplicates lists ids that occur more than once, in first-seen order.
func (c Catalogue) Duplicates() []string {
	seen := make(map[string]int, len(c.records))
	var dups []string
	for _, r := range c.records {
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}

// FindByID returns the first record whose id equals id.
func FindByID(c Catalogue, id string) (Record, bool) {
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func cloneRecords(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]Record, len(records))
	copy(dup, records)
	return dup
}
