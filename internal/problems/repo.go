// Package problems loads the operations-research problem sets the runner
// iterates over. A problem set is a CSV file with an id,description,
// code_example header; descriptions and starter code may span lines.
package problems

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Problem is one solvable instance from a problem set.
type Problem struct {
	ID          int
	Description string
	CodeExample string
}

// Repo is an in-memory, read-only problem set loaded at startup.
type Repo struct {
	problems []Problem
	byID     map[int]int
}

// LoadCSV reads a problem set from path. The first record must be the
// header; duplicate IDs are rejected.
func LoadCSV(path string) (*Repo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open problem set: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3 // id,description,code_example
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse problem set: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("problem set %s is empty", path)
	}

	repo := &Repo{byID: make(map[int]int, len(records)-1)}
	for i, rec := range records[1:] { // skip header
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("problem set row %d: bad id %q: %w", i+2, rec[0], err)
		}
		if _, dup := repo.byID[id]; dup {
			return nil, fmt.Errorf("problem set row %d: duplicate id %d", i+2, id)
		}
		repo.byID[id] = len(repo.problems)
		repo.problems = append(repo.problems, Problem{
			ID:          id,
			Description: rec[1],
			CodeExample: rec[2],
		})
	}

	return repo, nil
}

// All returns the problems in file order. The slice must not be mutated.
func (r *Repo) All() []Problem { return r.problems }

// Get returns the problem with the given id.
func (r *Repo) Get(id int) (Problem, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Problem{}, false
	}
	return r.problems[i], true
}

// Len returns the number of problems.
func (r *Repo) Len() int { return len(r.problems) }
