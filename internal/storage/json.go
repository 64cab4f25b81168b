package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps tasks as a JSON array of {"id","title","content"} objects.
// Array order is display order.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Close() error { return nil }

// record mirrors Task with pointers so missing fields can be told apart from
// zero values.
type record struct {
	ID      *int    `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *JSONStore) Load() ([]Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not read file `%s`: %w", s.path, err)
	}
	tasks, err := decodeTasks(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse file `%s`: %w", s.path, err)
	}
	return tasks, nil
}

func decodeTasks(data []byte) ([]Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformed)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	tasks := make([]Task, 0, len(records))
	for i, r := range records {
		if r.ID == nil {
			return nil, fmt.Errorf("%w: task %d has no id", ErrMalformed, i)
		}
		if r.Title == nil {
			return nil, fmt.Errorf("%w: task %d has no title", ErrMalformed, i)
		}
		t := Task{ID: *r.ID, Title: *r.Title}
		if r.Content != nil {
			t.Content = *r.Content
		}
		tasks = append(tasks, t)
	}
	if err := Validate(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save overwrites the file with tasks in the given order. It writes a sibling
// temp file first so a failed write never truncates the original.
func (s *JSONStore) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("could not write file `%s`: %w", s.path, err)
	}
	tmpName := tmp.Name()
	_, werr := tmp.Write(data)
	merr := tmp.Chmod(0o644)
	cerr := tmp.Close()
	if err := errors.Join(werr, merr, cerr); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not write file `%s`: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not write file `%s`: %w", s.path, err)
	}
	return nil
}
