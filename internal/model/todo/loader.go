package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zhouzirui/todo-api/backend/data"
)

// ErrLoad marks a dataset that is missing or cannot be decoded.
var ErrLoad = errors.New("load todos")

// LoadFile reads the JSON array of todos stored at path.
func LoadFile(path string) ([]Todo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	todos, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return todos, nil
}

// LoadEmbedded decodes the dataset compiled into the binary.
func LoadEmbedded() ([]Todo, error) {
	return Decode(bytes.NewReader(data.Todos))
}

// Decode parses a JSON array of todos and checks that identifiers are unique.
func Decode(r io.Reader) ([]Todo, error) {
	dec := json.NewDecoder(r)
	var todos []Todo
	if err := dec.Decode(&todos); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLoad, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after todo array", ErrLoad)
	}
	if todos == nil {
		return nil, fmt.Errorf("%w: dataset is not a JSON array", ErrLoad)
	}

	seen := make(map[string]struct{}, len(todos))
	for i, t := range todos {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: todo at index %d has no _id", ErrLoad, i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate _id %q", ErrLoad, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return todos, nil
}
