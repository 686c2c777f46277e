// Package query narrows, truncates and orders the todo dataset according to
// request parameters.
package query

import (
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/zhouzirui/todo-api/backend/internal/model/todo"
)

// Recognized parameter names.
const (
	ParamOwner    = "owner"
	ParamCategory = "category"
	ParamLimit    = "limit"
	ParamContains = "contains"
	ParamOrderBy  = "orderBy"
	ParamStatus   = "status"
)

// ErrInvalidParameter is returned when a parameter value cannot be interpreted.
var ErrInvalidParameter = errors.New("invalid parameter")

// Params maps a parameter name to its effective value.
type Params map[string]string

// FromValues keeps the first value of every key in a URL query.
func FromValues(values url.Values) Params {
	params := make(Params, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

type stage struct {
	param string
	apply func(todos []todo.Todo, value string) ([]todo.Todo, error)
}

// pipeline is applied top to bottom, each stage seeing the previous stage's
// output. limit runs before contains and orderBy, so orderBy sorts only the
// truncated prefix. Existing clients rely on this ordering.
// status is accepted by callers but has no stage.
var pipeline = []stage{
	{param: ParamOwner, apply: byOwner},
	{param: ParamCategory, apply: byCategory},
	{param: ParamLimit, apply: byLimit},
	{param: ParamContains, apply: byContains},
	{param: ParamOrderBy, apply: byOrder},
}

// Apply runs every stage whose parameter is present and returns the result.
// The input slice is left untouched and the result is never nil.
func Apply(todos []todo.Todo, params Params) ([]todo.Todo, error) {
	result := append(make([]todo.Todo, 0, len(todos)), todos...)
	for _, s := range pipeline {
		value, ok := params[s.param]
		if !ok {
			continue
		}
		var err error
		result, err = s.apply(result, value)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func filter(todos []todo.Todo, keep func(todo.Todo) bool) []todo.Todo {
	out := make([]todo.Todo, 0, len(todos))
	for _, t := range todos {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func byOwner(todos []todo.Todo, owner string) ([]todo.Todo, error) {
	return filter(todos, func(t todo.Todo) bool { return t.Owner == owner }), nil
}

func byCategory(todos []todo.Todo, category string) ([]todo.Todo, error) {
	return filter(todos, func(t todo.Todo) bool { return t.Category == category }), nil
}

func byContains(todos []todo.Todo, substr string) ([]todo.Todo, error) {
	return filter(todos, func(t todo.Todo) bool { return strings.Contains(t.Body, substr) }), nil
}

func byLimit(todos []todo.Todo, raw string) ([]todo.Todo, error) {
	n, err := ParseLimit(raw)
	if err != nil {
		return nil, err
	}
	if n < len(todos) {
		todos = todos[:n]
	}
	return todos, nil
}

// ParseLimit parses a limit value as a non-negative integer.
func ParseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: specified limit %q can't be parsed to an integer", ErrInvalidParameter, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: specified limit %q must not be negative", ErrInvalidParameter, raw)
	}
	return n, nil
}

func byOrder(todos []todo.Todo, field string) ([]todo.Todo, error) {
	slices.SortStableFunc(todos, comparator(field))
	return todos, nil
}

// comparator returns the ascending ordering for field. Unknown fields order
// by category.
func comparator(field string) func(a, b todo.Todo) int {
	switch field {
	case "owner":
		return func(a, b todo.Todo) int { return cmp.Compare(a.Owner, b.Owner) }
	case "body":
		return func(a, b todo.Todo) int { return cmp.Compare(a.Body, b.Body) }
	case "status":
		return func(a, b todo.Todo) int { return compareBool(a.Status, b.Status) }
	default:
		return func(a, b todo.Todo) int { return cmp.Compare(a.Category, b.Category) }
	}
}

// compareBool orders false before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
