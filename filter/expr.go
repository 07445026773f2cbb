package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ytget/qualitube/types"
)

// Operator is a comparison understood by Parse.
type Operator string

const (
	OpEq       Operator = "="
	OpNe       Operator = "!="
	OpLt       Operator = "<"
	OpLe       Operator = "<="
	OpGt       Operator = ">"
	OpGe       Operator = ">="
	OpContains Operator = "~"
)

// ErrSyntax is returned for malformed filter expressions.
var ErrSyntax = errors.New("filter syntax error")

// Comparison is a single "field op value" clause.
type Comparison struct {
	Field string
	Op    Operator
	Value string

	column types.Column
	num    int64
	isNum  bool
}

// Parse builds a predicate from comma-separated clauses, all of which must
// hold, e.g. "view_count>=1000,tags~music". Fields are table column names.
// Text comparisons with "=" and "~" ignore case.
func Parse(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return All{}, nil
	}

	var preds All
	for _, clause := range strings.Split(expr, ",") {
		cmp, err := parseClause(strings.TrimSpace(clause))
		if err != nil {
			return nil, err
		}
		preds = append(preds, cmp)
	}
	return preds, nil
}

func parseClause(clause string) (*Comparison, error) {
	idx, op := findOperator(clause)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no operator in %q", ErrSyntax, clause)
	}

	field := strings.ToLower(strings.TrimSpace(clause[:idx]))
	value := strings.TrimSpace(clause[idx+len(op):])
	value = strings.Trim(value, `"'`)

	col, ok := types.LookupColumn(field)
	if !ok {
		return nil, fmt.Errorf("%w: unknown field %q", ErrSyntax, field)
	}

	c := &Comparison{Field: field, Op: op, Value: value, column: col}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		c.num, c.isNum = n, true
	}
	return c, nil
}

// findOperator returns the position of the leftmost operator, preferring the
// two-character form at that position.
func findOperator(s string) (int, Operator) {
	for i := 0; i < len(s); i++ {
		if i+1 < len(s) {
			switch Operator(s[i : i+2]) {
			case OpNe, OpLe, OpGe:
				return i, Operator(s[i : i+2])
			}
		}
		switch Operator(s[i : i+1]) {
		case OpEq, OpLt, OpGt, OpContains:
			return i, Operator(s[i : i+1])
		}
	}
	return -1, ""
}

// Match compares the video's field with the clause value. An absent field
// never matches.
func (c *Comparison) Match(v types.Video) (bool, error) {
	switch cell := c.column.Value(v).(type) {
	case nil:
		return false, nil
	case int64:
		return c.matchNumber(cell)
	case string:
		return c.matchText(cell)
	case []string:
		return c.matchTags(cell)
	default:
		return false, fmt.Errorf("field %s: unsupported value type %T", c.Field, cell)
	}
}

func (c *Comparison) matchNumber(n int64) (bool, error) {
	if !c.isNum {
		return false, fmt.Errorf("field %s: %q is not an integer", c.Field, c.Value)
	}
	switch c.Op {
	case OpEq:
		return n == c.num, nil
	case OpNe:
		return n != c.num, nil
	case OpLt:
		return n < c.num, nil
	case OpLe:
		return n <= c.num, nil
	case OpGt:
		return n > c.num, nil
	case OpGe:
		return n >= c.num, nil
	}
	return false, fmt.Errorf("field %s: operator %s not supported for numbers", c.Field, c.Op)
}

func (c *Comparison) matchText(s string) (bool, error) {
	switch c.Op {
	case OpEq:
		return strings.EqualFold(s, c.Value), nil
	case OpNe:
		return !strings.EqualFold(s, c.Value), nil
	case OpContains:
		return strings.Contains(strings.ToLower(s), strings.ToLower(c.Value)), nil
	case OpLt:
		return s < c.Value, nil
	case OpLe:
		return s <= c.Value, nil
	case OpGt:
		return s > c.Value, nil
	case OpGe:
		return s >= c.Value, nil
	}
	return false, fmt.Errorf("field %s: unknown operator %s", c.Field, c.Op)
}

func (c *Comparison) matchTags(tags []string) (bool, error) {
	switch c.Op {
	case OpEq, OpNe:
		found := false
		for _, t := range tags {
			if strings.EqualFold(t, c.Value) {
				found = true
				break
			}
		}
		return found == (c.Op == OpEq), nil
	case OpContains:
		needle := strings.ToLower(c.Value)
		for _, t := range tags {
			if strings.Contains(strings.ToLower(t), needle) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("field %s: operator %s not supported for tags", c.Field, c.Op)
}
