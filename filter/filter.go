// Package filter selects videos from a result set, either with simple
// field comparisons such as "view_count>=1000" or with a JavaScript expression.
package filter

import (
	"fmt"

	"github.com/ytget/qualitube/internal/logger"
	"github.com/ytget/qualitube/types"
)

// Predicate decides whether a video is kept.
type Predicate interface {
	Match(v types.Video) (bool, error)
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(types.Video) (bool, error)

// Match calls f(v).
func (f PredicateFunc) Match(v types.Video) (bool, error) {
	return f(v)
}

// All matches when every predicate matches. An empty All matches everything.
type All []Predicate

// Match evaluates predicates in order and stops at the first miss.
func (a All) Match(v types.Video) (bool, error) {
	for _, p := range a {
		ok, err := p.Match(v)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Apply returns a new response holding the videos p matches, in their
// original order. A nil predicate keeps everything.
func Apply(resp *types.VideosResponse, p Predicate) (*types.VideosResponse, error) {
	out := &types.VideosResponse{Videos: make([]types.Video, 0, resp.Len())}
	if resp == nil {
		return out, nil
	}
	if p == nil {
		out.Videos = append(out.Videos, resp.Videos...)
		return out, nil
	}

	for i, v := range resp.Videos {
		ok, err := p.Match(v)
		if err != nil {
			return nil, fmt.Errorf("filter video %d (%s): %w", i, v.ID.OrZero(), err)
		}
		if ok {
			out.Videos = append(out.Videos, v)
		}
	}

	logger.WithComponent(logger.ComponentFilter).Debug("Filter applied", map[string]interface{}{
		"total": resp.Len(),
		"kept":  out.Len(),
	})
	return out, nil
}

// record exposes a video as a column-keyed map; absent fields map to nil.
func record(v types.Video) map[string]any {
	m := make(map[string]any, len(types.ColumnNames()))
	for _, c := range types.Columns() {
		m[c.Name] = c.Value(v)
	}
	return m
}
