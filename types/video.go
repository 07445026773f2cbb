// Package types contains the records returned by the qualitube client.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ytget/qualitube/errs"
)

// Video describes one item of a videos.list response. Every field is optional
// because the API omits parts depending on the video's visibility and settings.
type Video struct {
	ID            Optional[string]   `json:"id"`
	Title         Optional[string]   `json:"title"`
	Description   Optional[string]   `json:"description"`
	Tags          Optional[[]string] `json:"tags"`
	ViewCount     Optional[int64]    `json:"view_count"`
	LikeCount     Optional[int64]    `json:"like_count"`
	DislikeCount  Optional[int64]    `json:"dislike_count"`
	FavoriteCount Optional[int64]    `json:"favorite_count"`
	CommentCount  Optional[int64]    `json:"comment_count"`
}

func (v Video) String() string {
	return fmt.Sprintf("<Video id=%q>", v.ID.OrZero())
}

// videoItem mirrors the parts of a videos#video resource that are mapped.
// Pointers distinguish absent or null members from empty ones.
type videoItem struct {
	ID      *string `json:"id"`
	Snippet *struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Tags        *[]string `json:"tags"`
	} `json:"snippet"`
	Statistics *struct {
		ViewCount     *json.RawMessage `json:"viewCount"`
		LikeCount     *json.RawMessage `json:"likeCount"`
		DislikeCount  *json.RawMessage `json:"dislikeCount"`
		FavoriteCount *json.RawMessage `json:"favoriteCount"`
		CommentCount  *json.RawMessage `json:"commentCount"`
	} `json:"statistics"`
}

// NewVideo maps a single raw item into a Video.
func NewVideo(raw json.RawMessage) (Video, error) {
	var item videoItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return Video{}, fmt.Errorf("decode video item: %w", err)
	}

	var v Video
	v.ID = fromPtr(item.ID)

	if s := item.Snippet; s != nil {
		v.Title = fromPtr(s.Title)
		v.Description = fromPtr(s.Description)
		if s.Tags != nil {
			tags := make([]string, len(*s.Tags))
			copy(tags, *s.Tags)
			v.Tags = Some(tags)
		}
	}

	if st := item.Statistics; st != nil {
		counters := []struct {
			name string
			raw  *json.RawMessage
			dst  *Optional[int64]
		}{
			{"viewCount", st.ViewCount, &v.ViewCount},
			{"likeCount", st.LikeCount, &v.LikeCount},
			{"dislikeCount", st.DislikeCount, &v.DislikeCount},
			{"favoriteCount", st.FavoriteCount, &v.FavoriteCount},
			{"commentCount", st.CommentCount, &v.CommentCount},
		}
		for _, c := range counters {
			n, err := parseCounter(c.name, c.raw)
			if err != nil {
				return Video{}, err
			}
			*c.dst = n
		}
	}

	return v, nil
}

func fromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// parseCounter accepts the API's quoted integers as well as bare JSON numbers.
func parseCounter(name string, raw *json.RawMessage) (Optional[int64], error) {
	if raw == nil {
		return None[int64](), nil
	}
	text := bytes.TrimSpace(*raw)
	if bytes.Equal(text, []byte("null")) {
		return None[int64](), nil
	}

	s := string(text)
	if len(text) > 0 && text[0] == '"' {
		if err := json.Unmarshal(text, &s); err != nil {
			return None[int64](), fmt.Errorf("%w: %s: %w", errs.ErrInvalidStatistic, name, err)
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return None[int64](), fmt.Errorf("%w: %s: %w", errs.ErrInvalidStatistic, name, err)
	}
	return Some(n), nil
}
