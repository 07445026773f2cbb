package types

import (
	"fmt"
	"strings"
)

// VideosResponse holds the videos returned by a GetVideos call in API order.
type VideosResponse struct {
	Videos []Video `json:"videos"`
}

// Len returns the number of videos.
func (r *VideosResponse) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Videos)
}

func (r *VideosResponse) String() string {
	ids := make([]string, 0, r.Len())
	if r != nil {
		for _, v := range r.Videos {
			ids = append(ids, v.String())
		}
	}
	return fmt.Sprintf("<VideosResponse videos=[%s]>", strings.Join(ids, ", "))
}
