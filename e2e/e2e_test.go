//go:build e2e

package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ytget/qualitube"
	"github.com/ytget/qualitube/errs"
)

func TestE2E_GetVideos(t *testing.T) {
	key := os.Getenv("QUALITUBE_E2E_KEY")
	if key == "" {
		t.Skip("QUALITUBE_E2E_KEY not set")
	}
	id := os.Getenv("QUALITUBE_E2E_ID")
	if id == "" {
		id = "dQw4w9WgXcQ"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	resp, err := qualitube.New(key).GetVideos(ctx, []string{id})
	if err != nil {
		t.Fatalf("e2e fetch failed: %v", err)
	}
	if resp.Len() != 1 {
		t.Fatalf("expected 1 video, got %d", resp.Len())
	}
	v := resp.Videos[0]
	if v.ID.OrZero() != id || !v.Title.IsSet() || !v.ViewCount.IsSet() {
		t.Errorf("unexpected video: %+v", v)
	}
}

func TestE2E_InvalidKey(t *testing.T) {
	if os.Getenv("QUALITUBE_E2E_KEY") == "" {
		t.Skip("QUALITUBE_E2E_KEY not set")
	}

	_, err := qualitube.New("invalid-key").GetVideos(context.Background(), []string{"dQw4w9WgXcQ"})
	if err == nil {
		t.Fatal("expected error for invalid key")
	}
	if !errs.IsKeyInvalid(err) {
		t.Logf("error did not carry keyInvalid reason: %v", err)
	}
}
