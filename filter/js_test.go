package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/ytget/qualitube/types"
)

var engines = []Engine{EngineGoja, EngineOtto}

func TestNewJS_Matches(t *testing.T) {
	v := sampleVideo()
	tests := []struct {
		expr string
		want bool
	}{
		{"video.view_count > 1000", true},
		{"video.view_count > 2000", false},
		{"video.like_count === 0", true},
		{"video.dislike_count === null", true},
		{"video.description == null", true},
		{`video.tags.indexOf("golang") >= 0`, true},
		{"video.tags.length === 3", false},
		{"/concurrency/i.test(video.title)", true},
		{"video.id", true},
		{"video.comment_count", false},
	}

	for _, engine := range engines {
		for _, tt := range tests {
			p, err := NewJS(tt.expr, engine)
			if err != nil {
				t.Errorf("%s: NewJS(%q): %v", engine, tt.expr, err)
				continue
			}
			got, err := p.Match(v)
			if err != nil {
				t.Errorf("%s: Match(%q): %v", engine, tt.expr, err)
				continue
			}
			if got != tt.want {
				t.Errorf("%s: Expected %q to be %v, got %v", engine, tt.expr, tt.want, got)
			}
		}
	}
}

func TestNewJS_SyntaxError(t *testing.T) {
	for _, engine := range engines {
		if _, err := NewJS("video.view_count >", engine); !errors.Is(err, ErrSyntax) {
			t.Errorf("%s: Expected ErrSyntax, got %v", engine, err)
		}
		if _, err := NewJS("   ", engine); !errors.Is(err, ErrSyntax) {
			t.Errorf("%s: Expected ErrSyntax for empty expression, got %v", engine, err)
		}
	}
}

func TestNewJS_RuntimeError(t *testing.T) {
	for _, engine := range engines {
		p, err := NewJS("video.description.length > 0", engine)
		if err != nil {
			t.Fatalf("%s: %v", engine, err)
		}
		if _, err := p.Match(sampleVideo()); err == nil {
			t.Errorf("%s: Expected error dereferencing null", engine)
		}
	}
}

func TestNewJS_Timeout(t *testing.T) {
	for _, engine := range engines {
		p, err := NewJS("(function(){ while (true) {} })()", engine)
		if err != nil {
			t.Fatalf("%s: %v", engine, err)
		}
		switch jp := p.(type) {
		case *gojaPredicate:
			jp.timeout = 50 * time.Millisecond
		case *ottoPredicate:
			jp.timeout = 50 * time.Millisecond
		}

		if _, err := p.Match(sampleVideo()); !errors.Is(err, ErrTimeout) {
			t.Errorf("%s: Expected ErrTimeout, got %v", engine, err)
		}
	}
}

func TestNewJS_ReusableAfterTimeout(t *testing.T) {
	p, err := NewJS("video.view_count > 100 ? true : (function(){ while (true) {} })()", EngineGoja)
	if err != nil {
		t.Fatal(err)
	}
	p.(*gojaPredicate).timeout = 50 * time.Millisecond

	if _, err := p.Match(types.Video{ViewCount: types.Some(int64(1))}); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
	ok, err := p.Match(sampleVideo())
	if err != nil || !ok {
		t.Errorf("Expected predicate to recover, got %v %v", ok, err)
	}
}

func TestParseEngine(t *testing.T) {
	tests := map[string]Engine{"": EngineGoja, "goja": EngineGoja, " OTTO ": EngineOtto}
	for in, want := range tests {
		got, err := ParseEngine(in)
		if err != nil || got != want {
			t.Errorf("ParseEngine(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEngine("v8"); err == nil {
		t.Error("Expected error for unknown engine")
	}
	if _, err := NewJS("true", Engine("v8")); err == nil {
		t.Error("Expected NewJS to reject unknown engine")
	}
}
