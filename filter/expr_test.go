package filter

import (
	"errors"
	"testing"

	"github.com/ytget/qualitube/types"
)

func sampleVideo() types.Video {
	return types.Video{
		ID:        types.Some("abc"),
		Title:     types.Some("Go Concurrency Patterns"),
		Tags:      types.Some([]string{"golang", "Talks"}),
		ViewCount: types.Some(int64(1500)),
		LikeCount: types.Some(int64(0)),
	}
}

func TestParse_Matches(t *testing.T) {
	v := sampleVideo()
	tests := []struct {
		expr string
		want bool
	}{
		{"", true},
		{"view_count>=1500", true},
		{"view_count>1500", false},
		{"view_count<2000", true},
		{"view_count<=1499", false},
		{"view_count=1500", true},
		{"view_count!=1500", false},
		{"like_count=0", true},
		{"dislike_count>=0", false},
		{"title~concurrency", true},
		{"title=go concurrency patterns", true},
		{`title="Go Concurrency Patterns"`, true},
		{"title!=other", true},
		{"description~x", false},
		{"tags=golang", true},
		{"tags=TALKS", true},
		{"tags!=rust", true},
		{"tags~lang", true},
		{"tags~rust", false},
		{"id=abc, view_count>1000", true},
		{"id=abc,view_count>9999", false},
	}

	for _, tt := range tests {
		p, err := Parse(tt.expr)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.expr, err)
			continue
		}
		got, err := p.Match(v)
		if err != nil {
			t.Errorf("Match(%q) error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Expected %q to be %v, got %v", tt.expr, tt.want, got)
		}
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	for _, expr := range []string{"view_count", "bogus=1", "=1", "view_count>1,"} {
		if _, err := Parse(expr); !errors.Is(err, ErrSyntax) {
			t.Errorf("Expected ErrSyntax for %q, got %v", expr, err)
		}
	}
}

func TestParse_OperatorSelection(t *testing.T) {
	p, err := Parse("view_count >= 10")
	if err != nil {
		t.Fatal(err)
	}
	c := p.(All)[0].(*Comparison)
	if c.Field != "view_count" || c.Op != OpGe || c.Value != "10" {
		t.Errorf("Unexpected clause: %+v", c)
	}

	p, err = Parse("title~a=b")
	if err != nil {
		t.Fatal(err)
	}
	c = p.(All)[0].(*Comparison)
	if c.Op != OpContains || c.Value != "a=b" {
		t.Errorf("Expected leftmost operator to win, got %+v", c)
	}
}

func TestComparison_TypeErrors(t *testing.T) {
	v := sampleVideo()
	for _, expr := range []string{"view_count>lots", "view_count~1", "tags>a"} {
		p, err := Parse(expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", expr, err)
		}
		if _, err := p.Match(v); err == nil {
			t.Errorf("Expected evaluation error for %q", expr)
		}
	}
}
