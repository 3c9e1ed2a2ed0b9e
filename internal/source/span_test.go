package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{Start: 2, End: 4}, Span{Start: 8, End: 9}, Span{Start: 2, End: 9}},
		{"nested", Span{Start: 2, End: 10}, Span{Start: 4, End: 5}, Span{Start: 2, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{Start: 0, End: 10}
	if !outer.Contains(Span{Start: 0, End: 10}) {
		t.Error("span should contain itself")
	}
	if outer.Contains(Span{Start: 5, End: 11}) {
		t.Error("span should not contain an overhanging span")
	}
	if outer.Contains(Span{File: 1, Start: 1, End: 2}) {
		t.Error("span should not contain a span of another file")
	}
}
