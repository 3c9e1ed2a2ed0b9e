package source

import "testing"

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\n\nx")
	idx := buildLineIndex(content)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' относится к первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestDetectCRLF(t *testing.T) {
	cases := map[string]bool{
		"a\r\nb\n": true,
		"a\nb\r\n": false,
		"":         false,
		"\n":       false,
	}
	for in, want := range cases {
		if got := detectCRLF([]byte(in)); got != want {
			t.Errorf("detectCRLF(%q) = %v, want %v", in, got, want)
		}
	}
}
