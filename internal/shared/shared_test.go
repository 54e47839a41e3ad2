package shared

import "testing"

func TestNormalizeName(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "basic normalization",
			in:   "Nintendo Entertainment System",
			want: "nintendo entertainment system",
		},
		{
			name: "extra whitespace",
			in:   "  Super   Nintendo  ",
			want: "super nintendo",
		},
		{
			name: "mixed case",
			in:   "PlAyStAtIoN 2",
			want: "playstation 2",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatGeneration(t *testing.T) {
	tc := []struct {
		gen  int
		want string
	}{
		{0, "unknown"},
		{1, "1st gen"},
		{2, "2nd gen"},
		{3, "3rd gen"},
		{4, "4th gen"},
		{8, "8th gen"},
	}

	for _, tt := range tc {
		got := FormatGeneration(tt.gen)
		if got != tt.want {
			t.Errorf("FormatGeneration(%d) = %v, want %v", tt.gen, got, tt.want)
		}
	}
}
