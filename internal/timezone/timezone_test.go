package timezone

import "testing"

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		offset int
		invert bool
		want   string
	}{
		{"ist android", 330, false, "+05:30"},
		{"ist js", -330, false, "-05:30"},
		{"negative partial hour", -75, false, "-01:15"},
		{"invert for sql", 330, true, "-05:30"},
		{"zero falls back", 0, false, "+00:00"},
		{"single digit hour", 60, false, "+01:00"},
		{"minutes only", 45, false, "+00:45"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.offset, tc.invert); got != tc.want {
				t.Fatalf("Format(%d, %v) = %q, want %q", tc.offset, tc.invert, got, tc.want)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		s      string
		invert bool
		want   int
	}{
		{"ist", "+05:30", false, 330},
		{"negative", "-01:15", false, -75},
		{"inverted", "+05:30", true, -330},
		{"empty", "", false, 0},
		{"garbage", "mediodía", false, 0},
		{"missing minutes", "+05", false, 0},
		{"non numeric hour", "+ab:30", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Offset(tc.s, tc.invert); got != tc.want {
				t.Fatalf("Offset(%q, %v) = %d, want %d", tc.s, tc.invert, got, tc.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	for _, off := range []int{330, -330, 75, -75, 600} {
		if got := Offset(Format(off, false), false); got != off {
			t.Fatalf("round trip %d -> %d", off, got)
		}
	}
}
