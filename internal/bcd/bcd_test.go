package bcd

import "testing"

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  uint16
	}{
		{name: "zero", value: 0, want: 0x0000},
		{name: "vfr squawk", value: 1200, want: 0x1200},
		{name: "emergency", value: 7700, want: 0x7700},
		{name: "max transponder", value: 7777, want: 0x7777},
		{name: "single digit", value: 7, want: 0x0007},
		{name: "four nines", value: 9999, want: 0x9999},
		{name: "fifth digit truncated", value: 12345, want: 0x2345},
		{name: "negative", value: -5, want: 0x0000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.value); got != tt.want {
				t.Errorf("Encode(%d) = 0x%04X, want 0x%04X", tt.value, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		packed uint16
		want   int
	}{
		{0x0000, 0},
		{0x1200, 1200},
		{0x7000, 7000},
		{0x0042, 42},
		{0x9999, 9999},
	}

	for _, tt := range tests {
		if got := Decode(tt.packed); got != tt.want {
			t.Errorf("Decode(0x%04X) = %d, want %d", tt.packed, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for n := 0; n <= 9999; n++ {
		if got := Decode(Encode(n)); got != n {
			t.Fatalf("Decode(Encode(%d)) = %d", n, got)
		}
	}
}
