package formatting_test

import (
	"testing"

	"github.com/JaimeStill/registrar/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"2048", 2048, false},
		{"64B", 64, false},
		{"10MB", 10 << 20, false},
		{"10 mb", 10 << 20, false},
		{" 1.5KB ", 1536, false},
		{"3Gb", 3 << 30, false},
		{"0", 0, false},
		{"", 0, true},
		{"MB", 0, true},
		{"-1MB", 0, true},
		{"4 bushels", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 1, "0 B"},
		{900, 0, "900 B"},
		{10 << 20, 0, "10 MB"},
		{10 << 20, 1, "10.0 MB"},
		{2560 << 10, 1, "2.5 MB"},
		{1 << 10, -3, "1 KB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}

	for _, n := range []int64{1 << 10, 10 << 20, 1 << 40} {
		back, err := formatting.ParseBytes(formatting.FormatBytes(n, 0))
		if err != nil || back != n {
			t.Errorf("round trip %d: got %d, err %v", n, back, err)
		}
	}
}
