package version

import (
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
	}{
		{"4.6", 4, 6},
		{"4.10", 4, 10},
		{"4.11", 4, 11},
		{"5.0", 5, 0},
		{"4.06", 4, 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major {
				t.Errorf("Major = %d, want %d", v.Major, tt.major)
			}
			if v.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", v.Minor, tt.minor)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"4",
		"abc",
		"4.11.1",
		"4.x",
		"-4.6",
		"99999999.1",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"# Markups fiducial file version = 4.10", "4.10"},
		{"# Markups fiducial file version = 4.13\n", "4.13"},
		{"version 4.6 build 1.2", "4.6"},
		{"4.11", "4.11"},
	}

	for _, tt := range tests {
		v, err := Extract(tt.line)
		if err != nil {
			t.Errorf("Extract(%q) returned error: %v", tt.line, err)
			continue
		}
		if v.String() != tt.want {
			t.Errorf("Extract(%q) = %s, want %s", tt.line, v, tt.want)
		}
	}
}

func TestExtract_NoToken(t *testing.T) {
	for _, line := range []string{"", "# Markups fiducial file", "version = 4", "# v4.x"} {
		if _, err := Extract(line); !errors.Is(err, ErrNoVersion) {
			t.Errorf("Extract(%q): expected ErrNoVersion, got %v", line, err)
		}
	}
}

func TestCompare(t *testing.T) {
	v := func(s string) FormatVersion {
		t.Helper()
		fv, err := Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		return fv
	}

	if !v("4.6").Less(v("4.10")) {
		t.Error("4.6 should be older than 4.10")
	}
	if !v("4.10").Less(v("4.11")) {
		t.Error("4.10 should be older than 4.11")
	}
	if v("5.0").Compare(v("4.99")) != 1 {
		t.Error("5.0 should be newer than 4.99")
	}
	if v("4.11").Compare(SignFlip) != 0 {
		t.Error("4.11 should equal SignFlip")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Convention
	}{
		{"3.9", TooOld},
		{"4.5", TooOld},
		{"4.6", Standard},
		{"4.10", Standard},
		{"4.11", SignFlipped},
		{"4.13", SignFlipped},
		{"5.0", SignFlipped},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fv, err := Parse(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got := Classify(fv); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
