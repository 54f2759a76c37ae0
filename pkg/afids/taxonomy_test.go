package afids

import (
	"errors"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		label    Label
		wantName string
		wantCode string
	}{
		{1, "AC", "AC"},
		{2, "PC", "PC"},
		{3, "infracollicular sulcus", "ICS"},
		{5, "superior interpeduncular fossa", "SIPF"},
		{26, "L inferior AM temporal horn", "LIAMTH"},
		{32, "L olfactory sulcal fundus", "LOSF"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			d, err := Describe(tt.label)
			if err != nil {
				t.Fatalf("Describe(%d) failed: %v", tt.label, err)
			}
			if d.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", d.Name, tt.wantName)
			}
			if d.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", d.Code, tt.wantCode)
			}
			if d.Label != tt.label {
				t.Errorf("Label = %d, want %d", d.Label, tt.label)
			}
		})
	}
}

func TestDescribeUnknown(t *testing.T) {
	for _, l := range []Label{-1, 0, 33, 100} {
		if _, err := Describe(l); !errors.Is(err, ErrUnknownLabel) {
			t.Errorf("Describe(%d): expected ErrUnknownLabel, got %v", l, err)
		}
	}
}

func TestMatches(t *testing.T) {
	d, _ := Describe(5)

	for _, desc := range []string{"SIPF", "sipf", "Superior Interpeduncular Fossa", "superior interpeduncular fossa"} {
		if !d.Matches(desc) {
			t.Errorf("expected %q to match SIPF", desc)
		}
	}

	for _, desc := range []string{"", "SIPF ", "AC", "interpeduncular"} {
		if d.Matches(desc) {
			t.Errorf("expected %q not to match SIPF", desc)
		}
	}
}

func TestLeftInferiorAMTemporalHornAlias(t *testing.T) {
	left, _ := Describe(26)
	if !left.Matches("LIAMTH") {
		t.Error("expected LIAMTH to describe label 26")
	}
	if left.Matches("RIAMTH") {
		t.Error("RIAMTH must only describe label 25")
	}
}

func TestParseLabel(t *testing.T) {
	for _, s := range []string{"1", "9", "10", "32"} {
		if _, err := ParseLabel(s); err != nil {
			t.Errorf("ParseLabel(%q) failed: %v", s, err)
		}
	}

	for _, s := range []string{"", "0", "33", "01", " 1", "1.0", "AC", "-1"} {
		if _, err := ParseLabel(s); !errors.Is(err, ErrUnknownLabel) {
			t.Errorf("ParseLabel(%q): expected ErrUnknownLabel, got %v", s, err)
		}
	}
}

func TestAllIsOrderedAndIsolated(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("expected %d descriptors, got %d", Count, len(all))
	}

	codes := make(map[string]bool)
	for i, d := range all {
		if d.Label != Label(i+1) {
			t.Errorf("index %d: label %d out of order", i, d.Label)
		}
		if codes[d.Code] {
			t.Errorf("duplicate code %s", d.Code)
		}
		codes[d.Code] = true
		if d.Aliases()[0] != d.Name {
			t.Errorf("label %d: canonical name must be the first alias", d.Label)
		}
	}

	all[0].Name = "changed"
	aliases := all[1].Aliases()
	aliases[0] = "changed"

	d1, _ := Describe(1)
	d2, _ := Describe(2)
	if d1.Name != "AC" || d2.Aliases()[0] != "PC" {
		t.Error("taxonomy was mutated through a returned copy")
	}
}

func TestLabels(t *testing.T) {
	labels := Labels()
	if len(labels) != Count || labels[0] != 1 || labels[Count-1] != Count {
		t.Errorf("unexpected labels: %v", labels)
	}
	if labels[9].String() != "10" {
		t.Errorf("expected \"10\", got %q", labels[9].String())
	}
}
