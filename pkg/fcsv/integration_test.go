package fcsv

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testdataDir = "../../testdata/fcsv"

func TestTestdataConventionsAgree(t *testing.T) {
	ras, err := ParseFile(filepath.Join(testdataDir, "sub-01_afids.fcsv"))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	lps, err := ParseFile(filepath.Join(testdataDir, "sub-01_afids_lps.fcsv"))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if ras.Version().String() != "4.10" || lps.Version().String() != "4.13" {
		t.Errorf("unexpected versions %s / %s", ras.Version(), lps.Version())
	}

	if diff := cmp.Diff(ras.Records(), lps.Records()); diff != "" {
		t.Errorf("RAS and LPS files should normalize to the same records (-ras +lps):\n%s", diff)
	}

	rec, _ := ras.Get(1)
	if rec.X != -14.093 || rec.Y != -44.915 || rec.Z != 9.056 {
		t.Errorf("unexpected AC coordinates: %+v", rec)
	}
}

func TestTestdataTooFewRows(t *testing.T) {
	_, err := ParseFile(filepath.Join(testdataDir, "too_few_rows.fcsv"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "Too few rows (31 of 32)" {
		t.Errorf("unexpected message %q", got)
	}
}
