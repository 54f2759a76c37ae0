package fcsv

import (
	"fmt"
	"strings"

	"github.com/afids/afids-go/pkg/afids"
)

// dataRow formats one data row for label with the canonical code as
// description and coordinates derived from the label.
func dataRow(label int) string {
	d, _ := afids.Describe(afids.Label(label))
	return rowWith(label, d.Code, coordX(label), coordY(label), coordZ(label))
}

func rowWith(label int, desc, x, y, z string) string {
	return fmt.Sprintf("vtkMRMLMarkupsFiducialNode_%d,%s,%s,%s,0,0,0,1,1,1,0,%d,%s,vtkMRMLScalarVolumeNode1",
		label, x, y, z, label, desc)
}

func coordX(label int) string { return fmt.Sprintf("%d.25", label) }
func coordY(label int) string { return fmt.Sprintf("-%d.5", label) }
func coordZ(label int) string { return fmt.Sprintf("%d.125", label) }

// fcsvFile assembles a file with the given header version and data rows.
func fcsvFile(ver string, rows []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Markups fiducial file version = %s\n", ver)
	sb.WriteString("# CoordinateSystem = 0\n")
	sb.WriteString("# columns = id,x,y,z,ow,ox,oy,oz,vis,sel,lock,label,desc,associatedNodeID\n")
	for _, r := range rows {
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	return sb.String()
}

// validRows returns 32 well-formed rows in label order.
func validRows() []string {
	rows := make([]string, afids.Count)
	for i := range rows {
		rows[i] = dataRow(i + 1)
	}
	return rows
}

// withRow replaces the row for label.
func withRow(rows []string, label int, row string) []string {
	out := append([]string(nil), rows...)
	out[label-1] = row
	return out
}
