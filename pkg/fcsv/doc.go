// Package fcsv parses and validates markups fiducial (.fcsv) files holding
// the 32 anatomical fiducials.
//
// # File Format
//
// An fcsv file is comma separated text. The first line declares the format
// version, the next two lines are comments, and every following line is one
// landmark with 14 positional fields:
//
//	# Markups fiducial file version = 4.10
//	# CoordinateSystem = 0
//	# columns = id,x,y,z,ow,ox,oy,oz,vis,sel,lock,label,desc,associatedNodeID
//	vtkMRMLMarkupsFiducialNode_1,0.1,2.3,-4.5,0,0,0,1,1,1,0,1,AC,vtkMRMLScalarVolumeNode1
//
// # Versions
//
// Files older than 4.6 are rejected. From 4.11 on, x and y are stored with
// the opposite sign; they are negated on read so every [ParsedFile] uses the
// same convention.
//
// # Validation
//
// Parsing stops at the first problem and returns a [*ParseError] that wraps
// one of the sentinel errors (ErrTooFewRows, ErrNotFinite, ...), so callers
// can branch with errors.Is and still show the diagnostic text. A successful
// parse always yields exactly 32 records in ascending label order.
package fcsv
