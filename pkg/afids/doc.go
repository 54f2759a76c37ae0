// Package afids defines the fixed taxonomy of the 32 anatomical fiducials
// (AFIDs) used for quality control of brain image alignment.
//
// Each landmark is identified by a [Label] in the range 1..32 and described
// by a [Descriptor] carrying its canonical name, a short code and the
// description strings accepted in annotation files:
//
//	d, err := afids.Describe(5)
//	// d.Name   == "superior interpeduncular fossa"
//	// d.Code   == "SIPF"
//	// d.Matches("sipf") == true
//
// The table is built once at package initialization and never changes. All
// accessors return copies, so the package is safe for concurrent use without
// locking.
package afids
