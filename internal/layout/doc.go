// Package layout recognises the structural variants of legal-act HTML renditions
// and extracts raw, unbounded sections from each of them.
//
// Classification is an ordered match over four signatures; the first one that
// holds selects a dedicated extractor. A document that matches none of them is
// reported as FormatUnknown and yields no sections.
package layout
