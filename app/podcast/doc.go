// Package podcast turns a parsed podcast feed tree into a metadata record and
// an ordered list of episode records.
//
// Which fields are read, which must be present and which are returned raw is
// controlled by a Config resolved from caller Options. Field extraction and
// cleaning are looked up by field name; names without a dedicated rule fall
// back to a direct child lookup and to first-element unwrapping. The package
// performs no I/O and keeps no state between calls.
package podcast
