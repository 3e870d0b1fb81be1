// Package typesxml reads, edits, merges and writes DayZ types.xml files.
//
// Documents are decoded into a permissive string-typed tree first. From
// there, Parse validates every field strictly and rejects the whole document
// when any record is invalid, while ParseLenient repairs what it can
// (unparsable numbers fall back to defaults, bad flags become false) and
// never fails on well-formed XML.
//
// The validated model (Type, Flags, Named) is what edits operate on, either
// through setters or through a Change applied to a Types collection. Merge
// combines two collections by name with the extension winning, and returns
// a new collection sorted by name.
package typesxml
