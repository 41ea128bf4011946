// Package dataset decodes the population-pyramid text dialect into an
// immutable [Dataset].
//
// The dialect is line oriented:
//
//	Title
//	,source1,source2,...
//	,time1,time2,...
//	group,v1,v2,...        (left group rows)
//	Mujeres                (sentinel row)
//	group,v1,v2,...        (right group rows)
//
// Fields are separated by commas and may be bare, single-quoted, or
// double-quoted. Inside a field the escapes \', \" and \n are resolved.
//
//   - [Tokenize]: splits one line into fields
//   - [Dialect.Build]: turns a whole document into a [Dataset]
//   - [FormatRow]: writes fields back in the dialect
//
// # Leniency
//
// Numbers that fail to parse become 0 and malformed quoting falls back to
// bare fields. The only error is [ErrMalformedInput], returned when the
// three header rows are missing.
package dataset
