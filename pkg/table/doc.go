// Package table reads and writes the small CSV tables treelink consumes.
//
// A [Table] is an ordered list of header fields plus rows whose values line
// up positionally with the header. Column order is significant: the
// hierarchy builder maps the first four columns to depths 1 through 4, and
// the linkage ingestors address their columns by position rather than by
// name, so a file may use any header spelling it likes.
//
// # Reading
//
//	t, err := table.ReadFile("rawData.csv")
//	if err != nil {
//	    return err
//	}
//	for _, row := range t.Rows {
//	    fmt.Println(row.At(0), row.At(1))
//	}
//
// Every data record must have exactly as many fields as the header. A short
// or long record is a MALFORMED_INPUT error carrying the file name and line;
// this package never pads or truncates records. A quote inside an unquoted
// field is kept as a literal character.
//
// # Writing
//
// [Write] emits a header and rows with encoding/csv quoting rules, which is
// what the persisted linkage table uses.
package table
