package types

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TagSeparator joins tags in the CSV and text renderings.
const TagSeparator = "|"

// Column is a named accessor over a Video.
type Column struct {
	Name  string
	Value func(Video) any
}

// videoColumns fixes the order of exported columns. Each accessor returns nil
// for an absent field.
var videoColumns = []Column{
	{"id", func(v Video) any { return v.ID.Any() }},
	{"title", func(v Video) any { return v.Title.Any() }},
	{"description", func(v Video) any { return v.Description.Any() }},
	{"tags", func(v Video) any { return v.Tags.Any() }},
	{"view_count", func(v Video) any { return v.ViewCount.Any() }},
	{"like_count", func(v Video) any { return v.LikeCount.Any() }},
	{"dislike_count", func(v Video) any { return v.DislikeCount.Any() }},
	{"favorite_count", func(v Video) any { return v.FavoriteCount.Any() }},
	{"comment_count", func(v Video) any { return v.CommentCount.Any() }},
}

// Columns returns the table columns in export order.
func Columns() []Column {
	out := make([]Column, len(videoColumns))
	copy(out, videoColumns)
	return out
}

// ColumnNames returns the column names in export order.
func ColumnNames() []string {
	names := make([]string, len(videoColumns))
	for i, c := range videoColumns {
		names[i] = c.Name
	}
	return names
}

// LookupColumn finds a column by name.
func LookupColumn(name string) (Column, bool) {
	for _, c := range videoColumns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Table is a row/column projection of a VideosResponse. A nil cell is an
// absent value.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Table projects the videos into one row per video, in stored order.
func (r *VideosResponse) Table() Table {
	t := Table{Columns: ColumnNames(), Rows: make([][]any, 0, r.Len())}
	if r == nil {
		return t
	}
	for _, v := range r.Videos {
		row := make([]any, len(videoColumns))
		for i, c := range videoColumns {
			row[i] = c.Value(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// WriteCSV writes a header line followed by one record per row.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(formatRow(row)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows as a JSON array of objects whose keys follow
// column order.
func (t Table) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, name := range t.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(name)
			buf.Write(key)
			buf.WriteByte(':')
			var cell any
			if j < len(row) {
				cell = row[j]
			}
			val, err := json.Marshal(cell)
			if err != nil {
				return fmt.Errorf("encode row %d column %s: %w", i, name, err)
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteText writes an aligned, tab-separated table for terminals.
func (t Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(t.Columns, "\t")))
	for _, row := range t.Rows {
		cells := formatRow(row)
		for i, c := range cells {
			cells[i] = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func formatRow(row []any) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = formatCell(cell)
	}
	return out
}

func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, TagSeparator)
	default:
		return fmt.Sprint(v)
	}
}
