package timing

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// Row is one line of a timing table.
type Row struct {
	Name string
	MS   float64
	// S is MS in seconds, rounded to two decimal places.
	S float64
}

// Console displays timing tables.
type Console interface {
	Table(rows []Row)
}

func seconds(ms float64) float64 {
	return math.Round(ms/1000*100) / 100
}

// Table builds the display rows for opts, sorted by metric name. An
// unavailable facility yields no rows.
func (r *Reader) Table(opts Options) []Row {
	m, _ := r.All(opts)
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	rows := make([]Row, 0, len(names))
	for _, k := range names {
		rows = append(rows, Row{Name: k, MS: m[k], S: seconds(m[k])})
	}
	return rows
}

func (r *Reader) PrintTable(opts Options) {
	r.console.Table(r.Table(opts))
}

func (r *Reader) PrintSimpleTable() {
	r.PrintTable(Options{Simple: true})
}

// TextConsole writes tables as aligned text columns.
type TextConsole struct {
	w io.Writer
}

func NewTextConsole(w io.Writer) *TextConsole {
	return &TextConsole{w: w}
}

func (c *TextConsole) Table(rows []Row) {
	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "(index)\tms\ts\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n",
			row.Name,
			humanize.FormatFloat("#,###.##", row.MS),
			humanize.FormatFloat("#.##", row.S),
		)
	}
	tw.Flush()
}
