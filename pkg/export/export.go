// Package export renders resolved rosters as CSV or aligned text.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/arnavshah/rotation-api-go/pkg/models"
)

// CSVHeader is the first row written by WriteCSV
var CSVHeader = []string{"week", "template", "day", "period", "position", "staff"}

// WriteCSV writes one row per filled slot
func WriteCSV(w io.Writer, weeks []models.RosterWeek) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, wk := range weeks {
		for _, d := range wk.Days {
			for _, p := range []struct {
				name  string
				names []string
			}{{"morning", d.Morning}, {"afternoon", d.Afternoon}} {
				for i, name := range p.names {
					if err := writer.Write([]string{
						strconv.Itoa(wk.Week),
						strconv.Itoa(wk.TemplateIndex),
						d.Day,
						p.name,
						strconv.Itoa(i),
						name,
					}); err != nil {
						return err
					}
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteText prints each week as a table of days
func WriteText(w io.Writer, weeks []models.RosterWeek) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, wk := range weeks {
		fmt.Fprintf(tw, "week %d (template %d, offset %d)\n", wk.Week, wk.TemplateIndex, wk.Delta)
		fmt.Fprintln(tw, "day\tmorning\tafternoon")
		for _, d := range wk.Days {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Day, list(d.Morning), list(d.Afternoon))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func list(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
