package tcb

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sig-0/tcbrates/provider"
)

// rateTableID is the ID of the foreign spot rate result table
const rateTableID = "ctl00_PlaceHolderEmptyMain_PlaceHolderMain_fecurrentid_gvResult"

var (
	errTableNotFound  = errors.New("rate table not found")
	errTableAmbiguous = errors.New("rate table is not unique")
	errTooFewRows     = errors.New("rate table has less than 2 data rows")
)

// rawRow is a single rate table row, with trimmed cell text
type rawRow struct {
	cells []string
	index int // position in the table, the header row being 0
}

// parseTable locates the rate table and returns its data rows (header excluded)
func parseTable(doc *goquery.Document) ([]rawRow, error) {
	table := doc.Find("table#" + rateTableID)

	switch table.Length() {
	case 0:
		return nil, &provider.ParseError{Err: errTableNotFound}
	case 1:
	default:
		return nil, &provider.ParseError{Err: errTableAmbiguous}
	}

	// Skip rows belonging to tables nested inside the rate table
	trs := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})

	if trs.Length() < 3 {
		return nil, &provider.ParseError{Err: errTooFewRows}
	}

	rows := make([]rawRow, 0, trs.Length()-1)

	trs.Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header
		}

		cellSel := tr.ChildrenFiltered("td, th")
		cells := make([]string, 0, cellSel.Length())

		cellSel.Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})

		rows = append(rows, rawRow{
			cells: cells,
			index: i,
		})
	})

	return rows, nil
}
