package docmodel

import "github.com/fumiama/go-docx"

// Table is a handle over a go-docx table, exposing its cell paragraphs
// row by row.
type Table struct {
	raw  *docx.Table
	rows [][]*Paragraph
}

func newTable(raw *docx.Table) *Table {
	t := &Table{raw: raw}
	for _, row := range raw.TableRows {
		var cells []*Paragraph
		for _, cell := range row.TableCells {
			for _, para := range cell.Paragraphs {
				cells = append(cells, &Paragraph{raw: para})
			}
		}
		t.rows = append(t.rows, cells)
	}
	return t
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Row returns the cell paragraphs of row i in cell order.
func (t *Table) Row(i int) []*Paragraph {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

// AllParagraphs returns every cell paragraph in reading order.
func (t *Table) AllParagraphs() []*Paragraph {
	var all []*Paragraph
	for _, row := range t.rows {
		all = append(all, row...)
	}
	return all
}
