package export

// Line is a single line of free text in a document.
type Line struct {
	Text string
	Bold bool
}

// Table is a titled grid of text cells. Widths are column widths in millimetres;
// when omitted the columns share the printable width evenly.
type Table struct {
	Title   string
	Headers []string
	Widths  []float64
	Rows    [][]string
}

// Document is the immutable content of a rendered report.
type Document struct {
	Title   string
	Header  []Line
	Tables  []Table
	Summary []Line
}

// DocumentBuilder accumulates document content. It never exposes partial state:
// callers observe the result only through Build.
type DocumentBuilder struct {
	doc Document
}

// NewDocumentBuilder starts a document with the given title.
func NewDocumentBuilder(title string) *DocumentBuilder {
	return &DocumentBuilder{doc: Document{Title: title}}
}

// HeaderLine appends a line below the title.
func (b *DocumentBuilder) HeaderLine(text string) *DocumentBuilder {
	b.doc.Header = append(b.doc.Header, Line{Text: text})
	return b
}

// Table appends a table. Tables without rows are skipped entirely.
func (b *DocumentBuilder) Table(title string, headers []string, widths []float64, rows [][]string) *DocumentBuilder {
	if len(rows) == 0 {
		return b
	}
	b.doc.Tables = append(b.doc.Tables, Table{
		Title:   title,
		Headers: append([]string(nil), headers...),
		Widths:  append([]float64(nil), widths...),
		Rows:    copyRows(rows),
	})
	return b
}

// SummaryLine appends a line after the tables.
func (b *DocumentBuilder) SummaryLine(text string, bold bool) *DocumentBuilder {
	b.doc.Summary = append(b.doc.Summary, Line{Text: text, Bold: bold})
	return b
}

// Build returns a copy of the accumulated document.
func (b *DocumentBuilder) Build() Document {
	out := Document{
		Title:   b.doc.Title,
		Header:  append([]Line(nil), b.doc.Header...),
		Summary: append([]Line(nil), b.doc.Summary...),
	}
	if len(b.doc.Tables) > 0 {
		out.Tables = make([]Table, len(b.doc.Tables))
		for i, t := range b.doc.Tables {
			out.Tables[i] = Table{
				Title:   t.Title,
				Headers: append([]string(nil), t.Headers...),
				Widths:  append([]float64(nil), t.Widths...),
				Rows:    copyRows(t.Rows),
			}
		}
	}
	return out
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
