package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Item is one table line of a rendered invoice.
type Item struct {
	Description string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// Invoice is the render input: header fields plus ordered items. It is
// decoupled from the persistence model so the renderer stays deterministic
// over plain values.
type Invoice struct {
	Number     string
	ClientName string
	IssueDate  string
	DueDate    string
	Total      string
	Items      []Item
}

type Renderer struct {
	outDir string
}

func NewRenderer(outDir string) *Renderer {
	return &Renderer{outDir: outDir}
}

func (r *Renderer) OutDir() string { return r.outDir }

var (
	headerBg   = props.Color{Red: 55, Green: 71, Blue: 99}
	headerText = props.Color{Red: 255, Green: 255, Blue: 255}
	totalBg    = props.Color{Red: 230, Green: 236, Blue: 245}
)

// Generate builds the invoice document and returns its bytes.
func (r *Renderer) Generate(inv Invoice) ([]byte, error) {
	m := maroto.New(config.NewBuilder().WithLeftMargin(15).WithTopMargin(15).WithRightMargin(15).Build())

	m.AddRow(14, text.NewCol(12, "Invoice "+inv.Number, props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	m.AddRow(8, text.NewCol(12, "Billed to: "+inv.ClientName, props.Text{Size: 10}))
	m.AddRow(6,
		text.NewCol(6, "Issue date: "+inv.IssueDate, props.Text{Size: 9}),
		text.NewCol(6, "Due date: "+inv.DueDate, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(4, col.New(12))

	m.AddRows(r.tableRows(inv)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate invoice %s: %w", inv.Number, err)
	}
	return doc.GetBytes(), nil
}

// RenderToFile writes the document under the staging directory and returns
// the full path.
func (r *Renderer) RenderToFile(inv Invoice, filename string) (string, error) {
	data, err := r.Generate(inv)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.outDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", path, err)
	}
	return path, nil
}

func (r *Renderer) tableRows(inv Invoice) []core.Row {
	bold := props.Text{Size: 9, Style: fontstyle.Bold, Color: &headerText}
	boldRight := props.Text{Size: 9, Style: fontstyle.Bold, Color: &headerText, Align: align.Right}

	rows := []core.Row{
		row.New(8).Add(
			text.NewCol(6, "Description", bold),
			text.NewCol(2, "Qty", boldRight),
			text.NewCol(2, "Unit price", boldRight),
			text.NewCol(2, "Subtotal", boldRight),
		).WithStyle(&props.Cell{BackgroundColor: &headerBg}),
	}

	cell := props.Text{Size: 9}
	cellRight := props.Text{Size: 9, Align: align.Right}
	for _, it := range inv.Items {
		rows = append(rows, row.New(7).Add(
			text.NewCol(6, it.Description, cell),
			text.NewCol(2, fmt.Sprintf("%d", it.Quantity), cellRight),
			text.NewCol(2, it.UnitPrice, cellRight),
			text.NewCol(2, it.Subtotal, cellRight),
		))
	}

	rows = append(rows, row.New(9).Add(
		text.NewCol(10, "Total due", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, inv.Total, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	).WithStyle(&props.Cell{BackgroundColor: &totalBg}))

	return rows
}
