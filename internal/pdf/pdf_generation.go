package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders deal documents. Kept as an interface so the notifier can
// be tested without touching the filesystem.
type Generator interface {
	GenerateWonSummary(data WonSummaryData) (string, error)
}

// DocumentGenerator writes PDFs under RootDir using a core (built-in) font.
type DocumentGenerator struct {
	RootDir string
}

// WonSummaryData feeds the one-page summary attached to deal-won emails.
type WonSummaryData struct {
	OpportunityID   int64
	OpportunityName string
	CompanyName     string
	CustomerID      int64
	ExpectedValue   *float64
	ClosedAt        time.Time
	Filename        string // basename only; generated when empty
}

func NewDocumentGenerator(rootDir string) *DocumentGenerator {
	return &DocumentGenerator{RootDir: filepath.Clean(rootDir)}
}

// GenerateWonSummary renders the summary and returns the absolute file path.
func (g *DocumentGenerator) GenerateWonSummary(data WonSummaryData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("deal_won_%d.pdf", data.OpportunityID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Deal won #%d", data.OpportunityID), false)
	pdf.SetAuthor("freshsales", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "DEAL WON", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("Opportunity #%d closed on %s",
		data.OpportunityID,
		data.ClosedAt.Format("02.01.2006"),
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Deal")
	g.kvLine(pdf, "Opportunity", data.OpportunityName)
	g.kvLine(pdf, "Customer", data.CompanyName)
	g.kvLine(pdf, "Customer no.", fmt.Sprintf("%d", data.CustomerID))
	if data.ExpectedValue != nil {
		g.kvLine(pdf, "Expected value", fmt.Sprintf("%.2f EUR", *data.ExpectedValue))
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Next steps")
	pdf.SetFont("Helvetica", "", 11)
	steps := []string{
		"1. The customer record was created with status \"prospect\".",
		"2. Activation follows the first fulfilled order.",
		"3. The source lead is retained for audit and marked as converted.",
	}
	for _, s := range steps {
		pdf.MultiCell(0, 6, s, "", "L", false)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *DocumentGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *DocumentGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *DocumentGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename)
	return filepath.Join(g.RootDir, filename), nil
}
