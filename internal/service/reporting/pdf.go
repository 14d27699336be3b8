package reporting

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

const (
	pageWidth  = 180.0
	rowHeight  = 8.0
	disclaimer = "DISCLAIMER: This system provides clinical reference and decision support only. " +
		"Final diagnosis and treatment decisions must be made by a registered veterinarian."
	gvaDisclaimer = "This report is generated using standardized GVA calculation methodology. " +
		"Values are estimates based on provided inputs and standard parameters."
)

type rgb struct{ r, g, b int }

var (
	green     = rgb{21, 128, 61}
	paleGreen = rgb{240, 253, 244}
	blue      = rgb{30, 64, 175}
	teal      = rgb{5, 150, 105}
	red       = rgb{220, 38, 38}
	paleRed   = rgb{254, 242, 242}
	grey      = rgb{128, 128, 128}
	black     = rgb{0, 0, 0}
	white     = rgb{255, 255, 255}
)

// document wraps fpdf with the handful of layout helpers the reports share.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(title string) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 12, 15)
	pdf.SetTitle(title, true)
	pdf.SetCreator("Smart Livestock Care", true)
	pdf.AddPage()
	return &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (d *document) color(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *document) fill(c rgb)  { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *document) draw(c rgb)  { d.pdf.SetDrawColor(c.r, c.g, c.b) }

func (d *document) heading(text string, size float64, c rgb) {
	d.pdf.SetFont("Helvetica", "B", size)
	d.color(c)
	d.pdf.CellFormat(pageWidth, size*0.6, d.tr(text), "", 1, "C", false, 0, "")
	d.color(black)
}

func (d *document) section(text string) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(pageWidth, rowHeight, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *document) line(label, value string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	w := d.pdf.GetStringWidth(label) + 2
	d.pdf.CellFormat(w, 6, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(pageWidth-w, 6, d.tr(value), "", "L", false)
}

func (d *document) bullets(items []string, limit int) {
	d.pdf.SetFont("Helvetica", "", 10)
	for i, item := range items {
		if i == limit {
			break
		}
		d.pdf.CellFormat(6, 6, "", "", 0, "L", false, 0, "")
		d.pdf.MultiCell(pageWidth-6, 6, d.tr("- "+item), "", "L", false)
	}
}

// table draws rows with the given column widths. The first row is styled as a
// header when header is set. boldCols marks label columns.
func (d *document) table(widths []float64, rows [][]string, header *rgb, boldCols map[int]bool, aligns []string) {
	for i, row := range rows {
		isHeader := i == 0 && header != nil
		for j, cell := range row {
			style := ""
			if isHeader || boldCols[j] {
				style = "B"
			}
			d.pdf.SetFont("Helvetica", style, 10)
			if isHeader {
				d.fill(*header)
				d.color(white)
			}
			align := "L"
			if j < len(aligns) && !isHeader {
				align = aligns[j]
			}
			d.pdf.CellFormat(widths[j], rowHeight, d.tr(cell), "1", 0, align, isHeader, 0, "")
			d.color(black)
		}
		d.pdf.Ln(-1)
	}
}

func (d *document) footnote(text string) {
	d.pdf.Ln(10)
	d.pdf.SetFont("Helvetica", "I", 8)
	d.color(grey)
	d.pdf.MultiCell(pageWidth, 4, d.tr(text), "", "C", false)
	d.color(black)
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// DiagnosticPDF renders a diagnostic test report. animal may be nil.
func DiagnosticPDF(diag models.Diagnostic, animal *models.Animal) ([]byte, error) {
	d := newDocument("Diagnostic Test Report")

	d.heading("SMART LIVESTOCK CARE", 18, green)
	d.heading("Diagnostic Test Report", 13, black)
	d.pdf.Ln(6)

	if animal != nil {
		d.fill(paleGreen)
		d.draw(green)
		rows := [][]string{
			{"Tag ID:", orNA(animal.TagID), "Species:", orNA(string(animal.Species))},
			{"Breed:", orNA(animal.Breed), "Age:", fmt.Sprintf("%d months", animal.AgeMonths)},
		}
		for _, row := range rows {
			for j, cell := range row {
				style := ""
				if j%2 == 0 {
					style = "B"
				}
				d.pdf.SetFont("Helvetica", style, 10)
				d.pdf.CellFormat(pageWidth/4, rowHeight, d.tr(cell), "1", 0, "L", true, 0, "")
			}
			d.pdf.Ln(-1)
		}
		d.draw(black)
		d.pdf.Ln(4)
	}

	value := diag.ValueText
	if diag.Value != nil {
		value = strconv.FormatFloat(*diag.Value, 'f', -1, 64)
	}
	d.section("Test Details")
	d.table([]float64{50, pageWidth - 50}, [][]string{
		{"Test Category:", orNA(string(diag.TestCategory))},
		{"Test Type:", orNA(diag.TestType)},
		{"Value:", strings.TrimSpace(orNA(value) + " " + diag.Unit)},
		{"Date:", diag.Date.Format("2006-01-02")},
	}, nil, map[int]bool{0: true}, nil)

	interp := diag.Interpretation
	d.section("Interpretation")
	status := strings.ToUpper(string(interp.Status))
	if status == "" {
		status = "NORMAL"
	}
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(16, 6, "Status:", "", 0, "L", false, 0, "")
	switch status {
	case "NORMAL", "NEGATIVE":
		d.color(green)
	case "HIGH", "POSITIVE":
		d.color(red)
	default:
		d.color(blue)
	}
	d.pdf.CellFormat(pageWidth-16, 6, status, "", 1, "L", false, 0, "")
	d.color(black)

	if interp.NormalRange != "" {
		d.line("Normal Range:", interp.NormalRange)
	}
	if len(interp.PossibleConditions) > 0 {
		d.line("Possible Conditions:", "")
		d.bullets(interp.PossibleConditions, 5)
	}
	if len(interp.SuggestedActions) > 0 {
		d.pdf.Ln(3)
		d.line("Suggested Actions:", "")
		d.bullets(interp.SuggestedActions, 5)
	}

	if safety := interp.SafetyAlert; safety != nil {
		d.pdf.Ln(6)
		d.fill(paleRed)
		d.draw(red)
		d.pdf.SetFont("Helvetica", "B", 12)
		d.color(red)
		d.pdf.CellFormat(pageWidth, rowHeight, d.tr("SAFETY ALERT: "+orNA(safety.Disease)), "1", 1, "L", true, 0, "")
		d.color(black)
		ppe := safety.PPERequirements
		if len(ppe) > 3 {
			ppe = ppe[:3]
		}
		d.line("PPE Requirements:", strings.Join(ppe, ", "))
		d.line("Public Health:", safety.PublicHealthAdvice)
		d.draw(black)
	}

	d.footnote(disclaimer)
	return d.bytes()
}

func currency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "Rs. " + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// GVAPDF renders a village GVA economic report.
func GVAPDF(report models.GVAReport) ([]byte, error) {
	d := newDocument("Village GVA Economic Report")
	in, res := report.Inputs, report.Results

	d.heading("SMART LIVESTOCK CARE (SLC)", 16, black)
	d.heading("Village GVA Economic Report", 12, black)
	d.pdf.Ln(6)

	d.table([]float64{40, 80}, [][]string{
		{"Report Date:", report.CreatedAt.Format("2006-01-02")},
		{"Village:", orNA(in.VillageName)},
		{"Mandal:", orNA(in.Mandal)},
		{"District:", orNA(in.District)},
		{"Vet Name:", orNA(report.VetName)},
		{"Institution:", orNA(report.Institution)},
	}, nil, map[int]bool{0: true}, nil)

	d.section("LIVESTOCK CENSUS")
	d.table([]float64{50, 40}, [][]string{
		{"Species", "Count"},
		{"Cattle", strconv.Itoa(in.CattleCount)},
		{"Buffalo", strconv.Itoa(in.BuffaloCount)},
		{"Sheep", strconv.Itoa(in.SheepCount)},
		{"Goat", strconv.Itoa(in.GoatCount)},
		{"Poultry", strconv.Itoa(in.PoultryCount)},
	}, &blue, nil, []string{"L", "C"})

	d.section("GVA CALCULATION RESULTS")
	d.table([]float64{48, 44, 44, 44}, [][]string{
		{"Category", "GSDP", "Input Cost", "GVA"},
		{"Milk", currency(res.MilkGSDP), currency(res.MilkInputCost), currency(res.MilkGVA)},
		{"Sheep & Goat Meat", currency(res.SheepGoatGSDP), currency(res.SheepGoatInputCost), currency(res.SheepGoatGVA)},
		{"Buffalo Meat", currency(res.BuffaloGSDP), currency(res.BuffaloInputCost), currency(res.BuffaloMeatGVA)},
		{"Poultry Meat", currency(res.PoultryGSDP), currency(res.PoultryInputCost), currency(res.PoultryMeatGVA)},
		{"Eggs", currency(res.EggGSDP), currency(res.EggInputCost), currency(res.EggGVA)},
	}, &teal, nil, []string{"L", "R", "R", "R"})

	d.pdf.Ln(4)
	d.fill(red)
	d.color(white)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(120, 10, "TOTAL VILLAGE GVA", "1", 0, "L", true, 0, "")
	d.pdf.CellFormat(60, 10, currency(res.TotalVillageGVA), "1", 1, "R", true, 0, "")
	d.color(black)

	d.footnote(gvaDisclaimer)
	return d.bytes()
}
