package infra

// pdf.go — Printable boleta ticket using go-pdf/fpdf.
// Generates A7-size thermal receipt-style tickets with:
//   - Shop header and boleta number
//   - Item table (product name, quantity, subtotal)
//   - Neto / IVA breakdown and bold total
//   - Payment method, amount tendered and change (cash only)
//
// The output file is saved to storagePath/boleta_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"boletapos/internal/model"

	"github.com/go-pdf/fpdf"
)

func pesos(monto int64) string {
	return "$" + strconv.FormatInt(monto, 10)
}

// GenerateBoletaPDF renders the ticket for a committed boleta.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateBoletaPDF(boleta *model.Boleta, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("boleta_%s.pdf", boleta.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Adoptapet", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Boleta de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("N° %s", boleta.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, boleta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if boleta.Vendedor != nil {
		pdf.CellFormat(contentW, 4, "Vendedor: "+boleta.Vendedor.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, d := range boleta.Detalles {
		nombre := "Producto eliminado"
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		// Truncate on runes; byte slicing would split ñ/á mid-character.
		if r := []rune(nombre); len(r) > 22 {
			nombre = string(r[:21]) + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, pesos(d.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Neto:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, pesos(boleta.Neto), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 4, "IVA (19%):", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, pesos(boleta.IVA), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, pesos(boleta.Total), "", 1, "R", false, 0, "")

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Pago ("+boleta.MedioPago+"):", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, pesos(boleta.Total), "", 1, "R", false, 0, "")
	if boleta.MedioPago == model.MedioPagoEfectivo {
		pdf.CellFormat(col1+col2, 4, "Entregado:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, pesos(boleta.MontoEntregado), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2, 4, "Vuelto:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, pesos(boleta.Vuelto), "", 1, "R", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
