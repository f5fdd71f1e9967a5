package adapter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/karacoop/credit-service/internal/domain/model"
	"github.com/karacoop/credit-service/pkg/money"
)

// PDFReceiptGenerator renders payment receipts as A4 PDFs.
// It implements port.ReceiptGenerator.
type PDFReceiptGenerator struct {
	cooperativeName string
}

// NewPDFReceiptGenerator creates a generator stamping receipts with the
// cooperative's name.
func NewPDFReceiptGenerator(cooperativeName string) *PDFReceiptGenerator {
	return &PDFReceiptGenerator{cooperativeName: cooperativeName}
}

// Generate renders a receipt for a collected payment.
func (g *PDFReceiptGenerator) Generate(contract *model.CreditContract, payment *model.CreditPayment, memberName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, g.cooperativeName)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, "Recu de remboursement de credit")
	pdf.Ln(14)

	rows := [][2]string{
		{"Reference", payment.Reference()},
		{"Membre", memberName},
		{"Contrat", contract.ID()},
		{"Type de credit", contract.CreditType().String()},
		{"Montant verse", money.Format(payment.Amount())},
		{"Mode de paiement", string(payment.Mode())},
		{"Date de paiement", payment.PaidAt().Format("02/01/2006 15:04")},
		{"Total verse", money.Format(contract.AmountPaid())},
		{"Reste a payer", money.Format(contract.AmountRemaining())},
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 6, fmt.Sprintf("Genere le %s", time.Now().UTC().Format("02/01/2006 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
