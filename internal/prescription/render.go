package prescription

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

type Data struct {
	AppointmentID uint
	DoctorName    string
	License       string
	PatientName   string
	PatientAge    *int
	Body          string
	IssuedAt      time.Time
}

// Render monta o PDF da receita: cabeçalho da clínica, bloco do
// médico, bloco do paciente, divisor, texto livre, data, linha de
// assinatura e QR code com o id do agendamento.
func Render(d Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(6, 95, 70)
	pdf.CellFormat(0, 10, tr("G.M.P - Receita Médica"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Médico: %s", d.DoctorName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("CRM: %s", d.License)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Paciente: %s", d.PatientName)), "", 1, "L", false, 0, "")
	if d.PatientAge != nil {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Idade: %d", *d.PatientAge)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetDrawColor(128, 128, 128)
	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	pdf.Line(x, y, pageW-15, y)
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, tr("Descrição da Receita:"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(d.Body), "", "L", false)
	pdf.Ln(8)

	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Data: %s", d.IssuedAt.Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.CellFormat(0, 6, tr("Assinatura: ________________________________"), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	png, err := qrcode.Encode(fmt.Sprintf("%d", d.AppointmentID), qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("appointment-qr", opt, bytes.NewReader(png))
	pdf.ImageOptions("appointment-qr", pdf.GetX(), pdf.GetY(), 30, 30, false, opt, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
