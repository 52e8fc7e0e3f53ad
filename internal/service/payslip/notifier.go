package payslip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/pdf"
)

// payslipMailData is the data passed to the payslip mail template.
type payslipMailData struct {
	EmployeeName string
	Number       string
	PeriodFrom   string
	PeriodTo     string
	PaymentDays  int
	CreditNote   bool
	Lines        []payslipMailLine
}

type payslipMailLine struct {
	Code   string
	Name   string
	Amount string
}

// Notifier mails a payslip to the employee's work address.
type Notifier struct {
	payslipRepo payslip.PayslipRepository
	mailer      email.EmailService
	registry    payslip.Registry
	attachPDF   bool
}

func NewNotifier(payslipRepo payslip.PayslipRepository, mailer email.EmailService, registry payslip.Registry, attachPDF bool) *Notifier {
	return &Notifier{
		payslipRepo: payslipRepo,
		mailer:      mailer,
		registry:    registry,
		attachPDF:   attachPDF,
	}
}

// SendNotification sends p to emp and marks it as sent. Nothing is sent and
// the flag stays unset when emp has no work email. When mail delivery is not
// configured the flag also stays unset, without an error.
func (n *Notifier) SendNotification(ctx context.Context, p payslip.Payslip, emp employee.Employee) (payslip.Payslip, error) {
	if !emp.HasWorkEmail() {
		return p, payslip.NewMissingEmailError(emp.FullName())
	}

	data := newPayslipMailData(p, emp)

	var attachments []email.Attachment
	if n.attachPDF {
		doc, err := pdf.RenderPayslip(newPayslipDocument(data))
		if err != nil {
			return p, fmt.Errorf("failed to render payslip pdf: %w", err)
		}
		attachments = append(attachments, email.Attachment{
			Filename:    attachmentName(p),
			ContentType: "application/pdf",
			Data:        doc,
		})
	}

	to := strings.TrimSpace(*emp.WorkEmail)
	if err := n.mailer.SendTemplate(ctx, n.registry.MailTemplate, to, data, attachments...); err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			slog.Warn("Payslip not sent, mail delivery is not configured", "payslip_id", p.ID, "employee_id", emp.ID)
			return p, nil
		}
		return p, err
	}

	if err := n.payslipRepo.MarkNotificationSent(ctx, p.ID); err != nil {
		return p, fmt.Errorf("failed to mark payslip as sent: %w", err)
	}
	p.IsSend = true

	slog.Info("Payslip sent", "payslip_id", p.ID, "employee_id", emp.ID)
	return p, nil
}

func newPayslipMailData(p payslip.Payslip, emp employee.Employee) payslipMailData {
	data := payslipMailData{
		EmployeeName: emp.FullName(),
		Number:       p.Number,
		PeriodFrom:   p.DateFrom.Format("2006-01-02"),
		CreditNote:   p.CreditNote,
	}
	if !p.OpenEnded() {
		data.PeriodTo = p.DateTo.Format("2006-01-02")
		data.PaymentDays = PaymentDays(p.DateFrom, p.DateTo)
	}
	for _, l := range p.InputLines {
		name := l.Name
		if name == "" {
			name = l.Code
		}
		data.Lines = append(data.Lines, payslipMailLine{Code: l.Code, Name: name, Amount: l.Amount.StringFixed(2)})
	}
	return data
}

func newPayslipDocument(data payslipMailData) pdf.PayslipDocument {
	doc := pdf.PayslipDocument{
		Number:       data.Number,
		EmployeeName: data.EmployeeName,
		PeriodFrom:   data.PeriodFrom,
		PeriodTo:     data.PeriodTo,
		PaymentDays:  data.PaymentDays,
		CreditNote:   data.CreditNote,
	}
	for _, l := range data.Lines {
		doc.Lines = append(doc.Lines, pdf.PayslipLine{Code: l.Code, Name: l.Name, Amount: l.Amount})
	}
	return doc
}

func attachmentName(p payslip.Payslip) string {
	name := p.Number
	if name == "" {
		name = p.ID
	}
	return strings.NewReplacer("/", "-", " ", "_").Replace(name) + ".pdf"
}
