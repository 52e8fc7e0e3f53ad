package payslip

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/config"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/user"
)

// TemplateLookup reports whether a message template is registered.
type TemplateLookup interface {
	HasTemplate(name string) bool
}

// ResolveRegistry looks up the mail template and the eight ad-hoc input types
// once. Any missing identity is a startup error.
func ResolveRegistry(ctx context.Context, inputTypeRepo payslip.InputTypeRepository, templates TemplateLookup, cfg config.PayslipConfig) (payslip.Registry, error) {
	if !templates.HasTemplate(cfg.MailTemplate) {
		return payslip.Registry{}, fmt.Errorf("%w: %s", payslip.ErrMailTemplateNotFound, cfg.MailTemplate)
	}

	codes := make([]string, 0, len(payslip.InputCodes))
	for _, c := range payslip.InputCodes {
		codes = append(codes, c.String())
	}

	types, err := inputTypeRepo.GetByCodes(ctx, codes)
	if err != nil {
		return payslip.Registry{}, fmt.Errorf("failed to load payslip input types: %w", err)
	}

	return payslip.NewRegistry(cfg.MailTemplate, user.Group(cfg.SendPayslipGroup), types)
}
