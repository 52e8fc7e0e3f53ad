package payslip

import "context"

type PayslipService interface {
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	Finalize(ctx context.Context, id string) (PayslipResponse, error)
	FinalizeBatch(ctx context.Context, req FinalizePayslipsRequest) (FinalizeBatchResponse, error)
	SendPayslip(ctx context.Context, id string) error
	UpdatePeriod(ctx context.Context, req UpdatePeriodRequest) (PayslipResponse, error)
	PreviewOtherInputs(ctx context.Context, id string) ([]AggregateResponse, error)
	PaymentDays(ctx context.Context, req PaymentDaysRequest) (PaymentDaysResponse, error)
}
