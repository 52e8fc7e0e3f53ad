package payslip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payslip-backend-go/internal/config"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/accounting"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/adhoc"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/email"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type PayslipServiceImpl struct {
	tx           database.Transactor
	payslipRepo  payslip.PayslipRepository
	employeeRepo employee.EmployeeRepository
	privileges   user.PrivilegeChecker
	registry     payslip.Registry

	duplicates *DuplicateChecker
	notifier   *Notifier
	finalizer  *BaseFinalizer
	ledger     *LedgerEnricher
	aggregator *AdHocAggregator
	reconciler *Reconciler
}

func NewPayslipService(
	tx database.Transactor,
	payslipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	entryRepo adhoc.EntryRepository,
	moveRepo accounting.MoveRepository,
	privileges user.PrivilegeChecker,
	mailer email.EmailService,
	registry payslip.Registry,
	cfg config.PayslipConfig,
) payslip.PayslipService {
	aggregator := NewAdHocAggregator(entryRepo)
	return &PayslipServiceImpl{
		tx:           tx,
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		privileges:   privileges,
		registry:     registry,
		duplicates:   NewDuplicateChecker(payslipRepo),
		notifier:     NewNotifier(payslipRepo, mailer, registry, cfg.AttachPDF),
		finalizer:    NewBaseFinalizer(payslipRepo, moveRepo, entryRepo),
		ledger:       NewLedgerEnricher(moveRepo),
		aggregator:   aggregator,
		reconciler:   NewReconciler(payslipRepo, aggregator, registry),
	}
}

// Helper to get the acting user_id from JWT context
func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", user.ErrUserIDMissing
	}
	return userID, nil
}

// ========== READ ==========

func (s *PayslipServiceImpl) GetPayslip(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	p, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	resp := mapPayslipToResponse(p, emp)
	if !p.OpenEnded() {
		days, err := FirstMonthDays(p.DateTo, emp.DateOfJoin)
		if err != nil {
			return payslip.PayslipResponse{}, err
		}
		resp.FirstMonthDays = &days
	}
	return resp, nil
}

func (s *PayslipServiceImpl) PreviewOtherInputs(ctx context.Context, id string) ([]payslip.AggregateResponse, error) {
	p, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OpenEnded() {
		return []payslip.AggregateResponse{}, nil
	}

	aggregates, err := s.aggregator.Collect(ctx, p.EmployeeID, p.DateFrom, p.DateTo)
	if err != nil {
		return nil, err
	}

	result := make([]payslip.AggregateResponse, 0, len(aggregates))
	for _, a := range aggregates {
		result = append(result, payslip.AggregateResponse{Code: a.Code.String(), Amount: a.Amount})
	}
	return result, nil
}

func (s *PayslipServiceImpl) PaymentDays(ctx context.Context, req payslip.PaymentDaysRequest) (payslip.PaymentDaysResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PaymentDaysResponse{}, err
	}

	from, _ := time.Parse("2006-01-02", req.DateFrom)
	to, _ := time.Parse("2006-01-02", req.DateTo)

	return payslip.PaymentDaysResponse{
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		PaymentDays: PaymentDays(from, to),
	}, nil
}

// ========== FINALIZATION ==========

// Finalize confirms a payslip in one transaction. The ad-hoc lines are
// regenerated first, then come the duplicate check, the mail when the acting
// user may send payslips, base finalization and ledger enrichment of the
// generated move.
func (s *PayslipServiceImpl) Finalize(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	var (
		result payslip.Payslip
		emp    employee.Employee
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.payslipRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsEditable() {
			return payslip.ErrPayslipNotEditable
		}

		emp, err = s.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return err
		}

		// entries recorded since the last reconciliation reach the lines here
		var entryIDs []string
		if p, entryIDs, err = s.reconciler.Refresh(ctx, p); err != nil {
			return err
		}

		if err := s.duplicates.CheckDuplicates(ctx, p, emp); err != nil {
			return err
		}

		canSend, err := s.privileges.HasGroup(ctx, userID, s.registry.SendPayslipGroup)
		if err != nil {
			return fmt.Errorf("failed to check send privilege: %w", err)
		}
		if canSend {
			if p, err = s.notifier.SendNotification(ctx, p, emp); err != nil {
				return err
			}
		}

		if p, err = s.finalizer.Finalize(ctx, p, entryIDs); err != nil {
			return err
		}

		if p.MoveID != nil {
			contract, err := s.contractOf(ctx, p)
			if err != nil {
				return err
			}
			if err := s.ledger.Enrich(ctx, *p.MoveID, emp, contract); err != nil {
				return err
			}
		}

		result = p
		return nil
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slog.Info("Payslip finalized", "payslip_id", result.ID, "employee_id", result.EmployeeID, "is_send", result.IsSend)
	return mapPayslipToResponse(result, emp), nil
}

// FinalizeBatch finalizes each payslip in its own transaction and stops at the
// first failure. Payslips finalized before the failure stay finalized.
func (s *PayslipServiceImpl) FinalizeBatch(ctx context.Context, req payslip.FinalizePayslipsRequest) (payslip.FinalizeBatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.FinalizeBatchResponse{}, err
	}

	resp := payslip.FinalizeBatchResponse{
		BatchID:   uuid.NewString(),
		Finalized: make([]payslip.PayslipResponse, 0, len(req.PayslipIDs)),
	}
	for _, id := range req.PayslipIDs {
		p, err := s.Finalize(ctx, id)
		if err != nil {
			slog.Error("Payslip batch interrupted", "batch_id", resp.BatchID, "payslip_id", id, "finalized", len(resp.Finalized), "error", err)
			return resp, fmt.Errorf("payslip %s: %w", id, err)
		}
		resp.Finalized = append(resp.Finalized, p)
	}

	slog.Info("Payslip batch finalized", "batch_id", resp.BatchID, "count", len(resp.Finalized))
	return resp, nil
}

// SendPayslip mails an already existing payslip again. The acting user must
// hold the send privilege.
func (s *PayslipServiceImpl) SendPayslip(ctx context.Context, id string) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		canSend, err := s.privileges.HasGroup(ctx, userID, s.registry.SendPayslipGroup)
		if err != nil {
			return fmt.Errorf("failed to check send privilege: %w", err)
		}
		if !canSend {
			return payslip.ErrSendPayslipNotPermitted
		}

		p, err := s.payslipRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return err
		}

		_, err = s.notifier.SendNotification(ctx, p, emp)
		return err
	})
}

// ========== PERIOD CHANGE ==========

func (s *PayslipServiceImpl) UpdatePeriod(ctx context.Context, req payslip.UpdatePeriodRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	var (
		result payslip.Payslip
		emp    employee.Employee
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.payslipRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !current.IsEditable() {
			return payslip.ErrPayslipNotEditable
		}

		p := req.Apply(current)
		if !p.OpenEnded() && p.DateTo.Before(p.DateFrom) {
			return payslip.ErrInvalidPeriod
		}

		emp, err = s.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return err
		}
		if _, err := s.contractOf(ctx, p); err != nil {
			return err
		}

		if err := s.payslipRepo.UpdatePeriod(ctx, p); err != nil {
			return err
		}

		if result, err = s.reconciler.OnEmployeeOrPeriodChange(ctx, p); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slog.Info("Payslip period updated", "payslip_id", result.ID, "employee_id", result.EmployeeID, "input_lines", len(result.InputLines))
	return mapPayslipToResponse(result, emp), nil
}

// contractOf loads the payslip's contract. A contract of another employee is
// reported as not found.
func (s *PayslipServiceImpl) contractOf(ctx context.Context, p payslip.Payslip) (*employee.Contract, error) {
	if p.ContractID == nil {
		return nil, nil
	}
	c, err := s.employeeRepo.GetContractByID(ctx, *p.ContractID)
	if err != nil {
		return nil, err
	}
	if c.EmployeeID != p.EmployeeID {
		return nil, errors.Join(employee.ErrContractNotFound, fmt.Errorf("contract %s does not belong to employee %s", c.ID, p.EmployeeID))
	}
	return &c, nil
}

// Helper function to map Payslip to PayslipResponse
func mapPayslipToResponse(p payslip.Payslip, emp employee.Employee) payslip.PayslipResponse {
	resp := payslip.PayslipResponse{
		ID:           p.ID,
		Number:       p.Number,
		Name:         p.Name,
		EmployeeID:   p.EmployeeID,
		EmployeeName: emp.FullName(),
		ContractID:   p.ContractID,
		StructID:     p.StructID,
		DateFrom:     p.DateFrom.Format("2006-01-02"),
		State:        string(p.State),
		CreditNote:   p.CreditNote,
		MoveID:       p.MoveID,
		IsSend:       p.IsSend,
		InputLines:   make([]payslip.InputLineResponse, 0, len(p.InputLines)),
	}
	if !p.OpenEnded() {
		dateTo := p.DateTo.Format("2006-01-02")
		resp.DateTo = &dateTo
		resp.PaymentDays = PaymentDays(p.DateFrom, p.DateTo)
	}
	for _, l := range p.InputLines {
		resp.InputLines = append(resp.InputLines, payslip.InputLineResponse{
			ID:          l.ID,
			InputTypeID: l.InputTypeID,
			Code:        l.Code,
			Name:        l.Name,
			Amount:      l.Amount,
		})
	}
	return resp
}
