package payslip

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/adhoc"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineSummary struct {
	Code   string
	Amount string
}

func summarize(lines []payslip.InputLine) []lineSummary {
	result := make([]lineSummary, 0, len(lines))
	for _, l := range lines {
		result = append(result, lineSummary{Code: l.Code, Amount: l.Amount.String()})
	}
	return result
}

func newTestReconciler(f *fixture) *Reconciler {
	return NewReconciler(fakePayslipRepo{f.store}, NewAdHocAggregator(fakeEntryRepo{f.store}), f.registry)
}

func TestReconciler_RegeneratesAdHocLines(t *testing.T) {
	f := newFixture(t)
	stale := f.inputType(payslip.OtherDeductionDays)
	p := addPayslip(f.store, payslip.Payslip{
		EmployeeID: "emp-1",
		ContractID: strPtr("contract-1"),
		DateFrom:   date("2024-01-01"),
		DateTo:     date("2024-01-31"),
		InputLines: []payslip.InputLine{
			{ID: "l1", InputTypeID: "type-commission", Code: "COMMISSION", Amount: dec(300)},
			{ID: "l2", InputTypeID: stale.ID, Code: stale.Code, Amount: dec(2)},
		},
	})
	addEntry(f.store, adhoc.Entry{EmployeeID: "emp-1", Date: date("2024-01-05"), OperationType: adhoc.OperationAllowance, CalcType: adhoc.CalcAmount, Amount: dec(100)})
	addEntry(f.store, adhoc.Entry{EmployeeID: "emp-1", Date: date("2024-01-06"), OperationType: adhoc.OperationAllowance, CalcType: adhoc.CalcAmount, Amount: dec(50)})

	got, err := newTestReconciler(f).OnEmployeeOrPeriodChange(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []lineSummary{
		{Code: "COMMISSION", Amount: "300"},
		{Code: payslip.OtherAllowanceAmount.String(), Amount: "150"},
	}, summarize(got.InputLines))
	assert.Equal(t, "l1", got.InputLines[0].ID)
	assert.Equal(t, f.inputType(payslip.OtherAllowanceAmount).ID, got.InputLines[1].InputTypeID)
	assert.Equal(t, got.InputLines, f.store.payslips[p.ID].InputLines)
}

func TestReconciler_Idempotent(t *testing.T) {
	f := newFixture(t)
	p := addPayslip(f.store, payslip.Payslip{
		EmployeeID: "emp-1",
		ContractID: strPtr("contract-1"),
		DateFrom:   date("2024-01-01"),
		DateTo:     date("2024-01-31"),
		InputLines: []payslip.InputLine{{ID: "l1", InputTypeID: "type-commission", Code: "COMMISSION", Amount: dec(300)}},
	})
	addEntry(f.store, adhoc.Entry{EmployeeID: "emp-1", Date: date("2024-01-05"), OperationType: adhoc.OperationDeduction, CalcType: adhoc.CalcHours, NoOfHours: decimal.RequireFromString("7.5")})

	r := newTestReconciler(f)
	first, err := r.OnEmployeeOrPeriodChange(context.Background(), p)
	require.NoError(t, err)
	second, err := r.OnEmployeeOrPeriodChange(context.Background(), first)
	require.NoError(t, err)

	assert.Equal(t, summarize(first.InputLines), summarize(second.InputLines))
	assert.Len(t, second.InputLines, 2)
}

func TestReconciler_NoContractRemovesAdHocLines(t *testing.T) {
	f := newFixture(t)
	stale := f.inputType(payslip.OtherAllowanceHours)
	p := addPayslip(f.store, payslip.Payslip{
		EmployeeID: "emp-1",
		DateFrom:   date("2024-01-01"),
		DateTo:     date("2024-01-31"),
		InputLines: []payslip.InputLine{
			{ID: "l1", InputTypeID: "type-commission", Code: "COMMISSION", Amount: dec(300)},
			{ID: "l2", InputTypeID: stale.ID, Code: stale.Code, Amount: dec(4)},
		},
	})

	got, err := newTestReconciler(f).OnEmployeeOrPeriodChange(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []lineSummary{{Code: "COMMISSION", Amount: "300"}}, summarize(got.InputLines))
}

func TestReconciler_KeepsLinesWithoutAggregates(t *testing.T) {
	f := newFixture(t)
	kept := f.inputType(payslip.OtherAllowanceHours)
	p := addPayslip(f.store, payslip.Payslip{
		EmployeeID: "emp-1",
		ContractID: strPtr("contract-1"),
		DateFrom:   date("2024-01-01"),
		DateTo:     date("2024-01-31"),
		InputLines: []payslip.InputLine{{ID: "l1", InputTypeID: kept.ID, Code: kept.Code, Amount: dec(4)}},
	})

	got, err := newTestReconciler(f).OnEmployeeOrPeriodChange(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, p.InputLines, got.InputLines)
}

func TestReconciler_RejectsFinalizedPayslip(t *testing.T) {
	f := newFixture(t)
	p := addPayslip(f.store, payslip.Payslip{EmployeeID: "emp-1", State: payslip.StateDone, DateFrom: date("2024-01-01"), DateTo: date("2024-01-31")})

	_, err := newTestReconciler(f).OnEmployeeOrPeriodChange(context.Background(), p)
	assert.ErrorIs(t, err, payslip.ErrPayslipNotEditable)
}
