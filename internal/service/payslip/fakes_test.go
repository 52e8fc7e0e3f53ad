package payslip

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payslip-backend-go/internal/config"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/accounting"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/adhoc"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payslip-backend-go/internal/pkg/email"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory backing store shared by the fake repositories.
type memStore struct {
	mu sync.Mutex

	payslips   map[string]payslip.Payslip
	employees  map[string]employee.Employee
	contracts  map[string]employee.Contract
	entries    []adhoc.Entry
	moves      map[string]accounting.Move
	groups     map[string][]user.Group
	inputTypes []payslip.InputType

	calls  []string
	nextID int

	createMoveErr error
}

func newMemStore() *memStore {
	s := &memStore{
		payslips:  map[string]payslip.Payslip{},
		employees: map[string]employee.Employee{},
		contracts: map[string]employee.Contract{},
		moves:     map[string]accounting.Move{},
		groups:    map[string][]user.Group{},
	}
	for i, code := range payslip.InputCodes {
		s.inputTypes = append(s.inputTypes, payslip.InputType{
			ID:   fmt.Sprintf("type-%d", i+1),
			Code: code.String(),
			Name: code.String(),
		})
	}
	return s
}

func (s *memStore) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) record(call string) {
	s.calls = append(s.calls, call)
}

func (s *memStore) snapshot() *memStore {
	c := &memStore{
		payslips:   make(map[string]payslip.Payslip, len(s.payslips)),
		employees:  s.employees,
		contracts:  s.contracts,
		entries:    append([]adhoc.Entry(nil), s.entries...),
		moves:      make(map[string]accounting.Move, len(s.moves)),
		groups:     s.groups,
		inputTypes: s.inputTypes,
		nextID:     s.nextID,
	}
	for id, p := range s.payslips {
		p.InputLines = append([]payslip.InputLine(nil), p.InputLines...)
		c.payslips[id] = p
	}
	for id, m := range s.moves {
		m.Lines = append([]accounting.MoveLine(nil), m.Lines...)
		c.moves[id] = m
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.payslips = from.payslips
	s.entries = from.entries
	s.moves = from.moves
	s.nextID = from.nextID
}

// ========== TRANSACTOR ==========

type fakeTransactor struct {
	store *memStore
}

func (t fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	saved := t.store.snapshot()
	t.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.store.mu.Lock()
		t.store.restore(saved)
		t.store.mu.Unlock()
		return err
	}
	return nil
}

// ========== PAYSLIPS ==========

type fakePayslipRepo struct {
	store *memStore
}

func (r fakePayslipRepo) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	p, ok := r.store.payslips[id]
	if !ok {
		return payslip.Payslip{}, payslip.ErrPayslipNotFound
	}
	p.InputLines = append([]payslip.InputLine(nil), p.InputLines...)
	return p, nil
}

func (r fakePayslipRepo) CountOverlappingDone(ctx context.Context, p payslip.Payslip) (int, error) {
	r.store.record("count_overlapping")

	candidateTo := p.DateTo
	if p.OpenEnded() {
		candidateTo = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	n := 0
	for _, other := range r.store.payslips {
		if other.ID == p.ID || other.EmployeeID != p.EmployeeID || other.State != payslip.StateDone {
			continue
		}
		var to *time.Time
		if !other.OpenEnded() {
			to = &other.DateTo
		}
		if payslip.Overlaps(p.DateFrom, candidateTo, other.DateFrom, to) {
			n++
		}
	}
	return n, nil
}

func (r fakePayslipRepo) UpdatePeriod(ctx context.Context, p payslip.Payslip) error {
	current, ok := r.store.payslips[p.ID]
	if !ok {
		return payslip.ErrPayslipNotFound
	}
	current.EmployeeID = p.EmployeeID
	current.ContractID = p.ContractID
	current.StructID = p.StructID
	current.DateFrom = p.DateFrom
	current.DateTo = p.DateTo
	r.store.payslips[p.ID] = current
	return nil
}

func (r fakePayslipRepo) MarkDone(ctx context.Context, id string, moveID *string) error {
	r.store.record("mark_done")
	p, ok := r.store.payslips[id]
	if !ok {
		return payslip.ErrPayslipNotFound
	}
	p.State = payslip.StateDone
	p.MoveID = moveID
	r.store.payslips[id] = p
	return nil
}

func (r fakePayslipRepo) MarkNotificationSent(ctx context.Context, id string) error {
	p, ok := r.store.payslips[id]
	if !ok {
		return payslip.ErrPayslipNotFound
	}
	p.IsSend = true
	r.store.payslips[id] = p
	return nil
}

func (r fakePayslipRepo) ReplaceInputLines(ctx context.Context, payslipID string, lines []payslip.InputLine) ([]payslip.InputLine, error) {
	p, ok := r.store.payslips[payslipID]
	if !ok {
		return nil, payslip.ErrPayslipNotFound
	}
	saved := make([]payslip.InputLine, 0, len(lines))
	for _, l := range lines {
		if l.ID == "" {
			l.ID = r.store.newID("line")
		}
		l.PayslipID = payslipID
		saved = append(saved, l)
	}
	p.InputLines = saved
	r.store.payslips[payslipID] = p
	return append([]payslip.InputLine(nil), saved...), nil
}

type fakeInputTypeRepo struct {
	store *memStore
}

func (r fakeInputTypeRepo) GetByCodes(ctx context.Context, codes []string) ([]payslip.InputType, error) {
	var result []payslip.InputType
	for _, t := range r.store.inputTypes {
		for _, c := range codes {
			if t.Code == c {
				result = append(result, t)
			}
		}
	}
	return result, nil
}

// ========== EMPLOYEES ==========

type fakeEmployeeRepo struct {
	store *memStore
}

func (r fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r fakeEmployeeRepo) GetContractByID(ctx context.Context, id string) (employee.Contract, error) {
	c, ok := r.store.contracts[id]
	if !ok {
		return employee.Contract{}, employee.ErrContractNotFound
	}
	return c, nil
}

type fakePrivileges struct {
	store *memStore
}

func (f fakePrivileges) HasGroup(ctx context.Context, userID string, group user.Group) (bool, error) {
	f.store.record("has_group")
	for _, g := range f.store.groups[userID] {
		if g == group {
			return true, nil
		}
	}
	return false, nil
}

// ========== AD-HOC ENTRIES ==========

type fakeEntryRepo struct {
	store *memStore
}

func (r fakeEntryRepo) inWindow(e adhoc.Entry, employeeID string, from, to time.Time) bool {
	d := payslip.DateOnly(e.Date)
	return e.EmployeeID == employeeID &&
		!e.IsConsumed() &&
		e.State == adhoc.EntryStateDone &&
		!d.Before(payslip.DateOnly(from)) &&
		!d.After(payslip.DateOnly(to))
}

func (r fakeEntryRepo) ListUnconsumed(ctx context.Context, employeeID string, from, to time.Time) ([]adhoc.Entry, error) {
	var result []adhoc.Entry
	for _, e := range r.store.entries {
		if r.inWindow(e, employeeID, from, to) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r fakeEntryRepo) AttachToPayslip(ctx context.Context, payslipID string, entryIDs []string) error {
	for _, id := range entryIDs {
		i := r.indexOf(id)
		if i < 0 || r.store.entries[i].IsConsumed() {
			return adhoc.ErrEntryAlreadyConsumed
		}
		slip := payslipID
		r.store.entries[i].PayslipID = &slip
	}
	return nil
}

func (r fakeEntryRepo) indexOf(id string) int {
	for i, e := range r.store.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// ========== ACCOUNTING ==========

type fakeMoveRepo struct {
	store *memStore
}

func (r fakeMoveRepo) Create(ctx context.Context, move accounting.Move) (accounting.Move, error) {
	r.store.record("create_move")
	if r.store.createMoveErr != nil {
		return accounting.Move{}, r.store.createMoveErr
	}
	if err := move.Validate(); err != nil {
		return accounting.Move{}, err
	}
	move.ID = r.store.newID("move")
	for i := range move.Lines {
		move.Lines[i].ID = r.store.newID("move-line")
		move.Lines[i].MoveID = move.ID
	}
	r.store.moves[move.ID] = move
	return move, nil
}

func (r fakeMoveRepo) GetByID(ctx context.Context, id string) (accounting.Move, error) {
	m, ok := r.store.moves[id]
	if !ok {
		return accounting.Move{}, accounting.ErrMoveNotFound
	}
	return m, nil
}

func (r fakeMoveRepo) SetBranch(ctx context.Context, moveID string, branchID *string) error {
	r.store.record("set_branch")
	m, ok := r.store.moves[moveID]
	if !ok {
		return accounting.ErrMoveNotFound
	}
	m.BranchID = branchID
	r.store.moves[moveID] = m
	return nil
}

func (r fakeMoveRepo) WriteLines(ctx context.Context, moveID string, vals accounting.LineValues) error {
	r.store.record("write_lines")
	m, ok := r.store.moves[moveID]
	if !ok {
		return accounting.ErrMoveNotFound
	}
	for i := range m.Lines {
		m.Lines[i].BranchID = vals.BranchID
		m.Lines[i].AnalyticTagIDs = append([]string(nil), vals.AnalyticTagIDs...)
		if vals.AnalyticAccountID != nil {
			m.Lines[i].AnalyticAccountID = vals.AnalyticAccountID
		}
	}
	r.store.moves[moveID] = m
	return nil
}

// ========== MAIL ==========

type sentMail struct {
	template    string
	to          string
	data        any
	attachments []email.Attachment
}

type fakeMailer struct {
	store *memStore
	sent  []sentMail
	err   error
}

func (m *fakeMailer) HasTemplate(name string) bool {
	return name == "payslip"
}

func (m *fakeMailer) SendTemplate(ctx context.Context, name, to string, data any, attachments ...email.Attachment) error {
	if m.store != nil {
		m.store.record("send_mail")
	}
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{template: name, to: to, data: data, attachments: attachments})
	return nil
}

// ========== FIXTURES ==========

type fixture struct {
	store    *memStore
	mailer   *fakeMailer
	registry payslip.Registry
	service  payslip.PayslipService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	mailer := &fakeMailer{store: store}

	cfg := config.PayslipConfig{MailTemplate: "payslip", SendPayslipGroup: "send_payslip", AttachPDF: true}
	registry, err := ResolveRegistry(context.Background(), fakeInputTypeRepo{store}, mailer, cfg)
	require.NoError(t, err)

	svc := NewPayslipService(
		fakeTransactor{store},
		fakePayslipRepo{store},
		fakeEmployeeRepo{store},
		fakeEntryRepo{store},
		fakeMoveRepo{store},
		fakePrivileges{store},
		mailer,
		registry,
		cfg,
	)
	return &fixture{store: store, mailer: mailer, registry: registry, service: svc}
}

func (f *fixture) inputType(code payslip.InputCode) payslip.InputType {
	t, _ := f.registry.InputType(code)
	return t
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func addEmployee(s *memStore, id, name string, workEmail *string) employee.Employee {
	e := employee.Employee{
		ID:         id,
		Name:       name,
		WorkEmail:  workEmail,
		DateOfJoin: timePtr(date("2023-01-10")),
		BranchID:   strPtr("branch-jkt"),
	}
	s.employees[id] = e
	return e
}

func addPayslip(s *memStore, p payslip.Payslip) payslip.Payslip {
	if p.ID == "" {
		p.ID = s.newID("slip")
	}
	if p.State == "" {
		p.State = payslip.StateDraft
	}
	if p.Number == "" {
		p.Number = "SLIP/" + p.ID
	}
	s.payslips[p.ID] = p
	return p
}

func addEntry(s *memStore, e adhoc.Entry) {
	if e.ID == "" {
		e.ID = s.newID("entry")
	}
	if e.State == "" {
		e.State = adhoc.EntryStateDone
	}
	s.entries = append(s.entries, e)
}

// userContext returns ctx carrying an access token for userID.
func userContext(userID string) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": userID, "type": "access"})
	if err != nil {
		panic(err)
	}
	return jwtauth.NewContext(context.Background(), token, nil)
}
