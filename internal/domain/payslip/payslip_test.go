package payslip

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ids(lines []InputLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ID)
	}
	return out
}

func TestApplyLineOps(t *testing.T) {
	current := []InputLine{
		{ID: "a", Code: "BASIC", Amount: decimal.NewFromInt(1000)},
		{ID: "b", Code: "OTHER_ALLOWANCE_AMOUNT", Amount: decimal.NewFromInt(50)},
	}

	cases := []struct {
		name string
		ops  []LineOp
		want []string
	}{
		{"no ops", nil, []string{"a", "b"}},
		{"remove", []LineOp{Remove{ID: "b"}}, []string{"a"}},
		{"remove unknown", []LineOp{Remove{ID: "zz"}}, []string{"a", "b"}},
		{"clear then add", []LineOp{Replace{}, Add{ID: "a"}}, []string{"a"}},
		{"replace keeps order and drops repeats", []LineOp{Replace{IDs: []string{"b", "a", "a", "zz"}}}, []string{"b", "a"}},
		{"add existing is a no-op", []LineOp{Add{ID: "a"}}, []string{"a", "b"}},
		{"add unknown is ignored", []LineOp{Replace{}, Add{ID: "zz"}}, []string{}},
		{"create appends an unsaved line", []LineOp{Replace{IDs: []string{"a"}}, Create{Line: InputLine{ID: "stale", Code: "OTHER_DEDUCTION_HOURS"}}}, []string{"a", ""}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ApplyLineOps(current, c.ops...)
			assert.Equal(t, c.want, ids(got))
		})
	}

	assert.Equal(t, []string{"a", "b"}, ids(current), "current must not be modified")
}

func TestOverlaps(t *testing.T) {
	from, to := day("2024-01-01"), day("2024-01-31")
	ptr := func(s string) *time.Time {
		d := day(s)
		return &d
	}

	cases := []struct {
		name     string
		existing time.Time
		end      *time.Time
		want     bool
	}{
		{"ends inside", day("2023-12-15"), ptr("2024-01-10"), true},
		{"starts inside", day("2024-01-20"), ptr("2024-02-20"), true},
		{"covers", day("2023-12-01"), ptr("2024-02-29"), true},
		{"same period", day("2024-01-01"), ptr("2024-01-31"), true},
		{"touches first day", day("2023-12-01"), ptr("2024-01-01"), true},
		{"open-ended before", day("2023-12-01"), nil, true},
		{"open-ended after", day("2024-02-01"), nil, false},
		{"entirely before", day("2023-11-01"), ptr("2023-12-31"), false},
		{"entirely after", day("2024-02-01"), ptr("2024-02-29"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Overlaps(from, to, c.existing, c.end))
		})
	}
}

func TestOverlaps_IgnoresTimeOfDay(t *testing.T) {
	end := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	assert.True(t, Overlaps(day("2024-01-01"), day("2024-01-31"), day("2023-12-01"), &end))
}

func TestCheckParity(t *testing.T) {
	cases := []struct {
		overlapping int
		creditNote  bool
		wantErr     error
	}{
		{0, false, nil},
		{0, true, ErrDuplicateRefund},
		{1, false, ErrDuplicatePayslip},
		{1, true, nil},
		{2, false, nil},
		{2, true, ErrDuplicateRefund},
		{3, false, ErrDuplicatePayslip},
	}
	for _, c := range cases {
		err := CheckParity(c.overlapping, c.creditNote, "Sara Putri")
		if c.wantErr == nil {
			assert.NoError(t, err, "overlapping=%d credit_note=%v", c.overlapping, c.creditNote)
			continue
		}
		require.ErrorIs(t, err, c.wantErr)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, `"Sara Putri"`)
	}
}
