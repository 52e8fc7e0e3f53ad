package payslip

import (
	"fmt"

	"github.com/cmlabs-hris/payslip-backend-go/internal/domain/user"
)

// Registry holds the pre-registered identities the payslip hooks refer to.
// It is resolved once at startup.
type Registry struct {
	MailTemplate     string
	SendPayslipGroup user.Group
	inputTypes       map[InputCode]InputType
	codesByTypeID    map[string]InputCode
}

// NewRegistry indexes types by code and fails if any of the eight ad-hoc
// categories is missing.
func NewRegistry(mailTemplate string, group user.Group, types []InputType) (Registry, error) {
	r := Registry{
		MailTemplate:     mailTemplate,
		SendPayslipGroup: group,
		inputTypes:       make(map[InputCode]InputType, len(InputCodes)),
		codesByTypeID:    make(map[string]InputCode, len(InputCodes)),
	}
	for _, t := range types {
		code := InputCode(t.Code)
		if !code.IsValid() {
			continue
		}
		r.inputTypes[code] = t
		r.codesByTypeID[t.ID] = code
	}
	for _, code := range InputCodes {
		if _, ok := r.inputTypes[code]; !ok {
			return Registry{}, fmt.Errorf("%w: %s", ErrInputTypeNotRegistered, code)
		}
	}
	return r, nil
}

func (r Registry) InputType(code InputCode) (InputType, bool) {
	t, ok := r.inputTypes[code]
	return t, ok
}

// IsAdHocInputType reports whether inputTypeID is one of the eight ad-hoc categories.
func (r Registry) IsAdHocInputType(inputTypeID string) bool {
	_, ok := r.codesByTypeID[inputTypeID]
	return ok
}
