package adhoc

import "errors"

var ErrEntryAlreadyConsumed = errors.New("ad-hoc entry already consumed by another payslip")
