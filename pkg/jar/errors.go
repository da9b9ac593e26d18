package jar

import "errors"

var (
	ErrInvalidEntry   = errors.New("jar: invalid entry")
	ErrInvalidRecord  = errors.New("jar: record cannot be stored")
	ErrDomainRejected = errors.New("jar: domain attribute rejected")
	ErrStore          = errors.New("jar: store operation failed")
)
