package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
	ErrNilSchema       = errors.New("schema is required")
	ErrNilSnapshot     = errors.New("snapshot is required")
)
