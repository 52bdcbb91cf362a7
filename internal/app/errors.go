package app

import "errors"

// ErrNoMirrorService is returned by NewApp when services carry no mirror.
var ErrNoMirrorService = errors.New("mirror service is required")
