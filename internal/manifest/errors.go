package manifest

import "errors"

var (
	ErrMissingDefines = errors.New("manifest: component requires a non-empty [Defines] section")
)
