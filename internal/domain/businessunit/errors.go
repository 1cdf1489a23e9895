package businessunit

import "errors"

var (
	ErrBusinessUnitNotFound   = errors.New("business unit not found")
	ErrBusinessUnitNameExists = errors.New("business unit name already exists")
)
