package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeNameExists = errors.New("employee name already exists")
	ErrOverrideNotFound   = errors.New("rate override not found")
)
