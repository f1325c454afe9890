package model

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidPrice       = errors.New("price must be a non-negative number")
	ErrImageTooLarge      = errors.New("image exceeds maximum size (5MB)")
	ErrInvalidImageFormat = errors.New("image must be JPEG or PNG format")
	ErrEmptyImportFile    = errors.New("import file contains no data rows")
)
