package model

import "errors"

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrReadOnly      = errors.New("asset repository is read-only")
)
