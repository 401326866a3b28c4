package service

import "errors"

// Catalog and comparison errors. Handlers map them onto response.ErrCode values.
var (
	ErrUniversityNotFound = errors.New("university not found")
	ErrCompareCapacity    = errors.New("comparison set is full")
	ErrCompareTooFew      = errors.New("at least two universities are required for comparison")
	ErrInvalidClientToken = errors.New("invalid client token")
)
