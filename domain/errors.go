package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrCallerNotAuthorized is returned when the caller neither owns the
	// asset nor holds an operator approval for it
	ErrCallerNotAuthorized = errors.New("caller not authorized")
	// ErrAlreadyListed is returned when the asset already has an active listing
	ErrAlreadyListed = errors.New("asset already listed")
	// ErrNotListed is returned when operating on an unknown or inactive listing
	ErrNotListed = errors.New("listing not active")
	// ErrInvalidListing is returned when the asset passed does not match the
	// asset recorded on the listing
	ErrInvalidListing = errors.New("asset does not match listing")
	// ErrInsufficientFunds is returned when the buyer's allowance or balance
	// is below the listing price
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrTransferFailed is returned when the underlying asset or payment
	// transfer is rejected after all precondition checks
	ErrTransferFailed = errors.New("transfer failed")

	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidChainId      = errors.New("invalid chain id")
	ErrInvalidAddress      = errors.New("Invalid address")
)
