package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	ErrItemNotFound      = errors.New("catalog item not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrMissingAddress    = errors.New("please enter a delivery address")
	ErrMissingPickup     = errors.New("please enter a pickup location")
	ErrMissingStore      = errors.New("please select a store")
	ErrEmptyCart         = errors.New("please add items to your cart")
	ErrInvalidPayment    = errors.New("unsupported payment method")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidDistance   = errors.New("distance must not be negative")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")
	ErrNotAssigned       = errors.New("delivery is not assigned to this driver")
	ErrDriverOffline     = errors.New("driver is offline")
	ErrNoDriverAssigned  = errors.New("no driver assigned yet")
	ErrEmptyMessage      = errors.New("message must not be empty")
)

// IsValidation reports whether err is an input validation failure that is
// shown to the user as is.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrMissingAddress,
		ErrMissingPickup,
		ErrMissingStore,
		ErrEmptyCart,
		ErrInvalidPayment,
		ErrInvalidCardNumber,
		ErrInvalidDistance,
		ErrEmptyMessage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
