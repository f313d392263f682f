package errs

import (
	"errors"
	"net/http"
	"strings"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer  = errors.New("Internal server error")
	ErrClient          = errors.New("Bad request")
	ErrNotLoggedIn     = errors.New("Unauthorized access")
	ErrInvalidToken    = errors.New("Invalid or expired token")
	ErrForbidden       = errors.New("Forbidden access")
	ErrNotOwner        = errors.New("You are not the owner of this product")
	ErrNotFound        = errors.New("Resource not found")
	ErrProductNotFound = errors.New("Product not found")
	ErrOrderNotFound   = errors.New("Order not found")
	ErrAccountNotFound = errors.New("Account not found")
	ErrInvalidID       = errors.New("Invalid identifier")
	ErrBelowMinimum    = errors.New("Requested quantity is below the minimum order size")
	ErrOutOfStock      = errors.New("Too late, this product is out of stock.")
	ErrStockConflict   = errors.New("Stock was taken by a concurrent order")
	ErrPlacementFailed = errors.New("Failed to place order. Please try again.")
)

var errorMap = map[error]int{
	ErrInternalServer:  ErrStatusInternalServer,
	ErrClient:          ErrStatusClient,
	ErrNotLoggedIn:     ErrStatusNotLoggedIn,
	ErrInvalidToken:    ErrStatusNotLoggedIn,
	ErrForbidden:       ErrStatusNoPermission,
	ErrNotOwner:        ErrStatusNoPermission,
	ErrNotFound:        ErrStatusNotFound,
	ErrProductNotFound: ErrStatusNotFound,
	ErrOrderNotFound:   ErrStatusNotFound,
	ErrAccountNotFound: ErrStatusNotFound,
	ErrInvalidID:       ErrStatusClient,
	ErrBelowMinimum:    ErrStatusClient,
	ErrOutOfStock:      ErrStatusClient,
	ErrStockConflict:   ErrStatusConflict,
	ErrPlacementFailed: ErrStatusInternalServer,
}

// Lookup walks the wrap chain of err and returns the first known sentinel.
func Lookup(err error) (error, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if _, ok := errorMap[e]; ok {
			return e, true
		}
	}
	return nil, false
}

func GetErrorStatusCode(err error) int {
	known, ok := Lookup(err)
	if !ok {
		return errorMap[ErrInternalServer]
	}
	return errorMap[known]
}

// detailed sentinels may be wrapped with a client-facing suffix, as in
// fmt.Errorf("%w. You need to buy at least %d items.", ErrBelowMinimum, n).
var detailed = map[error]bool{
	ErrBelowMinimum: true,
}

// PublicMessage is the text safe to show a client. Unknown errors collapse to
// the generic internal error message.
func PublicMessage(err error) string {
	known, ok := Lookup(err)
	if !ok {
		return ErrInternalServer.Error()
	}

	if detailed[known] {
		for e := err; e != nil; e = errors.Unwrap(e) {
			if errors.Unwrap(e) == known && strings.HasPrefix(e.Error(), known.Error()) {
				return e.Error()
			}
		}
	}

	return known.Error()
}
