package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/payment"
	checkoutsvc "storefront/internal/service/checkout"
	couponsvc "storefront/internal/service/coupon"
)

// respondError maps service errors onto HTTP statuses. Unmapped errors
// are reported as 400 with the message intact; the services phrase their
// errors for end users.
func respondError(c *gin.Context, err error) {
	var fieldErrs checkoutsvc.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs})
		return
	}

	var gwErr *payment.GatewayError
	if errors.As(err, &gwErr) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": gwErr.Message})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, checkoutsvc.ErrNoSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, checkoutsvc.ErrCouponLocked),
		errors.Is(err, checkoutsvc.ErrCheckoutLocked),
		errors.Is(err, checkoutsvc.ErrStaleIntent):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkoutsvc.ErrBelowMinimumCharge),
		errors.Is(err, checkoutsvc.ErrEmptyCart),
		errors.Is(err, checkoutsvc.ErrPaymentNotReady),
		errors.Is(err, couponsvc.ErrInvalidCoupon),
		errors.Is(err, couponsvc.ErrEmptyCode):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func respondData(c *gin.Context, status int, v any) {
	c.JSON(status, gin.H{"data": v})
}
