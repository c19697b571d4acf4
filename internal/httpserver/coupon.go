package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type validateCouponRequest struct {
	CouponCode    string `json:"couponCode"`
	SubtotalCents int64  `json:"subtotalCents"`
}

type validateCouponResponse struct {
	Code          string `json:"code"`
	Type          string `json:"type"`
	Value         int64  `json:"value"`
	DiscountCents int64  `json:"discountCents"`
}

// validateCouponHandler checks a code without applying it, so storefronts
// can preview the discount before checkout.
func validateCouponHandler(coupons CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		coupon, discount, err := coupons.Validate(c.Request.Context(), req.CouponCode, req.SubtotalCents)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, validateCouponResponse{
			Code:          coupon.Code,
			Type:          coupon.Type,
			Value:         coupon.Value,
			DiscountCents: discount,
		})
	}
}
