package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/payment"
	checkoutsvc "storefront/internal/service/checkout"
)

type useSavedAddressRequest struct {
	AddressID string `json:"addressId" binding:"required"`
}

type applyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type placeOrderRequest struct {
	Card        payment.Card `json:"card"`
	BillingName string       `json:"billingName"`
}

func startCheckoutHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := checkout.Start(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, session)
	}
}

func getCheckoutHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := checkout.Get(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, session)
	}
}

func quoteHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := checkout.Quote(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, snap)
	}
}

func setShippingAddressHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutsvc.AddressInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		session, err := checkout.SetShippingAddress(c.Request.Context(), currentCustomer(c).ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, session)
	}
}

func useSavedAddressHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req useSavedAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "addressId required"})
			return
		}
		session, err := checkout.UseSavedAddress(c.Request.Context(), currentCustomer(c), req.AddressID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, session)
	}
}

func applyCouponHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
			return
		}
		session, err := checkout.ApplyCoupon(c.Request.Context(), currentCustomer(c).ID, req.Code)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, session)
	}
}

func advanceCheckoutHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := checkout.Advance(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, session)
	}
}

func backCheckoutHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := checkout.Back(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, session)
	}
}

func placeOrderHandler(checkout CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := checkout.PlaceOrder(c.Request.Context(), currentCustomer(c).ID, req.Card, req.BillingName)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, order)
	}
}
