package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pmsvc "storefront/internal/service/paymentmethod"
)

func listPaymentMethodsHandler(methods PaymentMethodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := methods.List(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, list)
	}
}

func savePaymentMethodHandler(methods PaymentMethodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pmsvc.SaveInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		pm, err := methods.Save(c.Request.Context(), currentCustomer(c).ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, pm)
	}
}

func deletePaymentMethodHandler(methods PaymentMethodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := methods.Delete(c.Request.Context(), currentCustomer(c).ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
