package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	reviewsvc "storefront/internal/service/review"
)

func listProductReviewsHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := reviews.ListApproved(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, list)
	}
}

func submitReviewHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewsvc.SubmitInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		customer := currentCustomer(c)
		author := strings.TrimSpace(customer.FirstName + " " + customer.LastName)
		if author == "" {
			author = customer.Email
		}
		review, err := reviews.Submit(c.Request.Context(), customer.ID, author, req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, review)
	}
}

func adminListPendingReviewsHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := reviews.ListPending(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, list)
	}
}

type moderateRequest struct {
	Decision string `json:"decision" binding:"required"`
}

func adminModerateReviewHandler(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req moderateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "decision required"})
			return
		}
		if err := reviews.Moderate(c.Request.Context(), c.Param("id"), req.Decision); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
