package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity"`
}

type changeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.GetActive(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, cart)
	}
}

func addCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sku required"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		cart, err := carts.AddItem(c.Request.Context(), currentCustomer(c).ID, req.SKU, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, cart)
	}
}

func changeCartItemHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changeQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		cart, err := carts.ChangeQuantity(c.Request.Context(), currentCustomer(c).ID, c.Param("id"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, cart)
	}
}

type wishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func listWishlistHandler(wishlists WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := wishlists.List(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, items)
	}
}

func addWishlistHandler(wishlists WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		if err := wishlists.Add(c.Request.Context(), currentCustomer(c).ID, req.ProductID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeWishlistHandler(wishlists WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := wishlists.Remove(c.Request.Context(), currentCustomer(c).ID, c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
