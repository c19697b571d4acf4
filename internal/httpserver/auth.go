package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "storefront/internal/service/customer"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}

func signupHandler(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customersvc.SignupInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		customer, err := customers.Signup(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, customer)
	}
}

func loginHandler(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		customer, access, refresh, err := customers.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data": customer,
			"token": tokenResponse{
				AccessToken:  access,
				RefreshToken: refresh,
				TokenType:    "Bearer",
				ExpiresIn:    customers.AccessTTLSeconds(),
			},
		})
	}
}

func currentCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondData(c, http.StatusOK, currentCustomer(c))
	}
}

func addAddressHandler(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customersvc.AddressInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		customer, err := customers.AddAddress(c.Request.Context(), currentCustomer(c).ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, customer)
	}
}
