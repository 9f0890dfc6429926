package rest

import (
	"net/http"

	"stockstores-be/internal/address"

	"github.com/gin-gonic/gin"
)

func (s *Server) listAddresses(c *gin.Context) {
	userID := c.Param("userId")
	if !requireSelf(c, userID) {
		return
	}

	list, err := s.svc.Shipping.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createAddress(c *gin.Context) {
	var input address.CreateAddressInput
	if !bind(c, &input) {
		return
	}
	if !requireSelf(c, input.UserID) {
		return
	}

	a, err := s.svc.Shipping.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) updateAddress(c *gin.Context) {
	var u address.AddressUpdate
	if !bind(c, &u) {
		return
	}

	a, err := s.svc.Shipping.Update(c.Request.Context(), callerID(c), c.Param("id"), u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteAddress(c *gin.Context) {
	if err := s.svc.Shipping.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	message(c, http.StatusOK, "La dirección de envío ha sido eliminada exitosamente.")
}
