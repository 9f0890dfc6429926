package rest

import (
	"net/http"

	"stockstores-be/internal/order"

	"github.com/gin-gonic/gin"
)

func (s *Server) getOrder(c *gin.Context) {
	o, err := s.svc.Orders.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) listUserOrders(c *gin.Context) {
	orders, err := s.svc.Orders.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) listStoreOrders(c *gin.Context) {
	res, err := s.svc.Orders.ListByStore(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) listStoreOrdersBySlug(c *gin.Context) {
	res, err := s.svc.Orders.ListByStoreSlug(c.Request.Context(), c.Param("storeSlug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) createOrder(c *gin.Context) {
	var input order.CreateOrderInput
	if !bind(c, &input) {
		return
	}
	if !requireSelf(c, input.UserID) {
		return
	}

	o, err := s.svc.Orders.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (s *Server) updateOrder(c *gin.Context) {
	var u order.OrderUpdate
	if !bind(c, &u) {
		return
	}

	o, err := s.svc.Orders.Update(c.Request.Context(), c.Param("orderId"), u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) syncStore(c *gin.Context) {
	var body struct {
		StoreID string `json:"storeId"`
		order.StoreInfo
	}
	if !bind(c, &body) {
		return
	}

	n, err := s.svc.Orders.SyncStoreInfo(c.Request.Context(), body.StoreID, body.StoreInfo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Todas las órdenes de la tienda actualizadas exitosamente.",
		"modifiedCount": n,
	})
}
