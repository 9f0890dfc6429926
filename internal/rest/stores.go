package rest

import (
	"net/http"

	"stockstores-be/internal/store"

	"github.com/gin-gonic/gin"
)

func (s *Server) listStores(c *gin.Context) {
	stores, err := s.svc.Stores.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (s *Server) getStore(c *gin.Context) {
	st, err := s.svc.Stores.GetByID(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) getStoreBySlug(c *gin.Context) {
	st, err := s.svc.Stores.GetBySlug(c.Request.Context(), c.Param("storeSlug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) listSellerStores(c *gin.Context) {
	stores, err := s.svc.Stores.ListBySeller(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (s *Server) createStore(c *gin.Context) {
	var input store.CreateStoreInput
	if !bind(c, &input) {
		return
	}
	if !requireSelf(c, input.SellerID) {
		return
	}

	st, err := s.svc.Stores.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (s *Server) updateStore(c *gin.Context) {
	var u store.StoreUpdate
	if !bind(c, &u) {
		return
	}

	st, err := s.svc.Stores.Update(c.Request.Context(), c.Param("storeId"), u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) syncSeller(c *gin.Context) {
	var body struct {
		SellerID string `json:"sellerId"`
		store.SellerInfo
	}
	if !bind(c, &body) {
		return
	}
	if !requireSelf(c, body.SellerID) {
		return
	}

	n, err := s.svc.Stores.SyncSellerInfo(c.Request.Context(), body.SellerID, body.SellerInfo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Todas las tiendas actualizadas exitosamente.",
		"modifiedCount": n,
	})
}

func (s *Server) deleteStore(c *gin.Context) {
	if err := s.svc.Stores.Delete(c.Request.Context(), c.Param("storeId")); err != nil {
		writeError(c, err)
		return
	}
	message(c, http.StatusOK, "Tienda y productos eliminados exitosamente.")
}
