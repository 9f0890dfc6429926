package rest

import (
	"net/http"

	"stockstores-be/internal/product"

	"github.com/gin-gonic/gin"
)

func featuredOnly(c *gin.Context) bool {
	return c.Query("featured") == "true"
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.svc.Products.ListByStore(c.Request.Context(), c.Param("ref"), featuredOnly(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) listProductsByStoreSlug(c *gin.Context) {
	res, err := s.svc.Products.ListByStoreSlug(c.Request.Context(), c.Param("storeSlug"), featuredOnly(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) getProductBySlug(c *gin.Context) {
	p, err := s.svc.Products.GetBySlug(c.Request.Context(), c.Param("ref"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c *gin.Context) {
	var input product.CreateProductInput
	if !bind(c, &input) {
		return
	}

	p, err := s.svc.Products.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	var u product.ProductUpdate
	if !bind(c, &u) {
		return
	}

	p, err := s.svc.Products.Update(c.Request.Context(), c.Param("productId"), u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.svc.Products.Delete(c.Request.Context(), c.Param("productId")); err != nil {
		writeError(c, err)
		return
	}
	message(c, http.StatusOK, "Producto eliminado exitosamente.")
}
