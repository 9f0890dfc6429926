package rest

import (
	"net/http"

	"stockstores-be/internal/review"

	"github.com/gin-gonic/gin"
)

func (s *Server) listReviews(c *gin.Context) {
	reviews, err := s.svc.Reviews.ListByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) createReview(c *gin.Context) {
	var input review.CreateReviewInput
	if !bind(c, &input) {
		return
	}
	if !requireSelf(c, input.UserID) {
		return
	}

	res, err := s.svc.Reviews.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ownReview loads the review and checks it was written by the caller.
func (s *Server) ownReview(c *gin.Context, id string) bool {
	r, err := s.svc.Reviews.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return false
	}
	return requireSelf(c, r.UserID)
}

func (s *Server) updateReview(c *gin.Context) {
	id := c.Param("reviewId")

	var input review.UpdateReviewInput
	if !bind(c, &input) {
		return
	}
	if !s.ownReview(c, id) {
		return
	}

	r, err := s.svc.Reviews.Update(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) syncReviewer(c *gin.Context) {
	var body struct {
		UserID string `json:"userId"`
		review.UserInfo
	}
	if !bind(c, &body) {
		return
	}
	if !requireSelf(c, body.UserID) {
		return
	}

	n, err := s.svc.Reviews.SyncUserInfo(c.Request.Context(), body.UserID, body.UserInfo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Todas las reseñas de ese usuario actualizadas exitosamente.",
		"modifiedCount": n,
	})
}

func (s *Server) deleteReview(c *gin.Context) {
	id := c.Param("reviewId")
	if !s.ownReview(c, id) {
		return
	}

	p, err := s.svc.Reviews.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		message(c, http.StatusOK, "Reseña eliminada exitosamente.")
		return
	}
	c.JSON(http.StatusOK, p)
}
