package rest

import (
	"fmt"
	"net/http"

	"stockstores-be/internal/user"

	"github.com/gin-gonic/gin"
)

func (s *Server) signup(c *gin.Context) {
	var input user.SignupInput
	if !bind(c, &input) {
		return
	}

	res, err := s.svc.Users.Signup(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) login(c *gin.Context) {
	var input user.LoginInput
	if !bind(c, &input) {
		return
	}

	res, err := s.svc.Users.Login(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) forgotPassword(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if !bind(c, &body) {
		return
	}

	if err := s.svc.Users.ForgotPassword(c.Request.Context(), body.Email); err != nil {
		writeError(c, err)
		return
	}
	message(c, http.StatusOK, fmt.Sprintf("Hemos enviado el enlace a tu correo (%s)", body.Email))
}

func (s *Server) resetPassword(c *gin.Context) {
	var input user.ResetPasswordInput
	if !bind(c, &input) {
		return
	}

	if err := s.svc.Users.ResetPassword(c.Request.Context(), input); err != nil {
		writeError(c, err)
		return
	}
	message(c, http.StatusOK, "Password reseted successfully")
}

func (s *Server) updateUser(c *gin.Context) {
	id := c.Param("id")
	if !requireSelf(c, id) {
		return
	}

	var input user.UpdateUserInput
	if !bind(c, &input) {
		return
	}

	res, err := s.svc.Users.Update(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) seedUsers(c *gin.Context) {
	users, err := s.svc.Seed.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"createdUsers": users})
}
