package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-cms/inkwell/api"
	"github.com/inkwell-cms/inkwell/blog/domain"
	"github.com/inkwell-cms/inkwell/internal/auth"
)

// Login checks admin credentials and issues a signed token valid for two
// days.
func (h *Handler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("invalid request body"))
		return
	}

	token, err := auth.Login(h.cfg, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
	})
}
