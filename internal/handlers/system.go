package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK     = "ok"
	rootMessage  = "Blog API server is running."
	helloMessage = "Hello from the blog API."
)

// @Summary      Liveness message
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": rootMessage})
}

// @Summary      Greeting
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/hello [get]
func (h *Handler) hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": helloMessage})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
