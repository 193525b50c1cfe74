package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListBlogs   = "failed to load blog posts"
	errInvalidID   = "invalid blog id"
	errBlogDeleted = "blog post deleted"
)

// blogRequest is the JSON body shared by create and update.
type blogRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// blogIDParam parses the :id path segment; writes a 400 and returns false on
// garbage.
func (h *Handler) blogIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// respondBlogError maps the blog domain errors onto status codes: a missing
// post is 404 and always wins over 403 (the service checks existence first).
func (h *Handler) respondBlogError(c *gin.Context, err error, logKey string, id int) {
	switch {
	case errors.Is(err, service.ErrBlogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "internal error", logKey, err, "id", id)
	}
}

// @Summary      List blog posts
// @Description  Public; newest id first, each post carries the author email.
// @Tags         blogs
// @Produce      json
// @Success      200  {array}   models.BlogWithAuthor
// @Failure      500  {object}  map[string]string
// @Router       /blogs [get]
func (h *Handler) listBlogs(c *gin.Context) {
	blogs, err := h.services.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListBlogs, "blogs_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// @Summary      Get one blog post
// @Tags         blogs
// @Produce      json
// @Param        id   path      int  true  "Blog id"
// @Success      200  {object}  models.BlogWithAuthor
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id} [get]
func (h *Handler) getBlog(c *gin.Context) {
	id, ok := h.blogIDParam(c)
	if !ok {
		return
	}
	blog, err := h.services.Blogs.Get(c.Request.Context(), id)
	if err != nil {
		h.respondBlogError(c, err, "blogs_get_failed", id)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// @Summary      Create a blog post
// @Description  The acting user becomes the author. Response omits author_email.
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body      blogRequest  true  "Post payload"
// @Success      200   {object}  models.Blog
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /blogs [post]
// @Security     BearerAuth
func (h *Handler) createBlog(c *gin.Context) {
	var input blogRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := currentUser(c)
	blog, err := h.services.Blogs.Create(c.Request.Context(), user.ID, input.Title, input.Content)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to create blog post", "blogs_create_failed", err, "author_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// @Summary      Update a blog post
// @Description  Author only; refreshes updated_at.
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Blog id"
// @Param        body  body      blogRequest  true  "Post payload"
// @Success      200   {object}  models.Blog
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /blogs/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBlog(c *gin.Context) {
	id, ok := h.blogIDParam(c)
	if !ok {
		return
	}
	var input blogRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := currentUser(c)
	blog, err := h.services.Blogs.Update(c.Request.Context(), id, user.ID, input.Title, input.Content)
	if err != nil {
		h.respondBlogError(c, err, "blogs_update_failed", id)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// @Summary      Delete a blog post
// @Description  Author only; echoes the deleted post's id and title.
// @Tags         blogs
// @Produce      json
// @Param        id   path      int  true  "Blog id"
// @Success      200  {object}  map[string]interface{}  "message, deleted_blog"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBlog(c *gin.Context) {
	id, ok := h.blogIDParam(c)
	if !ok {
		return
	}

	user := currentUser(c)
	deleted, err := h.services.Blogs.Delete(c.Request.Context(), id, user.ID)
	if err != nil {
		h.respondBlogError(c, err, "blogs_delete_failed", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": errBlogDeleted,
		"deleted_blog": gin.H{
			"id":    deleted.ID,
			"title": deleted.Title,
		},
	})
}
