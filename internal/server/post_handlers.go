package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts/
// @Summary List posts
// @Description Every post, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Failure 500 {object} models.ErrorResponse
// @Router /posts/ [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id/
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/ [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts/
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.PostFields true "Post fields"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/ [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req models.PostFields
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id/
// @Summary Replace a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body models.PostFields true "Post fields"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/ [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return nil
	}

	var req models.PostFields
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id/
// @Summary Delete a post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/ [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
