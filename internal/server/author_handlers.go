package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListAuthors handles GET /api/authors/
// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {array} models.Author
// @Router /authors/ [get]
func (s *Server) ListAuthors(c *fiber.Ctx) error {
	authors, err := s.authorService.ListAuthors(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(authors)
}

// GetAuthor handles GET /api/authors/:id/
// @Summary Get an author
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} models.Author
// @Failure 404 {object} models.ErrorResponse
// @Router /authors/{id}/ [get]
func (s *Server) GetAuthor(c *fiber.Ctx) error {
	id, err := parseID(c, "Author")
	if err != nil {
		return nil
	}

	author, err := s.authorService.GetAuthor(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(author)
}

// CreateAuthor handles POST /api/authors/
// @Summary Create an author
// @Tags authors
// @Accept json
// @Produce json
// @Param author body models.AuthorFields true "Author fields"
// @Success 201 {object} models.Author
// @Failure 400 {object} models.ErrorResponse
// @Router /authors/ [post]
func (s *Server) CreateAuthor(c *fiber.Ctx) error {
	var req models.AuthorFields
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	author, err := s.authorService.CreateAuthor(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(author)
}

// UpdateAuthor handles PUT /api/authors/:id/
// @Summary Replace an author
// @Tags authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param author body models.AuthorFields true "Author fields"
// @Success 200 {object} models.Author
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /authors/{id}/ [put]
func (s *Server) UpdateAuthor(c *fiber.Ctx) error {
	id, err := parseID(c, "Author")
	if err != nil {
		return nil
	}

	var req models.AuthorFields
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	author, err := s.authorService.UpdateAuthor(c.UserContext(), id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(author)
}

// DeleteAuthor handles DELETE /api/authors/:id/ and removes the author's posts with them.
// @Summary Delete an author and their posts
// @Tags authors
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /authors/{id}/ [delete]
func (s *Server) DeleteAuthor(c *fiber.Ctx) error {
	id, err := parseID(c, "Author")
	if err != nil {
		return nil
	}

	if err := s.authorService.DeleteAuthor(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
