package web

import (
	"inkwell/internal/screen"

	"github.com/gofiber/fiber/v2"
)

// AuthorList renders every author and handles deletes posted from the list,
// redirecting back to the list unless the delete failed.
func (s *Server) AuthorList(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sc := screen.NewAuthorList(s.authors)
	sc.Mount(ctx)

	if isDelete(c) {
		if id, ok := formID(c); ok {
			sc.Delete(ctx, id, confirmed(c))
		}
		if st := sc.State(); st.Phase != screen.Failed && st.Error == "" {
			return c.Redirect("/authors", fiber.StatusSeeOther)
		}
	}

	return render(c, "authors/list", "All Authors", sc.State(), fiber.Map{
		"Authors":      sc.Authors,
		"DeletePrompt": screen.PromptDeleteAuthor,
	})
}

// AuthorDetail renders an author with their posts.
func (s *Server) AuthorDetail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sc := screen.NewAuthorDetail(c.Params("id"), s.authors, s.posts)
	sc.Mount(ctx)

	if isDelete(c) {
		sc.Delete(ctx, confirmed(c))
	}

	return render(c, "authors/detail", sc.Author.FullName(), sc.State(), fiber.Map{
		"Author":       sc.Author,
		"Previews":     sc.Previews(),
		"PostCount":    len(sc.Posts),
		"DeletePrompt": screen.PromptDeleteAuthorAndPosts,
	})
}

// CreateAuthor renders the new-author form and submits it on POST.
func (s *Server) CreateAuthor(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sc := screen.NewCreateAuthor(s.authors)
	sc.Mount(ctx)

	if c.Method() == fiber.MethodPost {
		sc.Submit(ctx, authorForm(c))
	}

	return render(c, "authors/create", "Create New Author", sc.State(), fiber.Map{
		"Form":      sc.Form,
		"Action":    "/authors/create",
		"Cancel":    "/authors",
		"Label":     "Create Author",
		"BusyLabel": "Creating...",
	})
}

// EditAuthor renders the edit form for an author and submits it on POST
// without fetching the author again.
func (s *Server) EditAuthor(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sc := screen.NewEditAuthor(c.Params("id"), s.authors)

	if c.Method() == fiber.MethodPost {
		form := authorForm(c)
		sc.Resume(ctx, form)
		sc.Submit(ctx, form)
	} else {
		sc.Mount(ctx)
	}

	detail := "/authors/" + c.Params("id")
	return render(c, "authors/edit", "Edit Author", sc.State(), fiber.Map{
		"Form":      sc.Form,
		"Action":    detail + "/edit",
		"Cancel":    detail,
		"Label":     "Update Author",
		"BusyLabel": "Updating...",
	})
}
