package web

import (
	"inkwell/internal/screen"

	"github.com/gofiber/fiber/v2"
)

// PostList renders every post and handles deletes posted from the list. A
// delete that went through redirects back to the list; a failed one renders
// the list with the error.
func (s *Server) PostList(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sc := screen.NewPostList(s.posts, s.authors)
	sc.Mount(ctx)

	if isDelete(c) {
		if id, ok := formID(c); ok {
			sc.Delete(ctx, id, confirmed(c))
		}
		if st := sc.State(); st.Phase != screen.Failed && st.Error == "" {
			return c.Redirect("/posts", fiber.StatusSeeOther)
		}
	}

	return render(c, "posts/list", "All Blog Posts", sc.State(), fiber.Map{
		"Rows":         sc.Rows(),
		"DeletePrompt": screen.PromptDeletePost,
	})
}

// PostDetail renders one post with its author.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sc := screen.NewPostDetail(c.Params("id"), s.posts, s.authors)
	sc.Mount(ctx)

	if isDelete(c) {
		sc.Delete(ctx, confirmed(c))
	}

	return render(c, "posts/detail", sc.Post.Title, sc.State(), fiber.Map{
		"Post":         sc.Post,
		"Author":       sc.Author,
		"Paragraphs":   sc.Paragraphs(),
		"DeletePrompt": screen.PromptDeletePost,
	})
}

// CreatePost renders the new-post form and submits it on POST. A submission
// resumes the form from the posted values rather than mounting it afresh.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sc := screen.NewCreatePost(s.posts, s.authors)

	if c.Method() == fiber.MethodPost {
		form := postForm(c)
		sc.Resume(ctx, form)
		sc.Submit(ctx, form)
	} else {
		sc.Mount(ctx)
	}

	options := authorOptions(sc.Authors, sc.Form.Author)
	return render(c, "posts/create", "Create New Post", sc.State(), fiber.Map{
		"Form":      sc.Form,
		"Options":   options,
		"NoAuthors": len(options) == 0,
		"Action":    "/posts/create",
		"Cancel":    "/posts",
		"Label":     "Create Post",
		"BusyLabel": "Creating...",
	})
}

// EditPost renders the edit form for a post and submits it on POST without
// fetching the post again.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sc := screen.NewEditPost(c.Params("id"), s.posts, s.authors)

	if c.Method() == fiber.MethodPost {
		form := postForm(c)
		sc.Resume(ctx, form)
		sc.Submit(ctx, form)
	} else {
		sc.Mount(ctx)
	}

	detail := "/posts/" + c.Params("id")
	return render(c, "posts/edit", "Edit Post", sc.State(), fiber.Map{
		"Form":      sc.Form,
		"Options":   authorOptions(sc.Authors, sc.Form.Author),
		"Action":    detail + "/edit",
		"Cancel":    detail,
		"Label":     "Update Post",
		"BusyLabel": "Updating...",
	})
}
