package web

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/screen"

	"github.com/gofiber/fiber/v2"
)

// render turns a settled screen state into a response. Immediate navigation
// becomes a 303; delayed navigation keeps the page and schedules the move
// from the page head. A failed fetch renders the error page with a 502.
func render(c *fiber.Ctx, view, title string, st screen.State, data fiber.Map) error {
	if next := st.Next; next != nil && next.Delay <= 0 {
		return c.Redirect(next.Path, fiber.StatusSeeOther)
	}

	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["State"] = st
	data["Submitting"] = st.Submit == screen.Submitting

	if next := st.Next; next != nil {
		data["Refresh"] = delayedRedirect(*next)
	}

	if st.Phase == screen.Failed {
		return c.Status(fiber.StatusBadGateway).Render("error", data)
	}
	return c.Render(view, data)
}

// delayedRedirect moves the browser after exactly next.Delay. Meta refresh
// only honours whole seconds, so it is kept for clients without script and
// rounds up so it never fires before the message has been shown.
func delayedRedirect(next screen.Navigation) template.HTML {
	seconds := int(math.Ceil(next.Delay.Seconds()))
	fallback := fmt.Sprintf("%d; url=%s", seconds, next.Path)
	return template.HTML(fmt.Sprintf(
		`<script>setTimeout(function () { window.location.assign("%s"); }, %d);</script>`+
			`<noscript><meta http-equiv="refresh" content="%s"></noscript>`,
		template.JSEscapeString(next.Path), next.Delay.Milliseconds(), template.HTMLEscapeString(fallback),
	))
}

// isDelete reports whether the request is a delete action posted from a page.
func isDelete(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodPost && c.FormValue("action") == "delete"
}

// confirmed answers the delete prompt with the value the browser's confirm
// dialog put into the form.
func confirmed(c *fiber.Ctx) screen.Confirmer {
	answer := c.FormValue("confirmed")
	return func(string) bool {
		return answer == "yes"
	}
}

func formID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func postForm(c *fiber.Ctx) screen.PostForm {
	return screen.PostForm{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
		Author:  c.FormValue("author"),
	}
}

func authorForm(c *fiber.Ctx) screen.AuthorForm {
	return screen.AuthorForm{
		FirstName:   c.FormValue("first_name"),
		LastName:    c.FormValue("last_name"),
		Email:       c.FormValue("email"),
		PhoneNumber: c.FormValue("phone_number"),
	}
}

// authorOption is one entry of the author picklist.
type authorOption struct {
	Value    string
	Label    string
	Selected bool
}

// authorOptions builds the picklist. A selected author missing from the list,
// as when the picklist could not be loaded, is kept as its own option so a
// resubmitted form still carries it.
func authorOptions(authors []models.Author, selected string) []authorOption {
	opts := make([]authorOption, 0, len(authors)+1)
	found := false
	for _, a := range authors {
		value := strconv.FormatUint(uint64(a.ID), 10)
		opts = append(opts, authorOption{Value: value, Label: a.FullName(), Selected: value == selected})
		found = found || value == selected
	}
	if selected != "" && !found {
		opts = append(opts, authorOption{Value: selected, Label: "Author #" + selected, Selected: true})
	}
	return opts
}
