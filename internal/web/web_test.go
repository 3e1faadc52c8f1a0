package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"inkwell/internal/apiclient"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/screen"
	"inkwell/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		AllowedOrigins: "http://localhost:3000",
		RateLimitMax:   1000,
		WriteRateLimit: 1000,
	}
}

// setupAPI runs the real API over in-memory sqlite behind an httptest server
// and returns a client for it.
func setupAPI(t *testing.T) (*apiclient.Client, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	apiServer, err := server.NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)
	api := httptest.NewServer(adaptor.FiberApp(apiServer.NewApp()))
	t.Cleanup(api.Close)

	return apiclient.New(api.URL + "/api"), db
}

// setupStack points the web frontend at a real API through the client.
func setupStack(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	client, db := setupAPI(t)
	return NewServer(testConfig(), client.Posts, client.Authors).NewApp(), db
}

var errAPIDown = errors.New("connection reset by peer")

// flakyReads passes writes through to the API but fails Get, and List too
// when failList is set.
type flakyReads[T, F any] struct {
	screen.Collection[T, F]
	failList bool
}

func (f flakyReads[T, F]) Get(context.Context, uint) (*apiclient.Response[T], error) {
	return nil, errAPIDown
}

func (f flakyReads[T, F]) List(ctx context.Context) (*apiclient.Response[[]T], error) {
	if f.failList {
		return nil, errAPIDown
	}
	return f.Collection.List(ctx)
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	return send(t, app, httptest.NewRequest(http.MethodGet, path, nil))
}

func submit(t *testing.T, app *fiber.App, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func seedAuthor(t *testing.T, db *gorm.DB, first, last string) models.Author {
	t.Helper()
	a := models.Author{
		FirstName:   first,
		LastName:    last,
		Email:       strings.ToLower(first) + "@example.com",
		PhoneNumber: "555-0100",
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func seedPost(t *testing.T, db *gorm.DB, author models.Author, title, content string) models.Post {
	t.Helper()
	p := models.Post{Title: title, Content: content, AuthorID: author.ID}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestLivenessCheck(t *testing.T) {
	app, _ := setupStack(t)

	resp, body := get(t, app, "/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"up"`)
}

func TestPostListPage(t *testing.T) {
	app, db := setupStack(t)

	t.Run("empty", func(t *testing.T) {
		resp, body := get(t, app, "/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "📝 Blog Application")
		assert.Contains(t, body, "No posts found.")
		assert.Contains(t, body, "Create your first post!")
	})

	t.Run("rows with author names and previews", func(t *testing.T) {
		ada := seedAuthor(t, db, "Ada", "Lovelace")
		seedPost(t, db, ada, "Engines", strings.Repeat("z", 250))

		resp, body := get(t, app, "/posts")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Engines")
		assert.Contains(t, body, "By Ada Lovelace")
		assert.Contains(t, body, strings.Repeat("z", 200)+"...")
		assert.NotContains(t, body, strings.Repeat("z", 201))
	})
}

// assertDelayedRedirect checks the page moves on to path after the success
// message has been up for the full delay.
func assertDelayedRedirect(t *testing.T, body, path string) {
	t.Helper()
	assert.Contains(t, body, `window.location.assign("`+path+`"); }, 1500);`)
	assert.Contains(t, body, `<noscript><meta http-equiv="refresh" content="2; url=`+path+`"></noscript>`)
}

func TestCreateAuthorThenPost(t *testing.T) {
	app, db := setupStack(t)

	resp, body := submit(t, app, "/authors/create", url.Values{
		"first_name":   {"Ada"},
		"last_name":    {"Lovelace"},
		"email":        {"ada@example.com"},
		"phone_number": {"555-0100"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, screen.MsgAuthorCreated)

	var author models.Author
	require.NoError(t, db.First(&author).Error)
	assertDelayedRedirect(t, body, "/authors/"+itoa(author.ID))

	resp, body = submit(t, app, "/posts/create", url.Values{
		"title":   {"Notes"},
		"content": {"First line\nSecond line"},
		"author":  {itoa(author.ID)},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, screen.MsgPostCreated)

	var post models.Post
	require.NoError(t, db.First(&post).Error)
	assertDelayedRedirect(t, body, "/posts/"+itoa(post.ID))
	assert.Equal(t, author.ID, post.AuthorID)

	resp, body = get(t, app, "/posts/"+itoa(post.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "About the Author")
	assert.Contains(t, body, "<p>First line</p>")
	assert.Contains(t, body, "<p>Second line</p>")
	assert.Contains(t, body, "Email: ada@example.com")

	resp, body = get(t, app, "/authors/"+itoa(author.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Posts by Ada (1)")
	assert.Contains(t, body, "Create Post for Ada")
}

func TestCreatePostPage(t *testing.T) {
	app, db := setupStack(t)

	t.Run("no authors notice", func(t *testing.T) {
		resp, body := get(t, app, "/posts/create")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "No authors found.")
		assert.Contains(t, body, "Create Post")
	})

	t.Run("missing fields keep the form and create nothing", func(t *testing.T) {
		ada := seedAuthor(t, db, "Ada", "Lovelace")

		resp, body := submit(t, app, "/posts/create", url.Values{
			"title":  {"Draft title"},
			"author": {itoa(ada.ID)},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, screen.MsgCreatePost)
		assert.Contains(t, body, `value="Draft title"`)
		assert.Contains(t, body, `<option value="`+itoa(ada.ID)+`" selected>Ada Lovelace</option>`)
		assert.NotContains(t, body, "setTimeout")

		var count int64
		db.Model(&models.Post{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("server rejection shows the failure message", func(t *testing.T) {
		resp, body := submit(t, app, "/posts/create", url.Values{
			"title":   {"Orphan"},
			"content": {"Body"},
			"author":  {"999"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, screen.MsgCreatePost)
		assert.Contains(t, body, `value="Orphan"`)
	})
}

func TestEditPostPage(t *testing.T) {
	app, db := setupStack(t)
	ada := seedAuthor(t, db, "Ada", "Lovelace")
	grace := seedAuthor(t, db, "Grace", "Hopper")
	post := seedPost(t, db, ada, "Old title", "Old body")

	resp, body := get(t, app, "/posts/"+itoa(post.ID)+"/edit")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="Old title"`)
	assert.Contains(t, body, `<option value="`+itoa(ada.ID)+`" selected>`)
	assert.Contains(t, body, "Update Post")

	resp, body = submit(t, app, "/posts/"+itoa(post.ID)+"/edit", url.Values{
		"title":   {"New title"},
		"content": {"New body"},
		"author":  {itoa(grace.ID)},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, screen.MsgPostUpdated)
	assertDelayedRedirect(t, body, "/posts/"+itoa(post.ID))

	var updated models.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, grace.ID, updated.AuthorID)
}

func TestDeletePostFromList(t *testing.T) {
	app, db := setupStack(t)
	ada := seedAuthor(t, db, "Ada", "Lovelace")
	keep := seedPost(t, db, ada, "Keep me", "body")
	drop := seedPost(t, db, ada, "Drop me", "body")

	t.Run("declined prompt leaves the post", func(t *testing.T) {
		resp, _ := submit(t, app, "/posts", url.Values{
			"action": {"delete"},
			"id":     {itoa(drop.ID)},
		})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/posts", resp.Header.Get("Location"))

		_, body := get(t, app, "/posts")
		assert.Contains(t, body, "Drop me")
	})

	t.Run("confirmed delete redirects to the list", func(t *testing.T) {
		resp, _ := submit(t, app, "/posts", url.Values{
			"action":    {"delete"},
			"id":        {itoa(drop.ID)},
			"confirmed": {"yes"},
		})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/posts", resp.Header.Get("Location"))

		_, body := get(t, app, "/posts")
		assert.NotContains(t, body, "Drop me")
		assert.Contains(t, body, "Keep me")

		var count int64
		db.Model(&models.Post{}).Where("id = ?", keep.ID).Count(&count)
		assert.Equal(t, int64(1), count)
		db.Model(&models.Post{}).Where("id = ?", drop.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("failed delete renders the list with the error", func(t *testing.T) {
		resp, body := submit(t, app, "/posts", url.Values{
			"action":    {"delete"},
			"id":        {itoa(drop.ID)},
			"confirmed": {"yes"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("Location"))
		assert.Contains(t, body, screen.MsgDeletePost)
		assert.Contains(t, body, "Keep me")
	})
}

func TestDeleteAuthorFromList(t *testing.T) {
	app, db := setupStack(t)
	ada := seedAuthor(t, db, "Ada", "Lovelace")
	seedAuthor(t, db, "Grace", "Hopper")

	resp, _ := submit(t, app, "/authors", url.Values{
		"action":    {"delete"},
		"id":        {itoa(ada.ID)},
		"confirmed": {"yes"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/authors", resp.Header.Get("Location"))

	resp, body := submit(t, app, "/authors", url.Values{
		"action":    {"delete"},
		"id":        {itoa(ada.ID)},
		"confirmed": {"yes"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, screen.MsgDeleteAuthor)
	assert.Contains(t, body, "Grace Hopper")
	assert.NotContains(t, body, "Ada Lovelace")
}

func TestDeleteAuthorFromDetail(t *testing.T) {
	app, db := setupStack(t)
	ada := seedAuthor(t, db, "Ada", "Lovelace")
	seedPost(t, db, ada, "One", "body")
	seedPost(t, db, ada, "Two", "body")

	resp, _ := submit(t, app, "/authors/"+itoa(ada.ID), url.Values{
		"action":    {"delete"},
		"confirmed": {"yes"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/authors", resp.Header.Get("Location"))

	var posts int64
	db.Model(&models.Post{}).Count(&posts)
	assert.Zero(t, posts)
}

func TestDeletePostFromDetailRedirects(t *testing.T) {
	app, db := setupStack(t)
	ada := seedAuthor(t, db, "Ada", "Lovelace")
	post := seedPost(t, db, ada, "Gone soon", "body")

	resp, _ := submit(t, app, "/posts/"+itoa(post.ID), url.Values{
		"action":    {"delete"},
		"confirmed": {"yes"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/posts", resp.Header.Get("Location"))
}

func TestFailedFetchRendersError(t *testing.T) {
	app, db := setupStack(t)
	seedAuthor(t, db, "Ada", "Lovelace")

	tests := []struct {
		path    string
		message string
	}{
		{"/posts/abc", screen.MsgFetchPost},
		{"/posts/404", screen.MsgFetchPost},
		{"/posts/404/edit", screen.MsgFetchPostData},
		{"/authors/0", screen.MsgFetchAuthorData},
		{"/authors/404/edit", screen.MsgFetchAuthorData},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, app, tt.path)
			assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
			assert.Contains(t, body, tt.message)
			assert.Contains(t, body, "Back to Posts")
		})
	}
}

func TestAPIUnavailable(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()

	client := apiclient.New(down.URL + "/api")
	app := NewServer(testConfig(), client.Posts, client.Authors).NewApp()

	resp, body := get(t, app, "/posts")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, screen.MsgFetchPosts)

	resp, body = get(t, app, "/authors")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, screen.MsgFetchAuthors)

	resp, _ = get(t, app, "/authors/create")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEditAuthorPage(t *testing.T) {
	app, db := setupStack(t)
	ada := seedAuthor(t, db, "Ada", "Lovelace")

	resp, body := get(t, app, "/authors/"+itoa(ada.ID)+"/edit")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="Lovelace"`)

	resp, body = submit(t, app, "/authors/"+itoa(ada.ID)+"/edit", url.Values{
		"first_name":   {"Ada"},
		"last_name":    {"King"},
		"email":        {"ada@example.com"},
		"phone_number": {"555-0100"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, screen.MsgAuthorUpdated)
	assertDelayedRedirect(t, body, "/authors/"+itoa(ada.ID))

	var updated models.Author
	require.NoError(t, db.First(&updated, ada.ID).Error)
	assert.Equal(t, "King", updated.LastName)
}

func TestEditSubmitDoesNotRefetch(t *testing.T) {
	client, db := setupAPI(t)
	ada := seedAuthor(t, db, "Ada", "Lovelace")
	grace := seedAuthor(t, db, "Grace", "Hopper")
	post := seedPost(t, db, ada, "Old title", "Old body")

	posts := flakyReads[models.Post, models.PostFields]{Collection: client.Posts}
	authors := flakyReads[models.Author, models.AuthorFields]{Collection: client.Authors}
	app := NewServer(testConfig(), posts, authors).NewApp()

	resp, _ := get(t, app, "/posts/"+itoa(post.ID)+"/edit")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp, body := submit(t, app, "/posts/"+itoa(post.ID)+"/edit", url.Values{
		"title":   {"My Typed Title"},
		"content": {"Typed body"},
		"author":  {itoa(grace.ID)},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, screen.MsgPostUpdated)
	assertDelayedRedirect(t, body, "/posts/"+itoa(post.ID))

	var updated models.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, "My Typed Title", updated.Title)
	assert.Equal(t, grace.ID, updated.AuthorID)

	resp, body = submit(t, app, "/authors/"+itoa(ada.ID)+"/edit", url.Values{
		"first_name":   {"Ada"},
		"last_name":    {"King"},
		"email":        {"ada@example.com"},
		"phone_number": {"555-0100"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, screen.MsgAuthorUpdated)

	var author models.Author
	require.NoError(t, db.First(&author, ada.ID).Error)
	assert.Equal(t, "King", author.LastName)
}

func TestEditSubmitKeepsTypedValuesWithoutPicklist(t *testing.T) {
	client, db := setupAPI(t)
	ada := seedAuthor(t, db, "Ada", "Lovelace")
	post := seedPost(t, db, ada, "Old title", "Old body")

	posts := flakyReads[models.Post, models.PostFields]{Collection: client.Posts}
	authors := flakyReads[models.Author, models.AuthorFields]{Collection: client.Authors, failList: true}
	app := NewServer(testConfig(), posts, authors).NewApp()

	resp, body := submit(t, app, "/posts/"+itoa(post.ID)+"/edit", url.Values{
		"title":   {"My Typed Title"},
		"content": {"Typed body"},
		"author":  {"999"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, screen.MsgUpdatePost)
	assert.Contains(t, body, `value="My Typed Title"`)
	assert.Contains(t, body, "Typed body</textarea>")
	assert.Contains(t, body, `<option value="999" selected>Author #999</option>`)
	assert.NotContains(t, body, "setTimeout")

	var unchanged models.Post
	require.NoError(t, db.First(&unchanged, post.ID).Error)
	assert.Equal(t, "Old title", unchanged.Title)
}
