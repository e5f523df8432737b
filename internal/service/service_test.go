package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/domain"
	"github.com/portfolio-api/internal/mocks"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxUploadSize: 1024,
			Dir:           t.TempDir(),
			URLPrefix:     "/uploads",
			DefaultFolder: "blogs",
		},
		Site: config.SiteConfig{
			BaseURL:  "https://example.com",
			Title:    "Portfolio",
			Author:   "Jane",
			FeedSize: 20,
		},
	}
}

func setup(t *testing.T) (*service.Services, *mocks.Store, *testClock) {
	t.Helper()
	store := mocks.NewStore()
	clock := &testClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svcs := service.NewServices(store.Repositories(), testConfig(t), zerolog.Nop(), service.WithClock(clock.now))
	return svcs, store, clock
}

func str(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func newPost(title string, published bool) *models.BlogPostInput {
	return &models.BlogPostInput{
		Title:       str(title),
		Content:     str("Body of " + title),
		IsPublished: boolPtr(published),
	}
}

func newProject(name string) *models.ProjectInput {
	return &models.ProjectInput{
		Name:        str(name),
		Description: str("A project"),
		Category:    str("Web Application"),
	}
}

// Blog posts

func TestBlogService_PublishedListingWithLimit(t *testing.T) {
	svcs, _, clock := setup(t)
	ctx := context.Background()

	var published []*models.BlogPost
	for i := 0; i < 5; i++ {
		p, err := svcs.Blog.Create(ctx, newPost(fmt.Sprintf("Published %d", i), true))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		published = append(published, p)
		clock.advance(time.Hour)
	}
	for i := 0; i < 2; i++ {
		if _, err := svcs.Blog.Create(ctx, newPost(fmt.Sprintf("Draft %d", i), false)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		clock.advance(time.Hour)
	}

	got := svcs.Blog.List(ctx, models.ListFilter{PublishedOnly: true, Limit: 3})
	if len(got) != 3 {
		t.Fatalf("Expected 3 posts, got %d", len(got))
	}
	for i, want := range []*models.BlogPost{published[4], published[3], published[2]} {
		if got[i].ID != want.ID {
			t.Errorf("Position %d: expected %q, got %q", i, want.Title, got[i].Title)
		}
		if !got[i].IsPublished {
			t.Errorf("Position %d is not published", i)
		}
	}

	all := svcs.Blog.List(ctx, models.ListFilter{})
	if len(all) != 7 {
		t.Errorf("Expected 7 posts without filter, got %d", len(all))
	}
	if all[0].Title != "Draft 1" {
		t.Errorf("Expected most recently updated post first, got %q", all[0].Title)
	}
}

func TestBlogService_PublishedAtIsSticky(t *testing.T) {
	svcs, _, clock := setup(t)
	ctx := context.Background()

	post, err := svcs.Blog.Create(ctx, newPost("Sticky", false))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.IsPublished || post.PublishedAt != nil {
		t.Fatalf("Draft should have no publishedAt, got %v", post.PublishedAt)
	}

	clock.advance(time.Hour)
	t1 := clock.now()
	post, err = svcs.Blog.SetPublished(ctx, post.ID, true)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if post.PublishedAt == nil || !post.PublishedAt.Equal(t1) {
		t.Fatalf("Expected publishedAt %v, got %v", t1, post.PublishedAt)
	}

	clock.advance(time.Hour)
	post, err = svcs.Blog.Update(ctx, post.ID, &models.BlogPostInput{IsPublished: boolPtr(false)})
	if err != nil {
		t.Fatalf("Unpublish failed: %v", err)
	}
	if post.IsPublished {
		t.Error("Post should be unpublished")
	}
	if post.PublishedAt == nil || !post.PublishedAt.Equal(t1) {
		t.Errorf("Unpublish must keep publishedAt %v, got %v", t1, post.PublishedAt)
	}

	clock.advance(time.Hour)
	post, err = svcs.Blog.SetPublished(ctx, post.ID, true)
	if err != nil {
		t.Fatalf("Republish failed: %v", err)
	}
	if !post.PublishedAt.Equal(t1) {
		t.Errorf("Republish must keep publishedAt %v, got %v", t1, post.PublishedAt)
	}

	stored, err := svcs.Blog.Get(ctx, post.ID, true)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !stored.PublishedAt.Equal(t1) {
		t.Errorf("Stored publishedAt changed to %v", stored.PublishedAt)
	}
}

func TestBlogService_CreatePublished(t *testing.T) {
	svcs, _, clock := setup(t)

	post, err := svcs.Blog.Create(context.Background(), newPost("Live", true))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !post.IsPublished || post.PublishedAt == nil || !post.PublishedAt.Equal(clock.now()) {
		t.Errorf("Expected published post with publishedAt %v, got %+v", clock.now(), post)
	}
}

func TestBlogService_SlugDerivation(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()

	first, err := svcs.Blog.Create(ctx, newPost("Hello, World!", false))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.Slug != "hello-world" {
		t.Errorf("Expected slug 'hello-world', got %q", first.Slug)
	}

	second, err := svcs.Blog.Create(ctx, newPost("Hello World", false))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.Slug != "hello-world-2" {
		t.Errorf("Expected suffixed slug 'hello-world-2', got %q", second.Slug)
	}

	in := newPost("Ignored Title", false)
	in.Slug = str("My Custom Slug!!")
	custom, err := svcs.Blog.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if custom.Slug != "my-custom-slug" {
		t.Errorf("Expected 'my-custom-slug', got %q", custom.Slug)
	}

	fallback, err := svcs.Blog.Create(ctx, newPost("!!!", false))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !regexp.MustCompile(`^post-\d+$`).MatchString(fallback.Slug) {
		t.Errorf("Expected synthetic slug, got %q", fallback.Slug)
	}
}

func TestBlogService_UpdateSlug(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()

	post, err := svcs.Blog.Create(ctx, newPost("Original Title", true))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	post, err = svcs.Blog.Update(ctx, post.ID, &models.BlogPostInput{Title: str("Renamed")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if post.Slug != "original-title" {
		t.Errorf("Title change alone must keep slug, got %q", post.Slug)
	}

	post, err = svcs.Blog.Update(ctx, post.ID, &models.BlogPostInput{Slug: str("")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if post.Slug != "renamed" {
		t.Errorf("Empty slug should re-derive from title, got %q", post.Slug)
	}

	post, err = svcs.Blog.Update(ctx, post.ID, &models.BlogPostInput{Slug: str("renamed")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if post.Slug != "renamed" {
		t.Errorf("A post must not collide with itself, got %q", post.Slug)
	}
}

func TestBlogService_GetByIDOrSlug(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()

	live, _ := svcs.Blog.Create(ctx, newPost("Live Post", true))
	draft, _ := svcs.Blog.Create(ctx, newPost("Draft Post", false))

	tests := []struct {
		name          string
		key           string
		includeDrafts bool
		wantID        string
	}{
		{name: "published by slug", key: "live-post", wantID: live.ID},
		{name: "published by id", key: live.ID, wantID: live.ID},
		{name: "draft by id", key: draft.ID, wantID: draft.ID},
		{name: "draft by slug hidden", key: "draft-post"},
		{name: "draft by slug for admin", key: "draft-post", includeDrafts: true, wantID: draft.ID},
		{name: "unknown slug", key: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svcs.Blog.Get(ctx, tt.key, tt.includeDrafts)
			if tt.wantID == "" {
				if !errors.Is(err, domain.ErrNotFound) {
					t.Fatalf("Expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("Expected %s, got %s", tt.wantID, got.ID)
			}
		})
	}
}

func TestBlogService_ValidationLeavesStoreUntouched(t *testing.T) {
	svcs, store, _ := setup(t)
	ctx := context.Background()

	_, err := svcs.Blog.Create(ctx, &models.BlogPostInput{Title: str("  "), Tags: &[]string{"Rust"}})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(vErr.Fields) != 3 {
		t.Errorf("Expected title, content and tag errors, got %v", vErr.Fields)
	}
	if len(store.Blogs.Posts) != 0 {
		t.Errorf("Invalid post was stored")
	}

	post, _ := svcs.Blog.Create(ctx, newPost("Valid", false))
	_, err = svcs.Blog.Update(ctx, post.ID, &models.BlogPostInput{Content: str("")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if store.Blogs.Posts[post.ID].Content != "Body of Valid" {
		t.Error("Failed update modified the stored post")
	}
}

func TestBlogService_RejectsBlankTag(t *testing.T) {
	svcs, store, _ := setup(t)

	for _, tags := range [][]string{{""}, {"News", "   "}} {
		in := newPost("Tagged", false)
		in.Tags = &tags
		_, err := svcs.Blog.Create(context.Background(), in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Tags %q: expected validation error, got %v", tags, err)
		}
	}
	if len(store.Blogs.Posts) != 0 {
		t.Error("Post with a blank tag was stored")
	}
}

func TestBlogService_GetBySlugShapedLikeID(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()

	in := newPost("Looks Like An ID", true)
	in.Slug = str("123e4567-e89b-12d3-a456-426614174000")
	post, err := svcs.Blog.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svcs.Blog.Get(ctx, "123e4567-e89b-12d3-a456-426614174000", false)
	if err != nil {
		t.Fatalf("Get by id-shaped slug failed: %v", err)
	}
	if got.ID != post.ID {
		t.Errorf("Expected %s, got %s", post.ID, got.ID)
	}

	if _, err := svcs.Blog.Get(ctx, "7d0b3c6e-3f2a-4c55-9b8e-2f6f3b1f0a11", false); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Unknown id: expected ErrNotFound, got %v", err)
	}
}

// Projects

func TestProjectService_CreateDefaults(t *testing.T) {
	svcs, _, clock := setup(t)

	project, err := svcs.Project.Create(context.Background(), newProject("Site"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if project.Status != models.DefaultProjectStatus {
		t.Errorf("Expected default status, got %q", project.Status)
	}
	if project.IsPublished || project.IsFeatured || project.PublishedAt != nil {
		t.Errorf("Unexpected publish state: %+v", project)
	}
	if project.TechnologiesUsed == nil {
		t.Error("technologiesUsed should be an empty list, not nil")
	}
	if !project.CreatedAt.Equal(clock.now()) || !project.UpdatedAt.Equal(clock.now()) {
		t.Error("Timestamps should be set from the clock")
	}
}

func TestProjectService_PartialUpdate(t *testing.T) {
	svcs, _, clock := setup(t)
	ctx := context.Background()

	in := newProject("Site")
	in.TechnologiesUsed = &[]string{"Go", "Postgres"}
	in.ProjectURL = str("https://example.com")
	created, err := svcs.Project.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	clock.advance(time.Minute)
	updated, err := svcs.Project.Update(ctx, created.ID, &models.ProjectInput{
		Status:     str("Completed"),
		IsFeatured: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Status != "Completed" || !updated.IsFeatured {
		t.Errorf("Supplied fields not applied: %+v", updated)
	}
	if updated.Name != "Site" || updated.ProjectURL != "https://example.com" || len(updated.TechnologiesUsed) != 2 {
		t.Errorf("Absent fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updatedAt should be refreshed")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must not change")
	}

	_, err = svcs.Project.Update(ctx, created.ID, &models.ProjectInput{Name: str("")})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Fields[0].Field != "name" {
		t.Errorf("Expected name validation error, got %v", err)
	}
}

func TestProjectService_PublishedAtIsSticky(t *testing.T) {
	svcs, _, clock := setup(t)
	ctx := context.Background()

	project, _ := svcs.Project.Create(ctx, newProject("Site"))
	t1 := clock.now()
	project, _ = svcs.Project.SetPublished(ctx, project.ID, true)
	clock.advance(time.Hour)
	project, _ = svcs.Project.SetPublished(ctx, project.ID, false)
	clock.advance(time.Hour)
	project, err := svcs.Project.SetPublished(ctx, project.ID, true)
	if err != nil {
		t.Fatalf("SetPublished failed: %v", err)
	}
	if project.PublishedAt == nil || !project.PublishedAt.Equal(t1) {
		t.Errorf("Expected publishedAt %v, got %v", t1, project.PublishedAt)
	}
}

func TestProjectService_DuplicateName(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()

	if _, err := svcs.Project.Create(ctx, newProject("Site")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := svcs.Project.Create(ctx, newProject("Site"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), `"Site"`) {
		t.Errorf("Duplicate error should name the value, got %q", err.Error())
	}
}

func TestProjectService_NotFound(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()
	missing := "7d0b3c6e-3f2a-4c55-9b8e-2f6f3b1f0a11"

	for _, id := range []string{missing, "not-an-id"} {
		if _, err := svcs.Project.Get(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Get(%q): expected ErrNotFound, got %v", id, err)
		}
		if _, err := svcs.Project.Update(ctx, id, newProject("X")); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Update(%q): expected ErrNotFound, got %v", id, err)
		}
		if _, err := svcs.Project.Delete(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Delete(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestProjectService_DeleteReturnsRecord(t *testing.T) {
	svcs, store, _ := setup(t)
	ctx := context.Background()

	created, _ := svcs.Project.Create(ctx, newProject("Gone"))
	deleted, err := svcs.Project.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.Name != "Gone" {
		t.Errorf("Expected deleted record, got %+v", deleted)
	}
	if len(store.Projects.Projects) != 0 {
		t.Error("Project should be removed")
	}
	if _, err := svcs.Project.Delete(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Second delete: expected ErrNotFound, got %v", err)
	}
}

func TestProjectService_ListFilters(t *testing.T) {
	svcs, _, clock := setup(t)
	ctx := context.Background()

	for i, flags := range []struct{ published, featured bool }{
		{true, true}, {true, false}, {false, true}, {false, false},
	} {
		in := newProject(fmt.Sprintf("P%d", i))
		in.IsPublished = boolPtr(flags.published)
		in.IsFeatured = boolPtr(flags.featured)
		if _, err := svcs.Project.Create(ctx, in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		clock.advance(time.Minute)
	}

	tests := []struct {
		filter models.ListFilter
		want   []string
	}{
		{models.ListFilter{}, []string{"P3", "P2", "P1", "P0"}},
		{models.ListFilter{PublishedOnly: true}, []string{"P1", "P0"}},
		{models.ListFilter{FeaturedOnly: true}, []string{"P2", "P0"}},
		{models.ListFilter{PublishedOnly: true, FeaturedOnly: true}, []string{"P0"}},
		{models.ListFilter{Limit: 1}, []string{"P3"}},
	}
	for _, tt := range tests {
		got := svcs.Project.List(ctx, tt.filter)
		names := make([]string, len(got))
		for i, p := range got {
			names[i] = p.Name
		}
		if strings.Join(names, ",") != strings.Join(tt.want, ",") {
			t.Errorf("List(%+v) = %v, want %v", tt.filter, names, tt.want)
		}
	}
}

// Skills

func TestSkillService_ListOrder(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()

	for _, s := range []struct{ name, level string }{
		{"Docker", "Familiar"},
		{"Go", "Expert"},
		{"SQL", "Advanced"},
		{"Bash", "Expert"},
		{"Rust", "Beginner"},
		{"Python", "Intermediate"},
	} {
		_, err := svcs.Skill.Create(ctx, &models.SkillInput{
			Name: str(s.name), Proficiency: str(s.level), Category: str("DevOps"),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	var names []string
	for _, s := range svcs.Skill.List(ctx) {
		names = append(names, s.Name)
	}
	want := "Bash,Go,SQL,Python,Docker,Rust"
	if strings.Join(names, ",") != want {
		t.Errorf("Expected order %s, got %v", want, names)
	}
}

func TestSkillService_InvalidProficiency(t *testing.T) {
	svcs, _, _ := setup(t)
	_, err := svcs.Skill.Create(context.Background(), &models.SkillInput{
		Name: str("Go"), Proficiency: str("Guru"), Category: str("DevOps"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

// Storage faults

func TestListDegradesOnStorageFault(t *testing.T) {
	svcs, store, _ := setup(t)
	ctx := context.Background()
	fault := errors.New("connection refused")
	store.Projects.Err = fault
	store.Skills.Err = fault
	store.Blogs.Err = fault

	if got := svcs.Project.List(ctx, models.ListFilter{}); got == nil || len(got) != 0 {
		t.Errorf("Expected empty project list, got %v", got)
	}
	if got := svcs.Skill.List(ctx); got == nil || len(got) != 0 {
		t.Errorf("Expected empty skill list, got %v", got)
	}
	if got := svcs.Blog.List(ctx, models.ListFilter{PublishedOnly: true}); got == nil || len(got) != 0 {
		t.Errorf("Expected empty blog list, got %v", got)
	}

	_, err := svcs.Blog.Get(ctx, "some-slug", false)
	if !errors.Is(err, domain.ErrStorage) || !errors.Is(err, fault) {
		t.Errorf("Get should surface the storage fault, got %v", err)
	}
	_, err = svcs.Project.Create(ctx, newProject("Site"))
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("Create should surface the storage fault, got %v", err)
	}
}

// Uploads

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["file"][0]
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func TestUploadService_SaveImage(t *testing.T) {
	store := mocks.NewStore()
	cfg := testConfig(t)
	clock := &testClock{t: time.UnixMilli(1700000000000)}
	svcs := service.NewServices(store.Repositories(), cfg, zerolog.Nop(), service.WithClock(clock.now))

	result, err := svcs.Upload.SaveImage(context.Background(), "", fileHeader(t, "my cover photo.png", pngBytes))
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if result.URL != "/uploads/blogs/1700000000000-my_cover_photo.png" {
		t.Errorf("Unexpected URL %q", result.URL)
	}
	if result.MimeType != "image/png" || !result.Success {
		t.Errorf("Unexpected result %+v", result)
	}

	stored, err := os.ReadFile(filepath.Join(cfg.Upload.Dir, "blogs", result.Filename))
	if err != nil {
		t.Fatalf("Stored file missing: %v", err)
	}
	if !bytes.Equal(stored, pngBytes) {
		t.Error("Stored bytes differ from upload")
	}

	result, err = svcs.Upload.SaveImage(context.Background(), "Projects", fileHeader(t, "shot.png", pngBytes))
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if !strings.HasPrefix(result.URL, "/uploads/projects/") {
		t.Errorf("Expected projects folder, got %q", result.URL)
	}
}

func TestUploadService_Rejects(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()

	_, err := svcs.Upload.SaveImage(ctx, "", fileHeader(t, "fake.png", []byte("just some text, not an image")))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Non-image should be rejected, got %v", err)
	}

	_, err = svcs.Upload.SaveImage(ctx, "", fileHeader(t, "big.png", append(pngBytes, make([]byte, 2048)...)))
	var tooLarge *domain.PayloadTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Errorf("Oversize file should be rejected, got %v", err)
	}

	_, err = svcs.Upload.SaveImage(ctx, "", nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Missing file should be rejected, got %v", err)
	}
}

// Syndication

func TestFeedService_RSSOnlyPublished(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()

	live := newPost("Live Post", true)
	live.Content = str("Hello <script>alert(1)</script>**world**")
	svcs.Blog.Create(ctx, live)
	svcs.Blog.Create(ctx, newPost("Secret Draft", false))

	rss, err := svcs.Feed.RSS(ctx)
	if err != nil {
		t.Fatalf("RSS failed: %v", err)
	}
	if !strings.Contains(rss, "https://example.com/blog/live-post") {
		t.Error("RSS should link the published post")
	}
	if strings.Contains(rss, "Secret Draft") {
		t.Error("RSS must not contain drafts")
	}
	if strings.Contains(rss, "alert(1)") {
		t.Error("RSS content should be sanitized")
	}

	atom, err := svcs.Feed.Atom(ctx)
	if err != nil {
		t.Fatalf("Atom failed: %v", err)
	}
	if !strings.Contains(atom, "<feed") || strings.Contains(atom, "Secret Draft") {
		t.Errorf("Unexpected atom feed: %s", atom)
	}
}

func TestFeedService_Sitemap(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()
	svcs.Blog.Create(ctx, newPost("Mapped", true))
	svcs.Blog.Create(ctx, newPost("Hidden", false))
	live := newProject("Shown Project")
	live.IsPublished = boolPtr(true)
	shown, _ := svcs.Project.Create(ctx, live)
	draft, _ := svcs.Project.Create(ctx, newProject("Draft Project"))

	var buf bytes.Buffer
	if err := svcs.Feed.Sitemap(ctx, &buf); err != nil {
		t.Fatalf("Sitemap failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"https://example.com/projects",
		"https://example.com/blog/mapped",
		"https://example.com/projects/" + shown.ID,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Sitemap missing %s", want)
		}
	}
	if strings.Contains(out, "hidden") || strings.Contains(out, draft.ID) {
		t.Error("Sitemap must not list drafts")
	}
}

func TestFeedService_RenderMarkdown(t *testing.T) {
	svcs, _, _ := setup(t)

	html, err := svcs.Feed.RenderMarkdown("# Title\n\n<img src=\"cover.png\" onerror=\"alert(1)\">\n\n| a |\n|---|\n| b |\n")
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Title") {
		t.Errorf("Expected heading, got %s", html)
	}
	if strings.Contains(html, "onerror") {
		t.Errorf("Event handler should be stripped, got %s", html)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("Expected GFM table, got %s", html)
	}
}

// Export

func TestExportService_Stream(t *testing.T) {
	svcs, _, _ := setup(t)
	ctx := context.Background()
	for _, name := range []string{"Go", "SQL"} {
		svcs.Skill.Create(ctx, &models.SkillInput{Name: str(name), Proficiency: str("Expert"), Category: str("DevOps")})
	}

	w := httptest.NewRecorder()
	if err := svcs.Export.Stream(ctx, w, service.CollectionSkills, service.FormatNDJSON); err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected 2 NDJSON lines, got %d", len(lines))
	}

	w = httptest.NewRecorder()
	if err := svcs.Export.Stream(ctx, w, service.CollectionSkills, service.FormatCSV); err != nil {
		t.Fatalf("CSV stream failed: %v", err)
	}
	if !strings.HasPrefix(w.Body.String(), "id,name,proficiency,category") {
		t.Errorf("Unexpected CSV header: %s", w.Body.String())
	}

	if err := svcs.Export.Stream(ctx, httptest.NewRecorder(), service.CollectionBlogs, service.FormatCSV); err == nil {
		t.Error("CSV export of blogs should fail")
	}

	count, err := svcs.Export.GetCount(ctx, service.CollectionSkills)
	if err != nil || count != 2 {
		t.Errorf("Expected count 2, got %d (%v)", count, err)
	}
}
