package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/mocks"
	"github.com/portfolio-api/internal/service"
)

func newLoader(t *testing.T) (*Loader, *service.Services) {
	t.Helper()
	cfg := &config.Config{Upload: config.UploadConfig{Dir: t.TempDir(), MaxUploadSize: 1024}}
	svcs := service.NewServices(mocks.NewStore().Repositories(), cfg, zerolog.Nop())
	return NewLoader(svcs, zerolog.Nop()), svcs
}

func TestParsePost(t *testing.T) {
	doc := `---
title: Building a Portfolio API
slug: portfolio-api
tags: [Programming, Tutorial]
published: true
---

# Intro

Hello.
`
	in, err := ParsePost(strings.NewReader(doc), "ignored.md")
	if err != nil {
		t.Fatalf("ParsePost failed: %v", err)
	}
	if *in.Title != "Building a Portfolio API" {
		t.Errorf("Unexpected title %q", *in.Title)
	}
	if in.Slug == nil || *in.Slug != "portfolio-api" {
		t.Errorf("Unexpected slug %v", in.Slug)
	}
	if in.Tags == nil || len(*in.Tags) != 2 {
		t.Errorf("Unexpected tags %v", in.Tags)
	}
	if in.IsPublished == nil || !*in.IsPublished {
		t.Error("Expected published post")
	}
	if *in.Content != "# Intro\n\nHello." {
		t.Errorf("Unexpected content %q", *in.Content)
	}
	if in.Author != nil || in.ImageURL != nil {
		t.Error("Absent front matter fields should stay nil")
	}
}

func TestParsePost_TitleFromFilename(t *testing.T) {
	in, err := ParsePost(strings.NewReader("Just a body"), "posts/first-steps.md")
	if err != nil {
		t.Fatalf("ParsePost failed: %v", err)
	}
	if *in.Title != "first-steps" {
		t.Errorf("Expected title from file name, got %q", *in.Title)
	}
	if in.IsPublished != nil {
		t.Error("Missing published flag should leave the post a draft")
	}
}

func TestParseContent(t *testing.T) {
	doc := `
projects:
  - name: Site
    description: Personal site
    category: Web Application
    technologiesUsed: [Go, MongoDB]
    startDate: 2024-01-02
skills:
  - name: Go
    proficiency: Expert
    category: DevOps
`
	c, err := ParseContent(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseContent failed: %v", err)
	}
	if len(c.Projects) != 1 || len(c.Skills) != 1 {
		t.Fatalf("Expected 1 project and 1 skill, got %d and %d", len(c.Projects), len(c.Skills))
	}
	if c.Projects[0].StartDate == nil || c.Projects[0].StartDate.Year() != 2024 {
		t.Errorf("Unexpected start date %v", c.Projects[0].StartDate)
	}

	if _, err := ParseContent(strings.NewReader("projects:\n  - nmae: typo\n")); err == nil {
		t.Error("Unknown fields should be rejected")
	}

	empty, err := ParseContent(strings.NewReader(""))
	if err != nil || len(empty.Projects) != 0 {
		t.Errorf("Empty file should parse to empty content, got %v %v", empty, err)
	}
}

func TestLoadContentFile(t *testing.T) {
	loader, svcs := newLoader(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "content.yaml")
	doc := `
projects:
  - name: Site
    description: Personal site
    category: Web Application
  - name: Site
    description: Same name again
    category: Web Application
  - name: Broken
skills:
  - name: Go
    proficiency: Expert
    category: DevOps
  - name: go
    proficiency: Advanced
    category: DevOps
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := loader.LoadContentFile(ctx, path)
	if err != nil {
		t.Fatalf("LoadContentFile failed: %v", err)
	}
	want := Summary{Created: 2, Skipped: 2, Failed: 1}
	if sum != want {
		t.Errorf("Expected %+v, got %+v", want, sum)
	}
	if n := len(svcs.Skill.List(ctx)); n != 1 {
		t.Errorf("Expected 1 skill, got %d", n)
	}
}

func TestLoadPostsDir(t *testing.T) {
	loader, svcs := newLoader(t)
	ctx := context.Background()

	dir := t.TempDir()
	files := map[string]string{
		"a-first.md":  "---\ntitle: First\npublished: true\n---\nBody one",
		"b-second.md": "---\ntitle: Second\n---\nBody two",
		"notes.txt":   "not a post",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := loader.LoadPostsDir(ctx, dir)
	if err != nil {
		t.Fatalf("LoadPostsDir failed: %v", err)
	}
	if sum.Created != 2 {
		t.Errorf("Expected 2 created, got %+v", sum)
	}

	again, err := loader.LoadPostsDir(ctx, dir)
	if err != nil {
		t.Fatalf("LoadPostsDir failed: %v", err)
	}
	if again.Created != 0 || again.Skipped != 2 {
		t.Errorf("Second load should skip existing drafts and posts, got %+v", again)
	}

	if _, err := svcs.Blog.Get(ctx, "first", false); err != nil {
		t.Errorf("Published post should be readable: %v", err)
	}
}
