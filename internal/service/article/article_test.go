package article

import (
	"context"
	"errors"
	"strings"
	"testing"

	"broadsheet/internal/domain"
	models "broadsheet/internal/domain/models/article"
	articleSvc "broadsheet/internal/domain/services/article"
	"broadsheet/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const publishableBody = `Harbour reopens after the storm.

:::image
src: /img/harbour.jpg
alt: Boats back in the harbour
width: 1600
height: 900
caption: Morning traffic
credit: Staff photographer
:::

Fishing crews returned on Monday.

## What comes next

> "We will rebuild" — The mayor
`

func createArticle(t *testing.T, env *testEnv, title, body string) *models.Article {
	t.Helper()
	a, err := env.articles.CreateArticle(context.Background(), &articleSvc.CreateArticleRequest{
		AuthorID: testAuthorID,
		Title:    title,
		Section:  "Local",
		Body:     body,
	})
	require.NoError(t, err)
	return a
}

func TestCreateArticle(t *testing.T) {
	env := newTestEnv(policy.Strict)

	a := createArticle(t, env, "  Harbour Reopens After Storm ", publishableBody)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Harbour Reopens After Storm", a.Title)
	assert.Equal(t, "harbour-reopens-after-storm", a.Slug)
	assert.Equal(t, models.StatusDraft, a.Status)
	assert.Nil(t, a.PublishedAt)
	// 5 + 5 + 3 + 3 words in text blocks; image fields are not counted
	assert.Equal(t, 16, a.WordCount)
}

func TestCreateArticle_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  articleSvc.CreateArticleRequest
	}{
		{"missing title", articleSvc.CreateArticleRequest{AuthorID: testAuthorID, Body: "x"}},
		{"title too long", articleSvc.CreateArticleRequest{AuthorID: testAuthorID, Title: strings.Repeat("t", 256)}},
		{"bad author", articleSvc.CreateArticleRequest{AuthorID: "not-a-uuid", Title: "T"}},
		{"bad slug", articleSvc.CreateArticleRequest{AuthorID: testAuthorID, Title: "T", Slug: "Not A Slug"}},
		{"title without slug characters", articleSvc.CreateArticleRequest{AuthorID: testAuthorID, Title: "!!!"}},
		{"section too long", articleSvc.CreateArticleRequest{AuthorID: testAuthorID, Title: "T", Section: strings.Repeat("s", 101)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(policy.Strict)
			req := tt.req
			_, err := env.articles.CreateArticle(context.Background(), &req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}
}

func TestGetArticle_ParsesBody(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "Harbour", publishableBody)

	view, err := env.articles.GetArticle(context.Background(), a.ID)
	require.NoError(t, err)

	assert.False(t, view.IsLegacy)
	assert.Empty(t, view.ParseErrors)
	require.Len(t, view.Blocks, 5)
	assert.Equal(t, models.BlockTypeImage, view.Blocks[1].Type())
	assert.Equal(t, models.BlockTypeQuote, view.Blocks[4].Type())

	_, err = env.articles.GetArticle(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateArticle_FromBlocks(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "Legacy piece", "Old text")

	blocks := models.Blocks{
		&models.Paragraph{Content: "New opening"},
		&models.Subheading{Content: "Details"},
		&models.Quote{Content: "Quoted", Attribution: "Source"},
	}
	view, err := env.articles.UpdateArticle(context.Background(), a.ID, &articleSvc.UpdateArticleRequest{Blocks: blocks})
	require.NoError(t, err)

	assert.Equal(t, "New opening\n\n## Details\n\n:::quote\nQuoted\nattribution: Source\n:::\n", view.Body)
	assert.Equal(t, 4, view.WordCount)
	require.Len(t, view.Blocks, 3)
	for i, b := range view.Blocks {
		assert.Equal(t, i, b.BlockOrder())
		assert.NotEmpty(t, b.BlockID())
	}

	stored, err := env.repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Body, stored.Body)
}

func TestUpdateArticle_BodyAndBlocksConflict(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "T", "x")

	body := "y"
	_, err := env.articles.UpdateArticle(context.Background(), a.ID, &articleSvc.UpdateArticleRequest{
		Body:   &body,
		Blocks: models.Blocks{&models.Paragraph{Content: "z"}},
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestInsertMedia(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "Two paragraphs", "First.\n\nSecond.")

	image := &articleSvc.ImageInsert{
		ImageUpload: models.ImageUpload{URL: "/img/a.jpg", Width: 1200, Height: 900},
		Alt:         "A described image",
	}

	// media cannot open the article
	_, err := env.articles.InsertMedia(context.Background(), a.ID, &articleSvc.InsertMediaRequest{Index: 0, Image: image})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "first block")

	res, err := env.articles.InsertMedia(context.Background(), a.ID, &articleSvc.InsertMediaRequest{Index: 1, Image: image})
	require.NoError(t, err)
	require.Len(t, res.Article.Blocks, 3)

	img, ok := res.Article.Blocks[1].(*models.Image)
	require.True(t, ok)
	assert.Equal(t, models.AspectRatio4x3, img.AspectRatio)
	assert.Contains(t, res.Article.Body, ":::image\nsrc: /img/a.jpg\nalt: A described image\nwidth: 1200\nheight: 900\n:::")

	// the stored body re-parses to the same structure
	view, err := env.articles.GetArticle(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, view.ParseErrors)
	assert.Len(t, view.Blocks, 3)
}

func TestInsertMedia_VideoWarning(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "Videos", "One.\n\nTwo.\n\nThree.")

	video := &models.VideoMetadata{Provider: "YouTube", VideoID: "abc"}
	res, err := env.articles.InsertMedia(context.Background(), a.ID, &articleSvc.InsertMediaRequest{Index: 1, Video: video, Caption: "First"})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)

	v := res.Article.Blocks[1].(*models.Video)
	assert.Equal(t, models.VideoProviderYouTube, v.Provider)
	assert.Equal(t, "https://www.youtube.com/embed/abc", v.EmbedURL)

	res, err = env.articles.InsertMedia(context.Background(), a.ID, &articleSvc.InsertMediaRequest{Index: 3, Video: video, Caption: "Second"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warning)
}

func TestInsertMedia_RequestValidation(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "T", "One.\n\nTwo.")

	tests := []struct {
		name string
		req  *articleSvc.InsertMediaRequest
	}{
		{"neither", &articleSvc.InsertMediaRequest{Index: 1}},
		{"both", &articleSvc.InsertMediaRequest{
			Index: 1,
			Image: &articleSvc.ImageInsert{ImageUpload: models.ImageUpload{URL: "/a.jpg", Width: 1, Height: 1}, Alt: "a"},
			Video: &models.VideoMetadata{Provider: "cdn", VideoID: "/v.mp4"},
		}},
		{"blank alt", &articleSvc.InsertMediaRequest{
			Index: 1,
			Image: &articleSvc.ImageInsert{ImageUpload: models.ImageUpload{URL: "/a.jpg", Width: 1, Height: 1}, Alt: "  "},
		}},
		{"zero width", &articleSvc.InsertMediaRequest{
			Index: 1,
			Image: &articleSvc.ImageInsert{ImageUpload: models.ImageUpload{URL: "/a.jpg", Height: 1}, Alt: "a"},
		}},
		{"bad provider", &articleSvc.InsertMediaRequest{Index: 1, Video: &models.VideoMetadata{Provider: "dailymotion", VideoID: "x"}}},
		{"negative index", &articleSvc.InsertMediaRequest{Index: -1, Video: &models.VideoMetadata{Provider: "cdn", VideoID: "/v.mp4"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.articles.InsertMedia(context.Background(), a.ID, tt.req)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}
}

func TestInsertMedia_RefusesBrokenBody(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "Broken", "Intro\n\n:::image\nsrc: /a.jpg\n")

	_, err := env.articles.InsertMedia(context.Background(), a.ID, &articleSvc.InsertMediaRequest{
		Index: 1,
		Video: &models.VideoMetadata{Provider: "cdn", VideoID: "/v.mp4"},
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	stored, _ := env.repo.GetByID(context.Background(), a.ID)
	assert.Equal(t, "Intro\n\n:::image\nsrc: /a.jpg\n", stored.Body)
}

func TestInsertMedia_RefusesBodyThatWouldNotReparse(t *testing.T) {
	env := newTestEnv(policy.Strict)
	body := "Intro paragraph\n:::\nstill intro\n\nSecond paragraph\n:::quote\nnot closed\n\nClosing"
	a := createArticle(t, env, "Stray fences", body)

	before, err := env.articles.GetArticle(context.Background(), a.ID)
	require.NoError(t, err)
	require.True(t, before.IsLegacy)
	require.Empty(t, before.ParseErrors)

	tests := []struct {
		name string
		req  *articleSvc.InsertMediaRequest
	}{
		{"image", &articleSvc.InsertMediaRequest{
			Index: 1,
			Image: &articleSvc.ImageInsert{ImageUpload: models.ImageUpload{URL: "/img/a.jpg", Width: 1200, Height: 900}, Alt: "A harbour"},
		}},
		{"video", &articleSvc.InsertMediaRequest{Index: 1, Video: &models.VideoMetadata{Provider: "cdn", VideoID: "/v.mp4"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.articles.InsertMedia(context.Background(), a.ID, tt.req)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)

			stored, err := env.repo.GetByID(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Equal(t, body, stored.Body)
		})
	}
	assert.Zero(t, env.repo.updates)
}

func TestUpdateArticle_FromBlocksRejectsUnstableText(t *testing.T) {
	image := func() *models.Image {
		return &models.Image{Src: "/img/a.jpg", Alt: "A harbour", Width: 1200, Height: 900}
	}

	tests := []struct {
		name   string
		blocks models.Blocks
	}{
		{"bare delimiter in paragraph", models.Blocks{&models.Paragraph{Content: "Lead\n:::\nmore"}, image()}},
		{"unclosed quote fence in paragraph", models.Blocks{&models.Paragraph{Content: "Lead\n:::quote\nmore"}, image()}},
		{"heading line in paragraph", models.Blocks{&models.Paragraph{Content: "Lead\n## Not a heading"}, image()}},
		{"blank line splits paragraph", models.Blocks{&models.Paragraph{Content: "One\n\nTwo"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(policy.Strict)
			a := createArticle(t, env, "Unstable", "Original text")

			_, err := env.articles.UpdateArticle(context.Background(), a.ID, &articleSvc.UpdateArticleRequest{Blocks: tt.blocks})
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)

			stored, err := env.repo.GetByID(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Equal(t, "Original text", stored.Body)
		})
	}
}

func TestPublishArticle(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "Publishable", publishableBody)

	res, err := env.articles.PublishArticle(context.Background(), a.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPublished, res.Article.Status)
	require.NotNil(t, res.Article.PublishedAt)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, policy.NameStrict, res.Policy)

	stored, err := env.repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, stored.Status)
}

func TestPublishArticle_Blocked(t *testing.T) {
	tests := []struct {
		name          string
		policy        policy.Policy
		body          string
		wantParseErrs bool
		wantRule      models.ValidationErrorType
	}{
		{
			name:          "parse errors",
			policy:        policy.Strict,
			body:          "Intro\n\n:::image\nsrc: /a.jpg\n",
			wantParseErrs: true,
		},
		{
			name:     "starts with media",
			policy:   policy.Strict,
			body:     ":::video\nprovider: youtube\nvideoId: abc\ncaption: c\n:::\n\nText",
			wantRule: models.ErrStartsWithMedia,
		},
		{
			name:     "empty alt",
			policy:   policy.CountsOnly,
			body:     "Text\n\n:::image\nsrc: /a.jpg\nalt:\nwidth: 10\nheight: 10\n:::\n\nMore",
			wantRule: models.ErrEmptyAltText,
		},
		{
			name:     "empty body",
			policy:   policy.Strict,
			body:     "",
			wantRule: models.ErrEmptyBlocks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(tt.policy)
			a := createArticle(t, env, "Blocked", tt.body)

			_, err := env.articles.PublishArticle(context.Background(), a.ID)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var blocked *domain.PublishBlockedError
			require.ErrorAs(t, err, &blocked)
			assert.Equal(t, 422, blocked.StatusCode())
			if tt.wantParseErrs {
				assert.NotEmpty(t, blocked.ParseErrors)
				assert.Nil(t, blocked.Validation)
			} else {
				require.NotNil(t, blocked.Validation)
				assert.True(t, blocked.Validation.HasError(tt.wantRule), "errors: %v", blocked.Validation.Errors)
			}

			stored, _ := env.repo.GetByID(context.Background(), a.ID)
			assert.Equal(t, models.StatusDraft, stored.Status)
		})
	}
}

func TestPublishArticle_WarningsDoNotBlock(t *testing.T) {
	env := newTestEnv(policy.Strict)
	body := "One\n\n:::video\nprovider: cdn\nvideoId: /a.mp4\nposterUrl: /a.jpg\n:::\n\nTwo\n\n:::video\nprovider: cdn\nvideoId: /b.mp4\nposterUrl: /b.jpg\n:::\n\nThree"
	a := createArticle(t, env, "Two videos", body)

	res, err := env.articles.PublishArticle(context.Background(), a.ID)
	require.NoError(t, err)

	types := map[models.ValidationWarningType]int{}
	for _, w := range res.Warnings {
		types[w.Type]++
	}
	assert.Equal(t, 1, types[models.WarnVideoSoftLimit])
	assert.Equal(t, 2, types[models.WarnMissingVideoCaption])
}

func TestListAndDeleteArticles(t *testing.T) {
	env := newTestEnv(policy.Strict)
	a := createArticle(t, env, "Alpha", publishableBody)
	createArticle(t, env, "Beta", "Draft text")

	_, err := env.articles.PublishArticle(context.Background(), a.ID)
	require.NoError(t, err)

	published, err := env.articles.ListArticles(context.Background(), &articleSvc.ListArticlesRequest{Status: "published"})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, a.ID, published[0].ID)

	all, err := env.articles.ListArticles(context.Background(), &articleSvc.ListArticlesRequest{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = env.articles.ListArticles(context.Background(), &articleSvc.ListArticlesRequest{Status: "archived"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	require.NoError(t, env.articles.DeleteArticle(context.Background(), a.ID))
	assert.True(t, errors.Is(env.articles.DeleteArticle(context.Background(), a.ID), domain.ErrNotFound))
}

func TestCountWords(t *testing.T) {
	analyzer := NewContentAnalyzer()
	blocks := []models.Block{
		&models.Paragraph{Content: "Some **bold** and `code` words"},
		&models.Subheading{Content: "Two words"},
		&models.Quote{Content: "Quote — here", Attribution: "Not counted at all"},
		&models.Image{Caption: "ignored caption"},
		&models.Video{Title: "ignored title"},
	}
	assert.Equal(t, 9, analyzer.CountWords(blocks))
}
