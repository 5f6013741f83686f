package blockdoc

import (
	"math/rand"
	"strings"
	"testing"

	"broadsheet/internal/domain/models/article"
)

func sampleBlocks(ids article.IDGenerator) []article.Block {
	return article.ReorderBlocks([]article.Block{
		article.NewParagraph(ids, "Opening line\nwith a second line"),
		article.NewImage(ids, article.Image{
			Src: "/img/a.jpg", Alt: "A harbour", Caption: "Dawn", Credit: "Staff",
			Width: 1200, Height: 900, AspectRatio: article.AspectRatio4x3,
		}),
		article.NewSubheading(ids, "What happened"),
		article.NewQuote(ids, "Plain remark", ""),
		article.NewQuote(ids, "We will rebuild", "The mayor"),
		article.NewQuote(ids, "First line\nsecond line", ""),
		article.NewParagraph(ids, "Between media"),
		article.NewVideo(ids, article.Video{
			Provider: article.VideoProviderYouTube, VideoID: "abc123",
			EmbedURL:  article.DefaultEmbedURL(article.VideoProviderYouTube, "abc123"),
			PosterURL: article.DefaultPosterURL(article.VideoProviderYouTube, "abc123"),
			Caption:   "Footage", Duration: 42, Title: "Harbour at dawn",
		}),
		article.NewParagraph(ids, "Closing"),
	})
}

func TestSerialize_Canonical(t *testing.T) {
	ids := article.NewSequenceIDGenerator(rand.New(rand.NewSource(7)))
	blocks := []article.Block{
		article.NewParagraph(ids, "Hello"),
		article.NewImage(ids, article.Image{Src: "/a.jpg", Alt: "alt text", Width: 800, Height: 600, AspectRatio: article.AspectRatio4x3}),
		article.NewQuote(ids, "Said", "Someone"),
		article.NewSubheading(ids, "Next"),
		article.NewVideo(ids, article.Video{Provider: article.VideoProviderCDN, VideoID: "/v.mp4", EmbedURL: "/v.mp4", PosterURL: "/v.jpg"}),
	}

	want := strings.Join([]string{
		"Hello",
		"",
		":::image",
		"src: /a.jpg",
		"alt: alt text",
		"width: 800",
		"height: 600",
		":::",
		"",
		":::quote",
		"Said",
		"attribution: Someone",
		":::",
		"",
		"## Next",
		"",
		":::video",
		"provider: cdn",
		"videoId: /v.mp4",
		"embedUrl: /v.mp4",
		"posterUrl: /v.jpg",
		":::",
		"",
	}, "\n")

	if got := NewSerializer().Serialize(blocks); got != want {
		t.Errorf("Serialize() =\n%s\nwant\n%s", got, want)
	}
}

func TestSerialize_Empty(t *testing.T) {
	if got := NewSerializer().Serialize(nil); got != "" {
		t.Errorf("Serialize(nil) = %q, want empty", got)
	}
}

func TestSerialize_CoversEveryBlockType(t *testing.T) {
	ids := article.NewSequenceIDGenerator(rand.New(rand.NewSource(3)))
	covered := map[article.BlockType]bool{}
	for _, b := range sampleBlocks(ids) {
		covered[b.Type()] = true
	}
	for _, bt := range article.AllBlockTypes {
		if !covered[bt] {
			t.Fatalf("sample blocks do not include %s", bt)
		}
	}

	s := NewSerializer()
	for _, b := range sampleBlocks(ids) {
		t.Run(string(b.Type()), func(t *testing.T) {
			if out := s.Serialize([]article.Block{b}); strings.TrimSpace(out) == "" {
				t.Errorf("empty output for %s", b.Type())
			}
		})
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	ids := article.NewSequenceIDGenerator(rand.New(rand.NewSource(11)))
	original := sampleBlocks(ids)

	text := NewSerializer().Serialize(original)
	result := NewParser(ids).Parse(text)

	if result.IsLegacy {
		t.Fatal("serialized media must parse in block mode")
	}
	if !result.Success {
		t.Fatalf("unexpected parse errors: %v\n%s", result.Errors, text)
	}
	assertBlocksEquivalent(t, result.Blocks, original)

	// canonical output is a fixed point
	if again := NewSerializer().Serialize(result.Blocks); again != text {
		t.Errorf("second serialization differs:\n%s\n---\n%s", again, text)
	}
}

func TestSerialize_RoundTripParsedBlocks(t *testing.T) {
	corpus := strings.Join([]string{
		"Opening paragraph",
		"over two lines",
		"",
		"### Minor heading",
		"",
		`> "We will rebuild" — The mayor`,
		"> Plain remark",
		"",
		":::quote",
		"First line",
		"second line",
		"attribution: A resident",
		":::",
		"",
		":::video",
		"provider: vimeo",
		"videoId: 76979871",
		":::",
		"",
		"Between media",
		"",
		":::video",
		"provider: cdn",
		"videoId: /media/clip.mp4",
		"caption: Raw footage",
		"duration: 30",
		":::",
		"",
		"## Closing",
	}, "\n")

	ids := article.NewSequenceIDGenerator(rand.New(rand.NewSource(3)))
	parser := NewParser(ids)

	parsed := parser.Parse(corpus)
	if parsed.IsLegacy || !parsed.Success {
		t.Fatalf("corpus must parse cleanly in block mode: legacy=%v errors=%v", parsed.IsLegacy, parsed.Errors)
	}
	if len(parsed.Blocks) != 9 {
		t.Fatalf("got %d blocks from corpus, want 9: %s", len(parsed.Blocks), describeBlocks(parsed.Blocks))
	}
	if v := parsed.Blocks[5].(*article.Video); v.PosterURL != "" {
		t.Errorf("vimeo poster = %q, want none", v.PosterURL)
	}

	text := NewSerializer().Serialize(parsed.Blocks)
	again := parser.Parse(text)
	if !again.Success {
		t.Fatalf("unexpected parse errors: %v\n%s", again.Errors, text)
	}
	assertBlocksEquivalent(t, again.Blocks, parsed.Blocks)
}

func TestSerialize_RoundTripTextOnly(t *testing.T) {
	ids := article.NewSequenceIDGenerator(rand.New(rand.NewSource(5)))
	original := article.ReorderBlocks([]article.Block{
		article.NewParagraph(ids, "Alpha"),
		article.NewQuote(ids, "Attributed", "Writer"),
		article.NewQuote(ids, `"Looks like" - an attribution`, ""),
		article.NewSubheading(ids, "Beta"),
	})

	text := NewSerializer().Serialize(original)
	result := NewParser(ids).Parse(text)

	if !result.IsLegacy {
		t.Fatal("text-only output should parse in legacy mode")
	}
	assertBlocksEquivalent(t, result.Blocks, original)
}

func TestSerialize_ImageAspectRatio(t *testing.T) {
	tests := []struct {
		name      string
		ratio     article.AspectRatio
		wantProp  bool
		wantRatio article.AspectRatio
	}{
		{"derived ratio is omitted", article.AspectRatio16x9, false, article.AspectRatio16x9},
		{"override is written", article.AspectRatio1x1, true, article.AspectRatio1x1},
		{"unset is omitted", "", false, article.AspectRatio16x9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := article.NewSequenceIDGenerator(rand.New(rand.NewSource(1)))
			img := article.NewImage(ids, article.Image{Src: "/a.jpg", Alt: "a", Width: 1920, Height: 1080, AspectRatio: tt.ratio})
			text := NewSerializer().Serialize([]article.Block{
				article.NewParagraph(ids, "before"), img, article.NewParagraph(ids, "after"),
			})

			if got := strings.Contains(text, "aspectRatio:"); got != tt.wantProp {
				t.Errorf("aspectRatio written = %v, want %v\n%s", got, tt.wantProp, text)
			}
			parsed := NewParser(ids).Parse(text)
			if !parsed.Success {
				t.Fatalf("parse errors: %v", parsed.Errors)
			}
			if got := parsed.Blocks[1].(*article.Image).AspectRatio; got != tt.wantRatio {
				t.Errorf("parsed ratio = %s, want %s", got, tt.wantRatio)
			}
		})
	}
}
