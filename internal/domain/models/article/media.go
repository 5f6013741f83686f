package article

// ImageUpload is what the image-upload service returns for a stored image.
// Only these values reach the block model; the bytes never do.
type ImageUpload struct {
	URL    string `json:"url"`
	Srcset string `json:"srcset,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// VideoMetadata is what the video-provider lookup returns for a URL
type VideoMetadata struct {
	Provider  VideoProvider `json:"provider"`
	VideoID   string        `json:"videoId"`
	EmbedURL  string        `json:"embedUrl"`
	PosterURL string        `json:"posterUrl,omitempty"`
	Title     string        `json:"title,omitempty"`
	Duration  int           `json:"duration,omitempty"`
}

// DefaultEmbedURL builds the player URL for a provider/video id pair.
// For the CDN provider the id is already the URL.
func DefaultEmbedURL(provider VideoProvider, videoID string) string {
	switch provider {
	case VideoProviderYouTube:
		return "https://www.youtube.com/embed/" + videoID
	case VideoProviderVimeo:
		return "https://player.vimeo.com/video/" + videoID
	case VideoProviderCDN:
		return videoID
	}
	return ""
}

// DefaultPosterURL returns the provider thumbnail, or "" when the provider
// has no predictable poster (vimeo, cdn).
func DefaultPosterURL(provider VideoProvider, videoID string) string {
	if provider == VideoProviderYouTube && videoID != "" {
		return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
	}
	return ""
}

// ImageFromUpload builds an image block from an upload result plus the
// editor-supplied text fields.
func ImageFromUpload(ids IDGenerator, up ImageUpload, alt, caption, credit string) *Image {
	return NewImage(ids, Image{
		Src:         up.URL,
		Alt:         alt,
		Caption:     caption,
		Credit:      credit,
		Width:       up.Width,
		Height:      up.Height,
		AspectRatio: DeriveAspectRatio(up.Width, up.Height),
		Srcset:      up.Srcset,
	})
}

// VideoFromMetadata builds a video block from a provider lookup result
func VideoFromMetadata(ids IDGenerator, meta VideoMetadata, caption string) *Video {
	embed := meta.EmbedURL
	if embed == "" {
		embed = DefaultEmbedURL(meta.Provider, meta.VideoID)
	}
	poster := meta.PosterURL
	if poster == "" {
		poster = DefaultPosterURL(meta.Provider, meta.VideoID)
	}
	return NewVideo(ids, Video{
		Provider:  meta.Provider,
		VideoID:   meta.VideoID,
		EmbedURL:  embed,
		PosterURL: poster,
		Caption:   caption,
		Duration:  meta.Duration,
		Title:     meta.Title,
	})
}
