package config

const (
	// MaxArticleTitleLength is the maximum length for article titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxArticleTitleLength = 255

	// MaxSectionNameLength is the maximum length for section names
	// ("World", "Business", ...).
	MaxSectionNameLength = 100

	// MaxSlugLength bounds generated and imported slugs.
	MaxSlugLength = 120

	// MaxArticleBodyLength is the maximum size of an article body in bytes.
	// Long-form features stay well under 200 KB of text; anything larger
	// is almost certainly a paste accident.
	MaxArticleBodyLength = 512 * 1024

	// MaxRequestBodyBytes caps every JSON request body. Leaves room for a
	// maximal article plus its block encoding.
	MaxRequestBodyBytes = 4 * MaxArticleBodyLength

	// MaxImportFileBytes caps uploaded article files.
	MaxImportFileBytes = MaxArticleBodyLength + 16*1024
)

// MaxImportUploadBytes caps a whole multipart import request, zip
// archives included.
const MaxImportUploadBytes = 64 << 20
