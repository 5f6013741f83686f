package handler

import "net/http"

// RegisterRoutes mounts every API route on mux (Go 1.22+ patterns)
func RegisterRoutes(mux *http.ServeMux, blocks *BlocksHandler, articles *ArticleHandler, imports *ImportHandler) {
	mux.HandleFunc("GET /health", HealthCheck)

	// Block engine routes
	mux.HandleFunc("POST /api/blocks/parse", blocks.Parse)
	mux.HandleFunc("POST /api/blocks/serialize", blocks.Serialize)
	mux.HandleFunc("POST /api/blocks/validate", blocks.Validate)
	mux.HandleFunc("POST /api/blocks/insertion-check", blocks.InsertionCheck)

	// Article routes
	mux.HandleFunc("GET /api/articles", articles.ListArticles)
	mux.HandleFunc("POST /api/articles", articles.CreateArticle)
	mux.HandleFunc("GET /api/articles/{id}", articles.GetArticle)
	mux.HandleFunc("PATCH /api/articles/{id}", articles.UpdateArticle)
	mux.HandleFunc("DELETE /api/articles/{id}", articles.DeleteArticle)
	mux.HandleFunc("POST /api/articles/{id}/media", articles.InsertMedia)
	mux.HandleFunc("POST /api/articles/{id}/publish", articles.PublishArticle)

	// Import routes
	mux.HandleFunc("POST /api/import", imports.Import)
}
