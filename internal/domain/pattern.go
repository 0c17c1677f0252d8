package domain

// GeneratePDFsRequest is the body of POST /api/generate-pdfs
type GeneratePDFsRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Image     string   `json:"image,omitempty"`     // data URL or bare base64
	Languages []string `json:"languages,omitempty"` // empty means every target language
}

// LanguageInfo is one entry of GET /api/languages
type LanguageInfo struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
	Source      bool   `json:"source"`
}

// LanguagesResponse is the body of GET /api/languages
type LanguagesResponse struct {
	Languages []LanguageInfo `json:"languages"`
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
