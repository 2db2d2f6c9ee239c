package handlers

import "github.com/Ayoush26/HikeHighNepal/internal/content"

// FAQView is the FAQ page payload.
type FAQView struct {
	Categories []content.FAQCategory
	Total      int
}

// BuildFAQView wraps f for templates.
func BuildFAQView(f content.FAQ) *FAQView {
	return &FAQView{Categories: f.Categories, Total: f.QuestionCount()}
}
