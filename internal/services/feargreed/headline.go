package feargreed

import "Diversonal/internal/domain/models"

// SelectHeadline picks news[n-1] for a 1-based n, falling back to the first article.
// It returns nil when there is no news.
func SelectHeadline(news []models.NewsArticle, n int) *models.Headline {
	if len(news) == 0 {
		return nil
	}
	if n >= 1 && n <= len(news) {
		return models.HeadlineFrom(news[n-1])
	}
	return models.HeadlineFrom(news[0])
}
