package models

// StatsSnapshot is the point-in-time aggregate of a child's reading
// activity. It is derived, never persisted; weekly counts are bounded
// by the corresponding totals.
type StatsSnapshot struct {
	TotalWords       int `json:"total_words"`
	TotalBooks       int `json:"total_books"`
	WordsThisWeek    int `json:"words_this_week"`
	BooksThisWeek    int `json:"books_this_week"`
	MomentsThisWeek  int `json:"moments_this_week"`
	NewWordsThisWeek int `json:"new_words_this_week"`
}

// IsZero reports whether every counter is zero
func (s *StatsSnapshot) IsZero() bool {
	return *s == StatsSnapshot{}
}
