package hadith

// ListQuery mirrors the filter query string of GET /hadiths. Tags are read
// separately since they may repeat.
type ListQuery struct {
	Q            string   `form:"q"`
	CollectionID string   `form:"collection_id"`
	ChapterID    string   `form:"chapter_id"`
	Grade        string   `form:"grade"`
	Narrator     string   `form:"narrator"`
	Tags         []string `form:"-"`
}

type RandomQuery struct {
	CollectionID     string `form:"collection_id"`
	Grade            string `form:"grade"`
	ExcludeFavorites bool   `form:"-"`
}
