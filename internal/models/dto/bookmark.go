package dto

type BookmarkRequest struct {
	Username string `json:"username"`
	DrugName string `json:"drugName"`
}

type BookmarksResponse struct {
	Username  string   `json:"username"`
	Bookmarks []string `json:"bookmarks"`
}

type BookmarkCheckResponse struct {
	DrugName     string `json:"drugName"`
	IsBookmarked bool   `json:"isBookmarked"`
}
