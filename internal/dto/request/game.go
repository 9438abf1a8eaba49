package request

// GameListRequest is parsed from query parameters. SortBy and Order
// are checked against the service allow-list before any SQL is built.
type GameListRequest struct {
	Search string `json:"search"`
	SortBy string `json:"sort_by"`
	Order  string `json:"order"`
}
