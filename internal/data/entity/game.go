package entity

// Game holds catalog metadata plus the derived rating aggregate.
// AvgRating and ReviewCount are written only by the rating refresh;
// they must always be reconstructable from the comment rows.
type Game struct {
	BaseSimple
	Name        string  `db:"name"`
	Platform    string  `db:"platform"`
	Description *string `db:"description"`
	CoverURL    *string `db:"cover_url"`
	AvgRating   float64 `db:"avg_rating"`
	ReviewCount int     `db:"review_count"`
}
