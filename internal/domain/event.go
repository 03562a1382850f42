package domain

// EventDetails describes the event advertised on the home page.
type EventDetails struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Venue string `json:"venue"`
	Time  string `json:"time"`
}

// TileType identifies a portal content tile.
type TileType string

const (
	TileVideo    TileType = "video"
	TilePDF      TileType = "pdf"
	TileFeedback TileType = "feedback"
)

// Activity recorded when the tile is opened.
func (t TileType) Activity() Activity {
	switch t {
	case TileVideo:
		return ActivityVideos
	case TilePDF:
		return ActivityPDF
	case TileFeedback:
		return ActivityFeedback
	}
	return ActivityPortal
}

// Tile is a piece of portal content embedded in a modal frame.
type Tile struct {
	Type  TileType `json:"type"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
}
