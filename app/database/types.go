package database

// EntryRecord is the cached form of a play entry.
type EntryRecord struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Game string `json:"game"`
	Link string `json:"link"`
}
