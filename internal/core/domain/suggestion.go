package domain

// BandIdea is a brainstormed band identity.
type BandIdea struct {
	Name        string   `json:"bandName"`
	Bio         string   `json:"bio"`
	AlbumTitles []string `json:"suggestedAlbums,omitempty"`
}

// TrackSuggestionCount is how many titles a track suggestion must contain.
const TrackSuggestionCount = 5
