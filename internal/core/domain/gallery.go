package domain

// GalleryOp is the kind of change observed in the screenshots directory.
type GalleryOp int

const (
	GalleryAdded GalleryOp = iota
	GalleryRemoved
)

// GalleryEvent is one observed screenshot change.
type GalleryEvent struct {
	ProfileID string
	Path      string
	Op        GalleryOp
}
