package domain

// Paging bounds a timeline request. Zero values are omitted.
type Paging struct {
	Count   int
	MaxID   int64 // Return statuses with ID <= MaxID
	SinceID int64 // Return statuses with ID > SinceID
}
