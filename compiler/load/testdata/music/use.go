package music

// Refers to a shape that does not exist until code is generated.
var _ = InsertableArtist{Name: "x"}
