package music

import (
	"encoding/json"
	"time"
)

// Artist is a performer.
//
//gremlin:entity table=public.artist
type Artist struct {
	ID   int32  `gremlin:"id,pk,generated"`
	Name string `gremlin:"name"`
	Slug string `gremlin:"slug,generated"`
}

// Label is a user method on a record.
func (a *Artist) Label() string { return a.Name }

// Release is an album or single.
//
//gremlin:entity table=release
type Release struct {
	ID       int32     `gremlin:"id,pk,generated"`
	ArtistID int32     `gremlin:"artist_id"`
	Name     string    `json:"name" gremlin:"name"`
	Synonyms *[]string `gremlin:"synonyms,deref"`
}

// Mood is stored as a database enum.
type Mood string

//gremlin:entity table=person
type Person struct {
	ID          int64 `gremlin:",pk,generated"`
	Name        string
	CurrentMood Mood `gremlin:"current_mood,cast=mood"`
}

//gremlin:entity table="public.soft_delete" soft_delete=deleted_at
type SoftDelete struct {
	ID        int32           `gremlin:"id,pk,generated"`
	Value     json.RawMessage `gremlin:"value"`
	Tags      map[string]int  `gremlin:"tags"`
	Scores    [3]float64      `gremlin:"scores"`
	DeletedAt *time.Time      `gremlin:"deleted_at,default"`
}

// unexported record.
//
//gremlin:entity table=track
type track struct {
	id    int64 `gremlin:"id,pk"`
	Title string
}

// Plain is not a record.
type Plain struct {
	Name string
}
