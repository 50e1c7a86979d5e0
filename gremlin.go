// Package gremlin is the runtime used by code generated with cmd/gremlin.
//
// A record declared as
//
//	//gremlin:entity table=public.artist
//	type Artist struct {
//		ID   int32  `gremlin:"id,pk,generated"`
//		Name string `gremlin:"name"`
//		Slug string `gremlin:"slug,generated"`
//	}
//
// gets the shapes InsertableArtist, UpdatableArtist and ArtistPk, and the
// operations below, each satisfying one of the contracts of this package:
//
//	artist, err := (&InsertableArtist{Name: "Testings"}).Insert(ctx, db)
//	artist, err = (&UpdatableArtist{ID: artist.ID, Name: "Updated"}).Update(ctx, db)
//	artist, err = artist.ToPk().Fetch(ctx, db)
//	err = artist.ToPk().Delete(ctx, db)
//	for artist, err := range StreamArtists(ctx, db) {
//		...
//	}
package gremlin

import (
	"context"
	"iter"

	"github.com/syssam/gremlin/dialect/sql"
)

// ExecQuerier is the executor generated operations run against: a pool
// (*sql.DB), a single connection (*sql.Conn), a transaction (*sql.Tx) or any
// of the dialect/sql wrappers.
type ExecQuerier = sql.ExecQuerier

// Inserter is implemented by Insertable shapes.
type Inserter[T any] interface {
	Insert(ctx context.Context, ex ExecQuerier) (*T, error)
}

// Updater is implemented by Updatable shapes.
type Updater[T any] interface {
	Update(ctx context.Context, ex ExecQuerier) (*T, error)
}

// Deleter is implemented by Pk shapes and by the records themselves.
type Deleter interface {
	Delete(ctx context.Context, ex ExecQuerier) error
}

// Fetcher is implemented by Pk shapes. A missing row is reported as a nil
// record and a nil error.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, ex ExecQuerier) (*T, error)
}

// StreamFunc is the signature of the generated Stream functions.
type StreamFunc[T any] func(ctx context.Context, ex ExecQuerier) iter.Seq2[*T, error]
