// Package sql provides the executors generated gremlin operations run against.
//
// Every generated operation accepts an ExecQuerier, the pair of ExecContext and
// QueryContext methods shared by *sql.DB, *sql.Conn and *sql.Tx. The same
// operation therefore works on a shared pool or on a single borrowed connection:
//
//	drv, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artist, err := (&models.InsertableArtist{Name: "Testings"}).Insert(ctx, drv)
//
//	conn, err := drv.Borrow(ctx) // single connection
//	defer conn.Close()
//	artist, err = (&models.ArtistPk{ID: artist.ID}).Fetch(ctx, conn)
//
// # Wrappers
//
//   - StatsDriver: counts statements and reports slow ones
//   - DebugDriver: logs every statement with log/slog
//
// # Insert Builder
//
// InsertBuilder assembles INSERT statements whose column list depends on the
// payload, as needed by records with default-capable fields:
//
//	query, args := sql.Dialect(dialect.Postgres).
//	    Insert("defaultable").
//	    Set("id", 1).
//	    Returning("id, name").
//	    Query()
//	// INSERT INTO defaultable (id) VALUES ($1) RETURNING id, name
package sql
