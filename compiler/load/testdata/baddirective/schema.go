package baddirective

//gremlin:entity table
type Broken struct {
	ID int64 `gremlin:"id,pk"`
}
