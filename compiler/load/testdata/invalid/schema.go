package invalid

//gremlin:entity table=code
type Code int

type Base struct {
	ID int64
}

//gremlin:entity table=embedded
type Embedded struct {
	Base
	Name string
}

//gremlin:entity table=alias
type Alias = Base

//gremlin:entity table=generic
type Generic[T any] struct {
	ID    int64 `gremlin:"id,pk"`
	Value T
}

//gremlin:entity
type NoTable struct {
	ID int64 `gremlin:"id,pk"`
}
