package types

// Source is a keyed container that values can be looked up in
type Source interface {
	Get(name string) (any, bool)
}

// Sink is a keyed container that values can be written to
type Sink interface {
	Set(name string, value any) error
}

type Container interface {
	Source
	Sink

	Names() []string
	Len() int
}
