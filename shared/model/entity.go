package model

// Entity describes how a model is persisted: the name used in logs and spans,
// the backing table and its primary key column.
type Entity struct {
	Name          string
	Table         string
	PrimaryColumn string
}
