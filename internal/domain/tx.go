package domain

import "context"

// Transactor runs fn inside one database transaction. Repository calls
// made with the context fn receives join that transaction; an error from
// fn rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
