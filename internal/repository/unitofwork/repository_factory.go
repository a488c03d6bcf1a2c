package unitofwork

import "context"

// RepositoryFactory hands out units of work over the process wide database handle.
// Services hold the factory and open one unit per operation.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
