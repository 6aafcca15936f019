package repository

import "context"

// TransactionManager defines the interface for managing database
// transactions. It lets the use case layer run multi-entity writes (the
// checkout commit, the review-plus-rating recompute) atomically without
// depending on a specific DB driver.
type TransactionManager interface {
	// Execute runs a function within a database transaction. If the
	// function returns an error, the transaction is rolled back; otherwise
	// it is committed. All repository operations obtained from the factory
	// share the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory yields repository instances bound to one transaction.
type RepositoryFactory interface {
	// NewUserRepository returns a UserRepository bound to the current transaction.
	NewUserRepository() UserRepository

	// NewShopRepository returns a ShopRepository bound to the current transaction.
	NewShopRepository() ShopRepository

	// NewProductRepository returns a ProductRepository bound to the current transaction.
	NewProductRepository() ProductRepository

	// NewOrderRepository returns an OrderRepository bound to the current transaction.
	NewOrderRepository() OrderRepository

	// NewReviewRepository returns a ReviewRepository bound to the current transaction.
	NewReviewRepository() ReviewRepository
}
