package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	UserRepo        UserRepository
	AccountRepo     AccountRepository
	TransactionRepo TransactionRepository
}
