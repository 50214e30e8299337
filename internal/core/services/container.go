package services

import (
	portsrepo "github.com/yangsb/account-ledger/internal/core/ports/repositories"
	portssvc "github.com/yangsb/account-ledger/internal/core/ports/services"
	"github.com/yangsb/account-ledger/internal/locking"
)

// ServicesContainer bundles the constructed services handed to the handlers.
type ServicesContainer struct {
	UserSvc        portssvc.UserSvc
	AccountSvc     portssvc.AccountSvc
	TransactionSvc portssvc.TransactionSvc
}

// NewServicesContainer wires repositories and the shared lock manager into
// the service layer.
func NewServicesContainer(repos portsrepo.RepositoryProvider, locks locking.Manager, txnCfg TransactionConfig) *ServicesContainer {
	return &ServicesContainer{
		UserSvc:        NewUserService(repos.UserRepo),
		AccountSvc:     NewAccountService(repos.UserRepo, repos.AccountRepo, locks),
		TransactionSvc: NewTransactionService(repos.UserRepo, repos.AccountRepo, repos.TransactionRepo, locks, txnCfg),
	}
}
