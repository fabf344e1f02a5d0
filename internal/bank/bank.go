package bank

import (
	"errors"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// Service is the fund transfer capability settlement depends on. Accounts are
// opaque; an unknown account simply has a zero balance.
type Service interface {
	Deposit(account string, amount uint64)
	BalanceOf(account string) uint64
	Transfer(from, to string, amount uint64) error
}

type service struct {
	balances map[string]uint64
}

func NewService() Service {
	return service{balances: make(map[string]uint64)}
}

func (s service) Deposit(account string, amount uint64) {
	s.balances[account] += amount
}

func (s service) BalanceOf(account string) uint64 {
	return s.balances[account]
}

func (s service) Transfer(from, to string, amount uint64) error {
	if s.balances[from] < amount {
		return ErrInsufficientFunds
	}

	s.balances[from] -= amount
	s.balances[to] += amount

	return nil
}
