// Package bid holds the rule every bid must satisfy and a client that applies
// it before anything is sent to the API.
package bid

import (
	"context"
	"errors"
	"fmt"

	"unitrade_backend/internal/money"
	"unitrade_backend/models"
)

var (
	ErrListingClosed = errors.New("listing is no longer accepting bids")
	ErrInvalidAmount = errors.New("please enter a valid amount")
)

// TooLowError reports a bid that does not exceed the current bid.
type TooLowError struct {
	Current int64
	Minimum int64
	Attempt int64
}

func (e *TooLowError) Error() string {
	return fmt.Sprintf("bid %s must be higher than the current bid %s, minimum next bid is %s",
		money.Format(e.Attempt), money.Format(e.Current), money.Format(e.Minimum))
}

// Current is the amount a new bid has to beat: the highest bid, or the listed price when there is none.
func Current(p models.Product) int64 {
	if p.CurrentBid != nil {
		return *p.CurrentBid
	}
	return p.Price
}

// Minimum is the smallest acceptable next bid in minor units.
func Minimum(p models.Product) int64 {
	return Current(p) + 1
}

// Check enforces amount > Current(p) on an open listing.
func Check(p models.Product, amount int64) error {
	if p.IsSold || p.Status == models.StatusSold {
		return ErrListingClosed
	}
	if current := Current(p); amount <= current {
		return &TooLowError{Current: current, Minimum: Minimum(p), Attempt: amount}
	}
	return nil
}

// API submits an accepted bid. The server re-checks the rule and returns the updated product.
type API interface {
	PlaceBid(ctx context.Context, token string, productID uint, amount int64) (*models.Product, error)
}

type Bidder struct {
	API API
}

func NewBidder(api API) *Bidder {
	return &Bidder{API: api}
}

// Place validates amountText against p and submits it. Invalid bids never reach the API.
func (b *Bidder) Place(ctx context.Context, token string, p models.Product, amountText string) (*models.Product, error) {
	amount, err := money.Parse(amountText)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if err := Check(p, amount); err != nil {
		return nil, err
	}
	return b.API.PlaceBid(ctx, token, p.ID, amount)
}
