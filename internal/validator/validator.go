// Package validator checks a raw receipt for structural and semantic
// well-formedness and produces the parsed form the scorer consumes.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/mmynk/receipt-points/internal/models"
	"github.com/mmynk/receipt-points/internal/money"
)

// ErrInvalidReceipt is returned for every validation failure. Callers that
// need the failing detail for logs can unwrap it; the external contract is
// a single opaque rejection, so no detail may reach the client.
var ErrInvalidReceipt = errors.New("invalid receipt")

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// textPattern is the charset rule shared by retailer names and item
// descriptions: letters, digits, underscore, whitespace, hyphen, ampersand.
var textPattern = regexp.MustCompile(`^[\w\s\-&]+$`)

// Validate runs the full check sequence against a raw receipt. It is pure
// and fail-fast: the first failing check rejects the whole receipt. On
// success it returns the parsed receipt with exact-decimal amounts.
func Validate(raw models.RawReceipt) (*models.Receipt, error) {
	if raw.Retailer == "" || raw.PurchaseDate == "" || raw.PurchaseTime == "" || raw.Total == "" {
		return nil, fmt.Errorf("%w: missing required field", ErrInvalidReceipt)
	}

	date, err := time.Parse(dateLayout, raw.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: purchaseDate %q", ErrInvalidReceipt, raw.PurchaseDate)
	}

	clock, err := time.Parse(timeLayout, raw.PurchaseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: purchaseTime %q", ErrInvalidReceipt, raw.PurchaseTime)
	}

	if !textPattern.MatchString(raw.Retailer) {
		return nil, fmt.Errorf("%w: retailer charset", ErrInvalidReceipt)
	}

	total, err := money.Parse(raw.Total)
	if err != nil {
		return nil, fmt.Errorf("%w: total: %v", ErrInvalidReceipt, err)
	}

	items := make([]models.Item, 0, len(raw.Items))
	var sum money.Amount
	for i, it := range raw.Items {
		if !textPattern.MatchString(it.ShortDescription) {
			return nil, fmt.Errorf("%w: item %d description charset", ErrInvalidReceipt, i)
		}
		price, err := money.Parse(it.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d price: %v", ErrInvalidReceipt, i, err)
		}
		sum = sum.Add(price)
		items = append(items, models.Item{ShortDescription: it.ShortDescription, Price: price})
	}

	// Exact decimal equality, never a float tolerance.
	if !sum.Equal(total) {
		return nil, fmt.Errorf("%w: item prices sum to %s, total is %s", ErrInvalidReceipt, sum, total)
	}

	return &models.Receipt{
		Retailer:     raw.Retailer,
		PurchaseDate: date,
		PurchaseTime: clock,
		Total:        total,
		Items:        items,
	}, nil
}
