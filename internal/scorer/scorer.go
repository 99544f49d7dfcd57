// Package scorer computes the loyalty points for a validated receipt.
package scorer

import (
	"strings"
	"unicode"

	"github.com/mmynk/receipt-points/internal/models"
)

// Score applies the scoring rules to a validated receipt and returns the
// total points. It assumes the receipt has already passed validation; the
// validator gate is mandatory upstream. Pure and deterministic — the same
// receipt always scores the same.
//
// Rules (all additive, order irrelevant):
//  1. one point per alphanumeric character in the retailer name
//  2. 50 points if the total is a round dollar amount
//  3. 25 points if the total is a multiple of 0.25
//  4. 5 points for every two items
//  5. for each item whose trimmed description length is a multiple of 3,
//     ceil(price * 0.2) points
//  6. reserved — contributes nothing
//  7. 6 points if the day of the purchase date is odd
//  8. 10 points if the purchase time is strictly between 14:00 and 16:00
func Score(r *models.Receipt) int64 {
	var points int64

	// Rule 1: spaces, '&', '-' and '_' do not count.
	for _, c := range r.Retailer {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			points++
		}
	}

	// Rules 2 and 3 stack: a round dollar amount earns both.
	if r.Total.IsWholeDollars() {
		points += 50
	}
	if r.Total.IsMultipleOfQuarter() {
		points += 25
	}

	// Rule 4.
	points += int64(len(r.Items)/2) * 5

	// Rule 5: a trimmed length of 0 is a multiple of 3.
	for _, item := range r.Items {
		if len(strings.TrimSpace(item.ShortDescription))%3 == 0 {
			points += item.Price.FifthCeil()
		}
	}

	// Rule 6 is intentionally a no-op.

	// Rule 7.
	if r.PurchaseDate.Day()%2 == 1 {
		points += 6
	}

	// Rule 8: both endpoints excluded, so 14:00 and 16:00 earn nothing.
	minutes := r.PurchaseTime.Hour()*60 + r.PurchaseTime.Minute()
	if minutes > 14*60 && minutes < 16*60 {
		points += 10
	}

	return points
}
