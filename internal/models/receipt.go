// Package models defines the core domain models for the receipt points
// service.
//
// Receipts exist in two forms:
//   - RawReceipt / RawItem: the untrusted wire shape, every field a string,
//     exactly as submitted by the client
//   - Receipt / Item: the parsed, validated shape the scorer consumes
//
// Only the validator constructs a Receipt from a RawReceipt; nothing else
// in the codebase should parse receipt fields. A Receipt is transient — it
// lives for the duration of one validate-and-score pass and is never
// persisted. What persists is the (id, points) pair in storage.
package models

import (
	"time"

	"github.com/mmynk/receipt-points/internal/money"
)

// RawReceipt is a candidate receipt as received on the wire.
// All fields are strings because the contract transmits them as strings;
// no parsing or trust is implied at this stage.
type RawReceipt struct {
	Retailer     string    `json:"retailer"`
	PurchaseDate string    `json:"purchaseDate"`
	PurchaseTime string    `json:"purchaseTime"`
	Total        string    `json:"total"`
	Items        []RawItem `json:"items"`
}

// RawItem is a candidate line item as received on the wire.
type RawItem struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`
}

// Receipt is a validated receipt. Every field has been parsed and checked;
// the item prices sum exactly to Total. Immutable once built.
type Receipt struct {
	// Retailer is the store name, restricted to [A-Za-z0-9_\s\-&].
	Retailer string

	// PurchaseDate is the calendar date of purchase (time component zero).
	PurchaseDate time.Time

	// PurchaseTime is the time of day of purchase at minute precision,
	// carried on time.Time's reference date.
	PurchaseTime time.Time

	// Total is the exact declared total.
	Total money.Amount

	// Items are the validated line items, in submission order.
	Items []Item
}

// Item is a validated line item on a receipt. It has no identity beyond
// its position in the parent receipt's item list.
type Item struct {
	ShortDescription string
	Price            money.Amount
}
