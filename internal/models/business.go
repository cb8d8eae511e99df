package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// IsOutstanding reports whether the payment still counts towards a debt.
func (s PaymentStatus) IsOutstanding() bool {
	return s == PaymentStatusPending || s == PaymentStatusOverdue
}

type Customer struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	TotalDebt float64 `json:"totalDebt" db:"total_debt"`
}

type Product struct {
	ID                string  `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	Price             float64 `json:"price" db:"price"`
	PurchasePrice     float64 `json:"purchasePrice" db:"purchase_price"`
	Quantity          int     `json:"quantity" db:"quantity"`
	LowStockThreshold int     `json:"lowStockThreshold" db:"low_stock_threshold"`
}

// IsLowStock reports whether the quantity on hand reached the reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

type Payment struct {
	ID         string        `json:"id" db:"id"`
	CustomerID string        `json:"customerId" db:"customer_id"`
	Amount     float64       `json:"amount" db:"amount"`
	DueDate    Date          `json:"dueDate" db:"due_date"`
	Status     PaymentStatus `json:"status" db:"status"`
}

// Snapshot is the read-only view of the business records a command is
// answered against. Slices keep the order the host supplied.
type Snapshot struct {
	Customers []Customer `json:"customers"`
	Products  []Product  `json:"products"`
	Payments  []Payment  `json:"payments"`
}

// Date is a calendar date. It accepts both "2006-01-02" and RFC3339 in JSON.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
