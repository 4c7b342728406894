package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Fixed    RecordType = "fixed"
	Variable RecordType = "variable"
)

const (
	Cash         PaymentMethod = "dinheiro"
	CreditCard   PaymentMethod = "cartao_credito"
	DebitCard    PaymentMethod = "cartao_debito"
	Pix          PaymentMethod = "pix"
	BankTransfer PaymentMethod = "transferencia"
)

type (
	// RecordType classifies a record as recurring (fixed) or one-off (variable).
	RecordType string

	// PaymentMethod is how an expense was paid. Empty means Cash.
	PaymentMethod string

	// Date is a calendar day. It marshals as "YYYY-MM-DD" and carries no
	// time-of-day component.
	Date struct {
		time.Time
	}

	// Revenue is a single income record.
	Revenue struct {
		ID          string     `json:"id"`
		Description string     `json:"description"`
		Amount      Money      `json:"amount"`
		Date        Date       `json:"date"`
		Category    string     `json:"category"`
		Type        RecordType `json:"type"`
		Notes       string     `json:"notes,omitempty"`
	}

	// Expense is a single outgoing record. Future expenses live in their
	// own document list and carry IsFuture=true.
	Expense struct {
		ID            string        `json:"id"`
		Description   string        `json:"description"`
		Amount        Money         `json:"amount"`
		Date          Date          `json:"date"`
		Category      string        `json:"category"`
		Type          RecordType    `json:"type"`
		Notes         string        `json:"notes,omitempty"`
		IsFuture      bool          `json:"isFuture"`
		PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
		Local         string        `json:"local,omitempty"`
	}

	// Document is the unit of persistence: one per user, holding every
	// record the user owns. Expenses and FutureExpenses are disjoint
	// lists discriminated by IsFuture.
	Document struct {
		Revenues       []Revenue `json:"revenues"`
		Expenses       []Expense `json:"expenses"`
		FutureExpenses []Expense `json:"futureExpenses"`
	}

	// User is a registry entry. The password is stored as-is; this is a
	// single-user local tool, not an identity provider.
	User struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		CreatedAt string `json:"createdAt"`
	}

	// Profile is the password-stripped view of a User kept in the
	// session marker.
	Profile struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrEmptyDescription     = errors.New("empty description")
	ErrEmptyCategory        = errors.New("empty category")
	ErrInvalidType          = errors.New("invalid record type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// DateLayout is the wire format for dates.
const DateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Key returns the wire form, usable as a daily bucket key.
func (d Date) Key() string {
	return d.Format(DateLayout)
}

// MonthKey returns the "YYYY-MM" bucket key for monthly series.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// InRange reports whether d falls within [start, end], boundaries included.
func (d Date) InRange(start, end Date) bool {
	return !d.Before(start.Time) && !d.After(end.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Key() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
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

func (t RecordType) Validate() error {
	switch t {
	case Fixed, Variable:
		return nil
	default:
		return ErrInvalidType
	}
}

func (p PaymentMethod) Validate() error {
	switch p {
	case "", Cash, CreditCard, DebitCard, Pix, BankTransfer:
		return nil
	default:
		return ErrInvalidPaymentMethod
	}
}

func (r Revenue) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return r.Type.Validate()
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Type.Validate(); err != nil {
		return err
	}
	return e.PaymentMethod.Validate()
}

// EmptyDocument returns a document with three empty, non-nil lists so
// each marshals as [] rather than null.
func EmptyDocument() Document {
	return Document{
		Revenues:       []Revenue{},
		Expenses:       []Expense{},
		FutureExpenses: []Expense{},
	}
}

// Normalize replaces nil lists with empty ones. Stored documents written
// by older variants may omit a list entirely.
func (d Document) Normalize() Document {
	if d.Revenues == nil {
		d.Revenues = []Revenue{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.FutureExpenses == nil {
		d.FutureExpenses = []Expense{}
	}
	return d
}

// Profile strips the password for session storage.
func (u User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name}
}
