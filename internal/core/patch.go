package core

type (
	// RevenuePatch is a partial update for a revenue. Nil fields keep the
	// stored value; ID selects the record and is never changed.
	RevenuePatch struct {
		ID          string      `json:"id"`
		Description *string     `json:"description,omitempty"`
		Amount      *Money      `json:"amount,omitempty"`
		Date        *Date       `json:"date,omitempty"`
		Category    *string     `json:"category,omitempty"`
		Type        *RecordType `json:"type,omitempty"`
		Notes       *string     `json:"notes,omitempty"`
	}

	// ExpensePatch is a partial update for a normal or future expense.
	// IsFuture is not patchable: records never move between lists.
	ExpensePatch struct {
		ID            string         `json:"id"`
		Description   *string        `json:"description,omitempty"`
		Amount        *Money         `json:"amount,omitempty"`
		Date          *Date          `json:"date,omitempty"`
		Category      *string        `json:"category,omitempty"`
		Type          *RecordType    `json:"type,omitempty"`
		Notes         *string        `json:"notes,omitempty"`
		PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
		Local         *string        `json:"local,omitempty"`
	}
)

// Apply merges the patch over an existing revenue and returns the result.
func (p RevenuePatch) Apply(r Revenue) Revenue {
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	return r
}

// Apply merges the patch over an existing expense and returns the result.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.PaymentMethod != nil {
		e.PaymentMethod = *p.PaymentMethod
	}
	if p.Local != nil {
		e.Local = *p.Local
	}
	return e
}
