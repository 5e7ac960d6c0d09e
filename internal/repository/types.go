package repository

import "time"

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page             int
	PageSize         int
	CustomerID       uint
	Status           string
	PickingStatus    string
	ControlStatus    string
	PickingStatusNot []string
	KommissioniertBy uint
	// ControlVisibleTo keeps in_kontrolle orders whose claimant is not
	// this staff id out of the result (admin passes zero).
	ControlVisibleTo uint
	DeliveryFrom     *time.Time
	DeliveryTo       *time.Time
}

// OverrideAuditLogListFilter filters the override audit feed.
type OverrideAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorStaffID uint
	OrderID         uint
	Action          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}

// ArticleSelection selects articles for bulk surcharge edits. Exactly
// the criteria that are set are applied; an empty selection matches
// nothing and is rejected upstream.
type ArticleSelection struct {
	ArticleIDs      []uint
	Category        string
	NumberRangeFrom string
	NumberRangeTo   string
}

// IsEmpty reports whether no criterion is set.
func (s ArticleSelection) IsEmpty() bool {
	return len(s.ArticleIDs) == 0 && s.Category == "" && (s.NumberRangeFrom == "" || s.NumberRangeTo == "")
}

// CustomerCriteria selects customers for mass surcharge rules.
type CustomerCriteria struct {
	Category string
	Region   string
}
