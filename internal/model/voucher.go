package model

import "time"

// VoucherStatus is the lifecycle state of an access voucher
type VoucherStatus string

const (
	VoucherActive  VoucherStatus = "active"
	VoucherUsed    VoucherStatus = "used"
	VoucherExpired VoucherStatus = "expired"
)

// VoucherDurations are the subscription lengths a voucher can grant
var VoucherDurations = []int{1, 3, 6, 12}

// Voucher grants platform access for a number of months.
// Code is unique at the store level.
type Voucher struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	Code           string        `json:"code" bson:"code"`
	DurationMonths int           `json:"durationMonths" bson:"durationMonths"`
	Status         VoucherStatus `json:"status" bson:"status"`
	GeneratedBy    string        `json:"generatedBy,omitempty" bson:"generatedBy,omitempty"`
	UsedBy         string        `json:"usedBy,omitempty" bson:"usedBy,omitempty"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	UsedAt         *time.Time    `json:"usedAt,omitempty" bson:"usedAt,omitempty"`
}

// ValidDuration reports whether months is an allowed voucher length
func ValidDuration(months int) bool {
	for _, d := range VoucherDurations {
		if months == d {
			return true
		}
	}
	return false
}
