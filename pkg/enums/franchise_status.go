package enums

import "fmt"

// FranchiseStatus tracks the review state of a franchise application.
type FranchiseStatus string

const (
	FranchiseStatusPending   FranchiseStatus = "Pending"
	FranchiseStatusReviewing FranchiseStatus = "Reviewing"
	FranchiseStatusApproved  FranchiseStatus = "Approved"
	FranchiseStatusRejected  FranchiseStatus = "Rejected"
)

var validFranchiseStatuses = []FranchiseStatus{
	FranchiseStatusPending,
	FranchiseStatusReviewing,
	FranchiseStatusApproved,
	FranchiseStatusRejected,
}

// String implements fmt.Stringer.
func (s FranchiseStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known FranchiseStatus.
func (s FranchiseStatus) IsValid() bool {
	for _, candidate := range validFranchiseStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseFranchiseStatus converts raw input into a FranchiseStatus.
func ParseFranchiseStatus(value string) (FranchiseStatus, error) {
	for _, candidate := range validFranchiseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid franchise status %q", value)
}
