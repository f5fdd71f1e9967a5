package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DemandStatus – immutable value object
// ---------------------------------------------------------------------------

// DemandStatus represents the lifecycle stage of a credit demand.
type DemandStatus struct {
	value string
}

const (
	demandStatusPending  = "PENDING"
	demandStatusApproved = "APPROVED"
	demandStatusRejected = "REJECTED"
)

var (
	DemandStatusPending  = DemandStatus{value: demandStatusPending}
	DemandStatusApproved = DemandStatus{value: demandStatusApproved}
	DemandStatusRejected = DemandStatus{value: demandStatusRejected}
)

var validDemandStatuses = map[string]DemandStatus{
	demandStatusPending:  DemandStatusPending,
	demandStatusApproved: DemandStatusApproved,
	demandStatusRejected: DemandStatusRejected,
}

// NewDemandStatus creates a DemandStatus from a raw string.
func NewDemandStatus(s string) (DemandStatus, error) {
	v, ok := validDemandStatuses[s]
	if !ok {
		return DemandStatus{}, fmt.Errorf("invalid demand status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s DemandStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s DemandStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s DemandStatus) Equal(other DemandStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// ContractStatus – immutable value object
// ---------------------------------------------------------------------------

// ContractStatus represents the lifecycle stage of a credit contract.
type ContractStatus struct {
	value string
}

const (
	contractStatusPending     = "PENDING"
	contractStatusActive      = "ACTIVE"
	contractStatusPartial     = "PARTIAL"
	contractStatusDischarged  = "DISCHARGED"
	contractStatusClosed      = "CLOSED"
	contractStatusTransformed = "TRANSFORMED"
	contractStatusExtended    = "EXTENDED"
	contractStatusCanceled    = "CANCELED"
)

var (
	ContractStatusPending     = ContractStatus{value: contractStatusPending}
	ContractStatusActive      = ContractStatus{value: contractStatusActive}
	ContractStatusPartial     = ContractStatus{value: contractStatusPartial}
	ContractStatusDischarged  = ContractStatus{value: contractStatusDischarged}
	ContractStatusClosed      = ContractStatus{value: contractStatusClosed}
	ContractStatusTransformed = ContractStatus{value: contractStatusTransformed}
	ContractStatusExtended    = ContractStatus{value: contractStatusExtended}
	ContractStatusCanceled    = ContractStatus{value: contractStatusCanceled}
)

var validContractStatuses = map[string]ContractStatus{
	contractStatusPending:     ContractStatusPending,
	contractStatusActive:      ContractStatusActive,
	contractStatusPartial:     ContractStatusPartial,
	contractStatusDischarged:  ContractStatusDischarged,
	contractStatusClosed:      ContractStatusClosed,
	contractStatusTransformed: ContractStatusTransformed,
	contractStatusExtended:    ContractStatusExtended,
	contractStatusCanceled:    ContractStatusCanceled,
}

// NewContractStatus creates a ContractStatus from a raw string.
func NewContractStatus(s string) (ContractStatus, error) {
	v, ok := validContractStatuses[s]
	if !ok {
		return ContractStatus{}, fmt.Errorf("invalid contract status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ContractStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ContractStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ContractStatus) Equal(other ContractStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further transition may leave this status.
func (s ContractStatus) IsTerminal() bool {
	switch s.value {
	case contractStatusClosed, contractStatusCanceled, contractStatusTransformed:
		return true
	}
	return false
}

// AcceptsPayments reports whether a payment may be applied in this status.
func (s ContractStatus) AcceptsPayments() bool {
	switch s.value {
	case contractStatusPending, contractStatusActive, contractStatusPartial:
		return true
	}
	return false
}
