package domain

import (
	"fmt"
	"strings"
)

// AccountStatus is a vendor's aggregate approval state.
type AccountStatus string

const (
	AccountPending  AccountStatus = "PENDING"
	AccountApproved AccountStatus = "APPROVED"
	AccountRejected AccountStatus = "REJECTED"
	AccountBlocked  AccountStatus = "BLOCKED"
)

// OrPending treats an unset status as PENDING, which is what a freshly
// registered vendor carries.
func (s AccountStatus) OrPending() AccountStatus {
	if s == "" {
		return AccountPending
	}
	return s
}

func ParseAccountStatus(raw string) (AccountStatus, error) {
	s := AccountStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case AccountPending, AccountApproved, AccountRejected, AccountBlocked:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown account status %q", ErrValidation, raw)
}

// DocumentStatus is the approval state of a single KYC artifact.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentApproved DocumentStatus = "APPROVED"
	DocumentRejected DocumentStatus = "REJECTED"
)

// ApprovalStatus is the moderation state of a product listing.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// ProductStatus controls listing visibility independently of moderation.
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// RejectReason selects which document a vendor rejection lands on.
type RejectReason string

const (
	RejectIdentityMismatch     RejectReason = "IDENTITY_MISMATCH"
	RejectTaxMismatch          RejectReason = "TAX_MISMATCH"
	RejectRegistrationMismatch RejectReason = "REGISTRATION_MISMATCH"
	RejectShopLicenseMismatch  RejectReason = "SHOP_LICENSE_MISMATCH"
	RejectOther                RejectReason = "OTHER"
)

func (r RejectReason) Valid() bool {
	switch r {
	case RejectIdentityMismatch, RejectTaxMismatch, RejectRegistrationMismatch, RejectShopLicenseMismatch, RejectOther:
		return true
	}
	return false
}

func ParseRejectReason(raw string) (RejectReason, error) {
	r := RejectReason(strings.ToUpper(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown reject reason %q", ErrValidation, raw)
	}
	return r, nil
}

// Audit action names.
const (
	ActionApprove    = "APPROVE"
	ActionReject     = "REJECT"
	ActionBlock      = "BLOCK"
	ActionUnblock    = "UNBLOCK"
	ActionSoftDelete = "SOFT_DELETE"
	ActionRestore    = "RESTORE"
	ActionDelete     = "DELETE"
)
