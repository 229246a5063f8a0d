package domain

// DocumentKind names one of the four KYC artifacts tracked per vendor.
type DocumentKind string

const (
	DocIdentity     DocumentKind = "IDENTITY"
	DocTax          DocumentKind = "TAX"
	DocRegistration DocumentKind = "REGISTRATION"
	DocShopLicense  DocumentKind = "SHOP_LICENSE"
)

// documentForReason maps a rejection reason to the document it rejects.
// OTHER has no entry and leaves every document approved.
var documentForReason = map[RejectReason]DocumentKind{
	RejectIdentityMismatch:     DocIdentity,
	RejectTaxMismatch:          DocTax,
	RejectRegistrationMismatch: DocRegistration,
	RejectShopLicenseMismatch:  DocShopLicense,
}

// Documents is a view over the document statuses spread across a vendor and
// its shop. The shop may be nil, in which case the shop license is ignored.
type Documents struct {
	vendor *Vendor
	shop   *Shop
}

func DocumentsOf(v *Vendor, s *Shop) Documents {
	return Documents{vendor: v, shop: s}
}

func (d Documents) Status(kind DocumentKind) DocumentStatus {
	var st DocumentStatus
	switch kind {
	case DocIdentity:
		st = d.vendor.IdentityStatus
	case DocTax:
		st = d.vendor.TaxStatus
	case DocRegistration:
		st = d.vendor.RegistrationStatus
	case DocShopLicense:
		if d.shop != nil {
			st = d.shop.LicenseStatus
		}
	}
	if st == "" {
		return DocumentPending
	}
	return st
}

func (d Documents) Set(kind DocumentKind, status DocumentStatus) {
	switch kind {
	case DocIdentity:
		d.vendor.IdentityStatus = status
	case DocTax:
		d.vendor.TaxStatus = status
	case DocRegistration:
		d.vendor.RegistrationStatus = status
	case DocShopLicense:
		if d.shop != nil {
			d.shop.LicenseStatus = status
		}
	}
}

// ApproveAll marks every document APPROVED.
func (d Documents) ApproveAll() {
	for _, k := range allDocuments {
		d.Set(k, DocumentApproved)
	}
}

// RejectFor resets all documents to APPROVED and then rejects exactly the one
// named by reason.
func (d Documents) RejectFor(reason RejectReason) {
	d.ApproveAll()
	if kind, ok := documentForReason[reason]; ok {
		d.Set(kind, DocumentRejected)
	}
}

// Rejected lists the documents currently REJECTED, in a stable order.
func (d Documents) Rejected() []DocumentKind {
	var out []DocumentKind
	for _, k := range allDocuments {
		if k == DocShopLicense && d.shop == nil {
			continue
		}
		if d.Status(k) == DocumentRejected {
			out = append(out, k)
		}
	}
	return out
}

var allDocuments = []DocumentKind{DocIdentity, DocTax, DocRegistration, DocShopLicense}
