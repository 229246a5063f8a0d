package domain

// SyncShop derives the shop's visibility flags from the owning vendor's
// account status. It is the only writer of Shop.Approved and Shop.Active.
// A nil shop is a no-op.
func SyncShop(v *Vendor, s *Shop) {
	if s == nil {
		return
	}
	live := v.AccountStatus == AccountApproved
	s.Approved = live
	s.Active = live
}
