package auth

import "github.com/rowanhale/seatwell/internal/model"

// Authorization predicates. Each takes the actor and the resource and
// returns allow/deny; handlers call these before touching stores so the
// rules stay testable without the request pipeline.

// CanManageWedding allows the owning couple and admins.
func CanManageWedding(actor Context, w *model.Wedding) bool {
	if w == nil {
		return false
	}
	if IsAdmin(actor) {
		return true
	}
	return actor.Role == model.RoleCouple && actor.UserID == w.CoupleID
}

// CanActOnLead allows the couple who opened the lead, the vendor it targets,
// and admins.
func CanActOnLead(actor Context, l *model.Lead, vendorUserID int64) bool {
	if l == nil {
		return false
	}
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleCouple:
		return actor.UserID == l.CoupleID
	case model.RoleVendor:
		return actor.UserID == vendorUserID
	}
	return false
}

// CanUpdateLeadStatus is vendor-side only: the lead pipeline state belongs
// to the vendor working it.
func CanUpdateLeadStatus(actor Context, vendorUserID int64) bool {
	if IsAdmin(actor) {
		return true
	}
	return actor.Role == model.RoleVendor && actor.UserID == vendorUserID
}

func IsAdmin(actor Context) bool {
	return actor.Role == model.RoleAdmin
}
