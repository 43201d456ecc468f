package auth

import (
	"testing"

	"github.com/rowanhale/seatwell/internal/model"
)

func TestCanManageWedding(t *testing.T) {
	wedding := &model.Wedding{ID: 1, CoupleID: 10}

	tests := []struct {
		name  string
		actor Context
		want  bool
	}{
		{"owning couple", Context{UserID: 10, Role: model.RoleCouple}, true},
		{"other couple", Context{UserID: 11, Role: model.RoleCouple}, false},
		{"vendor", Context{UserID: 10, Role: model.RoleVendor}, false},
		{"admin", Context{UserID: 99, Role: model.RoleAdmin}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageWedding(tt.actor, wedding); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if CanManageWedding(Context{UserID: 10, Role: model.RoleCouple}, nil) {
		t.Error("nil wedding must deny")
	}
}

func TestCanActOnLead(t *testing.T) {
	lead := &model.Lead{ID: 1, CoupleID: 10, VendorID: 5}
	const vendorUserID = 20

	tests := []struct {
		name  string
		actor Context
		want  bool
	}{
		{"lead couple", Context{UserID: 10, Role: model.RoleCouple}, true},
		{"other couple", Context{UserID: 11, Role: model.RoleCouple}, false},
		{"lead vendor", Context{UserID: 20, Role: model.RoleVendor}, true},
		{"other vendor", Context{UserID: 21, Role: model.RoleVendor}, false},
		{"admin", Context{UserID: 99, Role: model.RoleAdmin}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanActOnLead(tt.actor, lead, vendorUserID); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanUpdateLeadStatus(t *testing.T) {
	if !CanUpdateLeadStatus(Context{UserID: 20, Role: model.RoleVendor}, 20) {
		t.Error("lead vendor should update status")
	}
	if CanUpdateLeadStatus(Context{UserID: 10, Role: model.RoleCouple}, 20) {
		t.Error("couple must not update status")
	}
}

func TestIsAdmin(t *testing.T) {
	if !IsAdmin(Context{UserID: 1, Role: model.RoleAdmin}) {
		t.Error("admin should be admin")
	}
	if IsAdmin(Context{UserID: 1, Role: model.RoleCouple}) {
		t.Error("couple is not admin")
	}
}
