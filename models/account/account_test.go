package account

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleManufacturer, true},
		{RoleDistributor, true},
		{RolePharmacist, true},
		{RoleAdmin, true},
		{Role("warlord"), false},
		{Role("Admin"), false},
		{Role(""), false},
	}
	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestAccountJSONOmitsPasswordHash(t *testing.T) {
	a := &Account{
		ID:           1,
		FullName:     "Alice Chen",
		Email:        "a@x.com",
		Role:         RolePharmacist,
		PasswordHash: "$2a$10$secretsecretsecretsecret",
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if strings.Contains(string(data), "$2a$") {
		t.Errorf("marshaled account leaks password hash: %s", data)
	}
}
