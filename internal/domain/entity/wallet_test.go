package entity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

func TestWalletStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.WalletStatus
		want     bool
	}{
		{entity.WalletNone, entity.WalletUnlocked, true},
		{entity.WalletNone, entity.WalletLocked, false},
		{entity.WalletLocked, entity.WalletUnlocked, true},
		{entity.WalletLocked, entity.WalletNone, true},
		{entity.WalletUnlocked, entity.WalletLocked, true},
		{entity.WalletUnlocked, entity.WalletNone, true},
		{entity.WalletUnlocked, entity.WalletUnlocked, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestIsValidAddress(t *testing.T) {
	valid := "aleo1" + strings.Repeat("q0", 29)
	assert.Len(t, valid, 63)

	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"valid", valid, true},
		{"too short", "aleo1qqq", false},
		{"wrong prefix", "cosmos" + strings.Repeat("q", 57), false},
		{"bad charset", "aleo1" + strings.Repeat("b", 58), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.IsValidAddress(tt.addr))
		})
	}
}
