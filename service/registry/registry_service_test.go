package registry

import (
	"context"
	"testing"

	"rwalend/core"
	collateralstore "rwalend/store/collateral"

	"github.com/stretchr/testify/require"
)

func newTestService() core.ICollateralRegistry {
	cfg := &core.Config{Admins: []string{"admin"}}
	return New(cfg, collateralstore.Memory())
}

func TestMint(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	err := s.Mint(ctx, "mallory", "alice", "deed-001", "")
	require.Equal(t, core.ErrUnauthorized, err)

	require.Nil(t, s.Mint(ctx, "admin", "alice", "deed-001", "ipfs://deed-001"))

	err = s.Mint(ctx, "admin", "bob", "deed-001", "")
	require.Equal(t, core.ErrItemExists, err)

	owner, err := s.OwnerOf(ctx, "deed-001")
	require.Nil(t, err)
	require.Equal(t, "alice", owner)

	_, err = s.OwnerOf(ctx, "deed-999")
	require.Equal(t, core.ErrItemNotFound, err)
}

func TestTransferRequiresOwnerOrOperator(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	require.Nil(t, s.Mint(ctx, "admin", "alice", "deed-001", ""))

	err := s.Transfer(ctx, "bob", "alice", "bob", "deed-001")
	require.Equal(t, core.ErrUnauthorized, err)

	err = s.Transfer(ctx, "alice", "bob", "carol", "deed-001")
	require.Equal(t, core.ErrNotOwner, err)

	require.Nil(t, s.Transfer(ctx, "alice", "alice", "bob", "deed-001"))

	owner, _ := s.OwnerOf(ctx, "deed-001")
	require.Equal(t, "bob", owner)
}

func TestApprovalClearedOnTransfer(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	require.Nil(t, s.Mint(ctx, "admin", "alice", "deed-001", ""))

	err := s.Approve(ctx, "bob", "operator", "deed-001")
	require.Equal(t, core.ErrNotOwner, err)

	require.Nil(t, s.Approve(ctx, "alice", "operator", "deed-001"))
	require.Nil(t, s.Transfer(ctx, "operator", "alice", "carol", "deed-001"))

	// the operator's approval died with the transfer
	err = s.Transfer(ctx, "operator", "carol", "dave", "deed-001")
	require.Equal(t, core.ErrUnauthorized, err)
}
