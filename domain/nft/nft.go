package nft

import (
	"math/big"

	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
)

// Contract is the erc721 collaborator consumed by the marketplace. Reads
// resolve against the collection contract; TransferFrom is a signed send
// relying on an approval previously granted to the registry.
type Contract interface {
	OwnerOf(ctx ctx.Ctx, chainId domain.ChainId, collection domain.Address, tokenId *big.Int) (domain.Address, error)
	GetApproved(ctx ctx.Ctx, chainId domain.ChainId, collection domain.Address, tokenId *big.Int) (domain.Address, error)
	IsApprovedForAll(ctx ctx.Ctx, chainId domain.ChainId, collection domain.Address, owner, operator domain.Address) (bool, error)
	TransferFrom(ctx ctx.Ctx, chainId domain.ChainId, collection domain.Address, from, to domain.Address, tokenId *big.Int) (domain.TxHash, error)
}

// Authorizer is the ownership oracle guarding list and delist. Read-only.
type Authorizer interface {
	// IsAuthorized reports whether caller owns the asset or holds an
	// operator approval for it.
	IsAuthorized(ctx ctx.Ctx, asset AssetRef, caller domain.Address) (bool, error)
}

// AssetRef identifies the asset an authorization check runs against.
type AssetRef struct {
	ChainId    domain.ChainId
	Collection domain.Address
	TokenId    domain.TokenId
}
