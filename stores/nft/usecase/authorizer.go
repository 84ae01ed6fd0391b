package usecase

import (
	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/log"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/nft"
)

type AuthorizerCfg struct {
	Erc721 nft.Contract
}

type impl struct {
	erc721 nft.Contract
}

// New creates the ownership oracle used to guard list and delist
func New(cfg *AuthorizerCfg) nft.Authorizer {
	return &impl{erc721: cfg.Erc721}
}

// IsAuthorized accepts the current owner, the per-token approvee and any
// operator approved for all of the owner's tokens.
func (im *impl) IsAuthorized(ctx ctx.Ctx, asset nft.AssetRef, caller domain.Address) (bool, error) {
	if caller.IsEmpty() {
		return false, nil
	}

	tokenId, err := asset.TokenId.ToBigInt()
	if err != nil {
		return false, domain.ErrBadParamInput
	}

	owner, err := im.erc721.OwnerOf(ctx, asset.ChainId, asset.Collection, tokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"asset": asset,
			"err":   err,
		}).Error("erc721.OwnerOf failed")
		return false, err
	}
	if owner.Equals(caller) {
		return true, nil
	}

	approved, err := im.erc721.GetApproved(ctx, asset.ChainId, asset.Collection, tokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"asset": asset,
			"err":   err,
		}).Error("erc721.GetApproved failed")
		return false, err
	}
	if approved.Equals(caller) {
		return true, nil
	}

	ok, err := im.erc721.IsApprovedForAll(ctx, asset.ChainId, asset.Collection, owner, caller)
	if err != nil {
		ctx.WithFields(log.Fields{
			"asset": asset,
			"err":   err,
		}).Error("erc721.IsApprovedForAll failed")
		return false, err
	}
	return ok, nil
}
