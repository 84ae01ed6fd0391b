package usecase

import (
	"time"

	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/log"
	pricefomatter "github.com/nftmarket/goapi/base/price_fomatter"
	"github.com/nftmarket/goapi/base/ptr"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/exchange"
	"github.com/nftmarket/goapi/domain/listing"
	"github.com/nftmarket/goapi/domain/nft"
	"github.com/nftmarket/goapi/service/query"
)

var timeNow = time.Now

type ListingUseCaseCfg struct {
	ListingRepo  listing.Repo
	ActivityRepo listing.ActivityRepo
	Authorizer   nft.Authorizer
	Executor     exchange.Executor
	Query        query.Mongo

	// PaymentTokens maps each supported chain to the erc20 every listing
	// on that chain is denominated in
	PaymentTokens  map[domain.ChainId]domain.Address
	PriceFormatter pricefomatter.PriceFormatter
}

type impl struct {
	listingRepo    listing.Repo
	activityRepo   listing.ActivityRepo
	authorizer     nft.Authorizer
	executor       exchange.Executor
	q              query.Mongo
	paymentTokens  map[domain.ChainId]domain.Address
	priceFormatter pricefomatter.PriceFormatter
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		listingRepo:    cfg.ListingRepo,
		activityRepo:   cfg.ActivityRepo,
		authorizer:     cfg.Authorizer,
		executor:       cfg.Executor,
		q:              cfg.Query,
		paymentTokens:  cfg.PaymentTokens,
		priceFormatter: cfg.PriceFormatter,
	}
}

func (im *impl) List(ctx bCtx.Ctx, asset listing.AssetId, seller domain.Address, price string) (domain.ListingId, error) {
	asset = asset.ToLower()
	seller = seller.ToLower()

	if _, err := asset.TokenId.ToBigInt(); err != nil {
		return 0, domain.ErrBadParamInput
	}
	if _, err := domain.ToPrice(price); err != nil {
		ctx.WithFields(log.Fields{
			"price": price,
			"err":   err,
		}).Warn("invalid listing price")
		return 0, domain.ErrInvalidListing
	}

	ok, err := im.authorizer.IsAuthorized(ctx, nft.AssetRef{
		ChainId:    asset.ChainId,
		Collection: asset.Collection,
		TokenId:    asset.TokenId,
	}, seller)
	if err != nil {
		ctx.WithFields(log.Fields{
			"asset":  asset,
			"seller": seller,
			"err":    err,
		}).Error("authorizer.IsAuthorized failed")
		return 0, err
	}
	if !ok {
		return 0, domain.ErrCallerNotAuthorized
	}

	payToken, ok := im.paymentTokens[asset.ChainId]
	if !ok {
		return 0, domain.ErrInvalidChainId
	}

	if n, err := im.listingRepo.Count(ctx,
		listing.WithChainId(asset.ChainId),
		listing.WithCollection(asset.Collection),
		listing.WithTokenId(asset.TokenId),
		listing.WithActive(true),
	); err != nil {
		ctx.WithField("err", err).Error("listingRepo.Count failed")
		return 0, err
	} else if n > 0 {
		return 0, domain.ErrAlreadyListed
	}

	var listingId domain.ListingId
	now := timeNow()
	err = im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		id, err := im.listingRepo.NextId(ctx, asset.ChainId)
		if err != nil {
			ctx.WithField("err", err).Error("listingRepo.NextId failed")
			return err
		}

		l := &listing.Listing{
			ChainId:      asset.ChainId,
			ListingId:    id,
			Collection:   asset.Collection,
			TokenId:      asset.TokenId,
			Seller:       seller,
			Price:        price,
			PaymentToken: payToken.ToLower(),
			Active:       true,
			CreatedAt:    now,
		}
		if err := im.listingRepo.Insert(ctx, l); err != nil {
			// unique partial index on the active asset closes the
			// check-then-insert race
			if err == domain.ErrAlreadyListed {
				return err
			}
			ctx.WithField("err", err).Error("listingRepo.Insert failed")
			return err
		}

		if err := im.activityRepo.Insert(ctx, im.toActivity(ctx, l, listing.ActivityTypeListed, now)); err != nil {
			ctx.WithField("err", err).Error("activityRepo.Insert failed")
			return err
		}

		listingId = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return listingId, nil
}

func (im *impl) Delist(ctx bCtx.Ctx, asset listing.AssetId, listingId domain.ListingId, caller domain.Address) error {
	asset = asset.ToLower()
	caller = caller.ToLower()

	l, err := im.getActive(ctx, asset.ChainId, listingId)
	if err != nil {
		return err
	}
	if err := matchAsset(l, asset); err != nil {
		return err
	}
	if !l.Seller.Equals(caller) {
		return domain.ErrCallerNotAuthorized
	}

	now := timeNow()
	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		if err := im.listingRepo.Patch(ctx, l.ToId(), listing.Patchable{
			Active:     ptr.Bool(false),
			DelistedAt: &now,
		}); err == domain.ErrNotFound {
			// another terminal flip landed after our read
			return domain.ErrNotListed
		} else if err != nil {
			ctx.WithFields(log.Fields{
				"id":  l.ToId(),
				"err": err,
			}).Error("listingRepo.Patch failed")
			return err
		}
		if err := im.activityRepo.Insert(ctx, im.toActivity(ctx, l, listing.ActivityTypeDelisted, now)); err != nil {
			ctx.WithField("err", err).Error("activityRepo.Insert failed")
			return err
		}
		return nil
	})
}

func (im *impl) Buy(ctx bCtx.Ctx, chainId domain.ChainId, listingId domain.ListingId, asset listing.AssetId, buyer domain.Address) (*listing.Settlement, error) {
	asset = asset.ToLower()
	buyer = buyer.ToLower()

	l, err := im.getActive(ctx, chainId, listingId)
	if err != nil {
		return nil, err
	}
	if err := matchAsset(l, asset); err != nil {
		return nil, err
	}
	if l.Seller.Equals(buyer) {
		return nil, domain.ErrInvalidListing
	}

	price, err := domain.ToPrice(l.Price)
	if err != nil {
		ctx.WithFields(log.Fields{
			"price": l.Price,
			"err":   err,
		}).Error("stored price is not parseable")
		return nil, domain.ErrInvalidListing
	}
	tokenId, err := l.TokenId.ToBigInt()
	if err != nil {
		ctx.WithField("err", err).Error("stored token id is not parseable")
		return nil, domain.ErrInvalidListing
	}

	now := timeNow()
	receipt := &exchange.Receipt{}
	err = im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		if err := im.listingRepo.Patch(ctx, l.ToId(), listing.Patchable{
			Active: ptr.Bool(false),
			Buyer:  &buyer,
			SoldAt: &now,
		}); err == domain.ErrNotFound {
			// another terminal flip landed after our read
			return domain.ErrNotListed
		} else if err != nil {
			ctx.WithFields(log.Fields{
				"id":  l.ToId(),
				"err": err,
			}).Error("listingRepo.Patch failed")
			return err
		}

		act := im.toActivity(ctx, l, listing.ActivityTypeSold, now)
		act.Buyer = buyer
		if err := im.activityRepo.Insert(ctx, act); err != nil {
			ctx.WithField("err", err).Error("activityRepo.Insert failed")
			return err
		}

		// settlement runs last so any transfer failure aborts the
		// ledger flip with it
		res, err := im.executor.Execute(ctx, &exchange.Fulfillment{
			ChainId:      l.ChainId,
			Collection:   l.Collection,
			TokenId:      tokenId,
			Seller:       l.Seller,
			Buyer:        buyer,
			PaymentToken: l.PaymentToken,
			Price:        price,
		})
		if err != nil {
			ctx.WithFields(log.Fields{
				"id":  l.ToId(),
				"err": err,
			}).Error("executor.Execute failed")
			return err
		}
		*receipt = *res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &listing.Settlement{
		ListingId:    l.ListingId,
		Collection:   l.Collection,
		TokenId:      l.TokenId,
		Seller:       l.Seller,
		Buyer:        buyer,
		Price:        l.Price,
		PaymentToken: l.PaymentToken,
		AssetTx:      receipt.AssetTx,
		PaymentTx:    receipt.PaymentTx,
	}, nil
}

func (im *impl) IsListed(ctx bCtx.Ctx, chainId domain.ChainId, listingId domain.ListingId) (bool, error) {
	l, err := im.listingRepo.FindOne(ctx, listing.Id{ChainId: chainId, ListingId: listingId})
	if err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		ctx.WithField("err", err).Error("listingRepo.FindOne failed")
		return false, err
	}
	return l.Active, nil
}

func (im *impl) GetPrice(ctx bCtx.Ctx, chainId domain.ChainId, listingId domain.ListingId) (string, error) {
	l, err := im.getActive(ctx, chainId, listingId)
	if err != nil {
		return "", err
	}
	return l.Price, nil
}

func (im *impl) GetListing(ctx bCtx.Ctx, chainId domain.ChainId, listingId domain.ListingId) (*listing.Listing, error) {
	l, err := im.listingRepo.FindOne(ctx, listing.Id{ChainId: chainId, ListingId: listingId})
	if err != nil {
		if err != domain.ErrNotFound {
			ctx.WithField("err", err).Error("listingRepo.FindOne failed")
		}
		return nil, err
	}
	return l, nil
}

func (im *impl) ResolveListingId(ctx bCtx.Ctx, asset listing.AssetId) (domain.ListingId, error) {
	asset = asset.ToLower()
	res, err := im.listingRepo.FindAll(ctx,
		listing.WithChainId(asset.ChainId),
		listing.WithCollection(asset.Collection),
		listing.WithTokenId(asset.TokenId),
		listing.WithActive(true),
		listing.WithPagination(0, 1),
	)
	if err != nil {
		ctx.WithField("err", err).Error("listingRepo.FindAll failed")
		return 0, err
	}
	if len(res) == 0 {
		return 0, domain.ErrNotListed
	}
	return res[0].ListingId, nil
}

func (im *impl) FindActivities(ctx bCtx.Ctx, opts ...listing.ActivityFindAllOptionsFunc) ([]*listing.Activity, error) {
	res, err := im.activityRepo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("activityRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

// getActive loads the listing and requires it to be active
func (im *impl) getActive(ctx bCtx.Ctx, chainId domain.ChainId, listingId domain.ListingId) (*listing.Listing, error) {
	l, err := im.listingRepo.FindOne(ctx, listing.Id{ChainId: chainId, ListingId: listingId})
	if err == domain.ErrNotFound {
		return nil, domain.ErrNotListed
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"chainId":   chainId,
			"listingId": listingId,
			"err":       err,
		}).Error("listingRepo.FindOne failed")
		return nil, err
	}
	if !l.Active {
		return nil, domain.ErrNotListed
	}
	return l, nil
}

func matchAsset(l *listing.Listing, asset listing.AssetId) error {
	if !l.Collection.Equals(asset.Collection) || l.TokenId != asset.TokenId {
		return domain.ErrInvalidListing
	}
	return nil
}

func (im *impl) toActivity(ctx bCtx.Ctx, l *listing.Listing, t listing.ActivityType, at time.Time) *listing.Activity {
	act := &listing.Activity{
		ChainId:      l.ChainId,
		ListingId:    l.ListingId,
		Collection:   l.Collection,
		TokenId:      l.TokenId,
		Type:         t,
		Seller:       l.Seller,
		Price:        l.Price,
		PaymentToken: l.PaymentToken,
		Time:         at,
	}
	if im.priceFormatter != nil {
		if dp, err := im.priceFormatter.GetDisplayPriceFromString(ctx, l.ChainId, l.PaymentToken, l.Price); err != nil {
			// display price is cosmetic, keep the activity
			ctx.WithField("err", err).Warn("GetDisplayPriceFromString failed")
		} else {
			act.DisplayPrice = dp.String()
		}
	}
	return act
}
