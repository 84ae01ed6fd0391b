package repository

import (
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/database/mongoclient"
	"github.com/nftmarket/goapi/base/log"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/listing"
	"github.com/nftmarket/goapi/service/query"
)

type activityRepo struct {
	q query.Mongo
}

// NewActivityRepo creates new listing activity repo
func NewActivityRepo(q query.Mongo) listing.ActivityRepo {
	return &activityRepo{q: q}
}

func (r *activityRepo) Insert(ctx bCtx.Ctx, activity *listing.Activity) error {
	activity.Collection = activity.Collection.ToLower()
	activity.Seller = activity.Seller.ToLower()
	activity.Buyer = activity.Buyer.ToLower()
	activity.PaymentToken = activity.PaymentToken.ToLower()
	if err := r.q.Insert(ctx, domain.TableListingActivities, activity); err != nil {
		ctx.WithFields(log.Fields{
			"activity": activity,
			"err":      err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *activityRepo) FindAll(ctx bCtx.Ctx, optsFns ...listing.ActivityFindAllOptionsFunc) ([]*listing.Activity, error) {
	opts, err := listing.GetActivityFindAllOptions(optsFns...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"optsFns": optsFns,
			"err":     err,
		}).Error("GetActivityFindAllOptions failed")
		return nil, err
	}

	var (
		offset int = 0
		limit  int = 0
	)
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		ctx.WithFields(log.Fields{
			"opts": opts,
			"err":  err,
		}).Error("MakeBsonM failed")
		return nil, err
	}

	res := []*listing.Activity{}
	if err := r.q.Search(ctx, domain.TableListingActivities, offset, limit, "-time", sel, &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
