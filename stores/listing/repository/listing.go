package repository

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/database/mongoclient"
	"github.com/nftmarket/goapi/base/log"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/keys"
	"github.com/nftmarket/goapi/domain/listing"
	"github.com/nftmarket/goapi/service/query"
	"github.com/nftmarket/goapi/service/redis"
)

const (
	// counterName is the seq document name for listing id allocation
	counterName = "listings"

	listingCacheTtl = 30 * time.Second
)

type counter struct {
	ChainId domain.ChainId `bson:"chainId"`
	Name    string         `bson:"name"`
	Seq     uint64         `bson:"seq"`
}

type listingRepo struct {
	q     query.Mongo
	redis redis.Service
}

// NewListingRepo creates new listing repo. redis is optional, pass nil to
// disable read caching.
func NewListingRepo(q query.Mongo, redis redis.Service) listing.Repo {
	return &listingRepo{q: q, redis: redis}
}

func (r *listingRepo) FindAll(ctx bCtx.Ctx, optsFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optsFns...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"optsFns": optsFns,
			"err":     err,
		}).Error("GetFindAllOptions failed")
		return nil, err
	}

	var (
		offset int    = 0
		limit  int    = 0
		sort   string = "-createdAt"
	)
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}
	if opts.Sort != nil {
		sort = *opts.Sort
	}

	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		ctx.WithFields(log.Fields{
			"opts": opts,
			"err":  err,
		}).Error("MakeBsonM failed")
		return nil, err
	}

	res := []*listing.Listing{}
	if err := r.q.Search(ctx, domain.TableListings, offset, limit, sort, sel, &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *listingRepo) FindOne(ctx bCtx.Ctx, id listing.Id) (*listing.Listing, error) {
	if cached := r.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	res := &listing.Listing{}
	if err := r.q.FindOne(ctx, domain.TableListings, bson.M{"chainId": id.ChainId, "listingId": id.ListingId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}

	r.cacheSet(ctx, id, res)
	return res, nil
}

func (r *listingRepo) Count(ctx bCtx.Ctx, optsFns ...listing.FindAllOptionsFunc) (int, error) {
	opts, err := listing.GetFindAllOptions(optsFns...)
	if err != nil {
		ctx.WithField("err", err).Error("GetFindAllOptions failed")
		return 0, err
	}
	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		ctx.WithField("err", err).Error("MakeBsonM failed")
		return 0, err
	}
	n, err := r.q.Count(ctx, domain.TableListings, sel)
	if err != nil {
		ctx.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}

func (r *listingRepo) Insert(ctx bCtx.Ctx, l *listing.Listing) error {
	l.LowerCase()
	if err := r.q.Insert(ctx, domain.TableListings, l); err == query.ErrDuplicateKey {
		return domain.ErrAlreadyListed
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"listing": l,
			"err":     err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *listingRepo) Patch(ctx bCtx.Ctx, id listing.Id, patchable listing.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("MakeBsonM failed")
		return err
	}
	sel := bson.M{"chainId": id.ChainId, "listingId": id.ListingId}
	if patchable.Active != nil {
		// compare-and-set: the flip only lands while the listing is still
		// in the opposite state, so concurrent terminal flips cannot both
		// succeed
		sel["active"] = !*patchable.Active
	}
	if err := r.q.Patch(ctx, domain.TableListings, sel, updater); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Patch failed")
		return err
	}

	r.cacheDel(ctx, id)
	return nil
}

func (r *listingRepo) NextId(ctx bCtx.Ctx, chainId domain.ChainId) (domain.ListingId, error) {
	res := &counter{}
	sel := bson.M{"chainId": chainId, "name": counterName}
	if err := r.q.Increment(ctx, domain.TableCounters, sel, res, "seq", 1); err != nil {
		ctx.WithFields(log.Fields{
			"chainId": chainId,
			"err":     err,
		}).Error("q.Increment failed")
		return 0, err
	}
	return domain.ListingId(res.Seq), nil
}

func cacheKey(id listing.Id) string {
	return keys.RedisKey(keys.PfxListing, string(domain.TableListings), id.ChainId.ToString(), id.ListingId.ToString())
}

func (r *listingRepo) cacheGet(ctx bCtx.Ctx, id listing.Id) *listing.Listing {
	if r.redis == nil {
		return nil
	}
	raw, err := r.redis.Get(ctx, cacheKey(id))
	if err != nil {
		if err != redis.ErrNotFound {
			ctx.WithField("err", err).Warn("redis.Get failed")
		}
		return nil
	}
	res := &listing.Listing{}
	if err := json.Unmarshal(raw, res); err != nil {
		ctx.WithField("err", err).Warn("unmarshal cached listing failed")
		return nil
	}
	return res
}

func (r *listingRepo) cacheSet(ctx bCtx.Ctx, id listing.Id, l *listing.Listing) {
	if r.redis == nil {
		return
	}
	raw, err := json.Marshal(l)
	if err != nil {
		ctx.WithField("err", err).Warn("marshal listing failed")
		return
	}
	if err := r.redis.Set(ctx, cacheKey(id), raw, listingCacheTtl); err != nil {
		ctx.WithField("err", err).Warn("redis.Set failed")
	}
}

func (r *listingRepo) cacheDel(ctx bCtx.Ctx, id listing.Id) {
	if r.redis == nil {
		return
	}
	if _, err := r.redis.Del(ctx, cacheKey(id)); err != nil {
		ctx.WithField("err", err).Warn("redis.Del failed")
	}
}
