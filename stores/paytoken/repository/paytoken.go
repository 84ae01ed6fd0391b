package repository

import (
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/database/mongoclient"
	"github.com/nftmarket/goapi/base/log"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/paytoken"
	"github.com/nftmarket/goapi/service/query"
)

type payTokenMongoRepo struct {
	q query.Mongo
}

func NewPayTokenRepo(q query.Mongo) paytoken.Repo {
	return &payTokenMongoRepo{
		q: q,
	}
}

func (r *payTokenMongoRepo) FindOne(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddress domain.Address) (*paytoken.PayToken, error) {
	payToken := &paytoken.PayToken{}
	if qry, err := mongoclient.MakeBsonM(&paytoken.PayToken{ChainId: chainId, Address: tokenAddress.ToLower()}); err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	} else if err := r.q.FindOne(ctx, domain.TablePayTokens, qry, payToken); err != nil && err != query.ErrNotFound {
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	} else if err == query.ErrNotFound {
		return nil, nil
	}
	return payToken, nil
}

func (r *payTokenMongoRepo) Create(ctx bCtx.Ctx, payToken *paytoken.PayToken) error {
	payToken.Address = payToken.Address.ToLower()
	if err := r.q.Insert(ctx, domain.TablePayTokens, payToken); err != nil {
		ctx.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *payTokenMongoRepo) Upsert(ctx bCtx.Ctx, payToken *paytoken.PayToken) error {
	payToken.Address = payToken.Address.ToLower()
	selector, err := mongoclient.MakeBsonM(payToken.ToId())
	if err != nil {
		ctx.WithField("err", err).Error("failed to make bson.M")
		return err
	}
	if err := r.q.Upsert(ctx, domain.TablePayTokens, selector, payToken); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  payToken.ToId(),
		}).Error("failed to update")
		return err
	}
	return nil
}
