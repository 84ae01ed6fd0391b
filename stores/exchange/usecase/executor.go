package usecase

import (
	"github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/base/log"
	"github.com/nftmarket/goapi/base/metrics"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/exchange"
	"github.com/nftmarket/goapi/domain/nft"
	"github.com/nftmarket/goapi/domain/paytoken"
)

type ExecutorCfg struct {
	Erc721 nft.Contract
	Erc20  paytoken.Contract

	// Operator is the registry escrow account. Buyers grant it an erc20
	// allowance and sellers an erc721 approval before trading.
	Operator domain.Address
}

type impl struct {
	erc721   nft.Contract
	erc20    paytoken.Contract
	operator domain.Address
	met      metrics.Service
}

// New creates the settlement executor. Payment is pulled into the escrow
// account first so a failed asset transfer can be refunded from a balance
// the registry controls.
func New(cfg *ExecutorCfg) exchange.Executor {
	return &impl{
		erc721:   cfg.Erc721,
		erc20:    cfg.Erc20,
		operator: cfg.Operator.ToLower(),
		met:      metrics.New("exchange"),
	}
}

func (im *impl) Execute(ctx ctx.Ctx, f *exchange.Fulfillment) (*exchange.Receipt, error) {
	if err := im.precheck(ctx, f); err != nil {
		return nil, err
	}

	charge := f.Price.Sign() > 0
	receipt := &exchange.Receipt{}

	if charge {
		if _, err := im.erc20.TransferFrom(ctx, f.ChainId, f.PaymentToken, f.Buyer, im.operator, f.Price); err != nil {
			ctx.WithFields(log.Fields{
				"buyer": f.Buyer,
				"err":   err,
			}).Error("escrow charge failed")
			im.met.BumpSum("settle.err", 1, "phase", "charge")
			return nil, domain.ErrTransferFailed
		}
	}

	assetTx, err := im.erc721.TransferFrom(ctx, f.ChainId, f.Collection, f.Seller, f.Buyer, f.TokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"collection": f.Collection,
			"tokenId":    f.TokenId,
			"err":        err,
		}).Error("asset transfer failed")
		im.met.BumpSum("settle.err", 1, "phase", "asset")
		if charge {
			im.refund(ctx, f)
		}
		return nil, domain.ErrTransferFailed
	}
	receipt.AssetTx = assetTx

	if charge {
		paymentTx, err := im.erc20.Transfer(ctx, f.ChainId, f.PaymentToken, f.Seller, f.Price)
		if err != nil {
			// asset already moved, funds stay escrowed for manual payout
			ctx.WithFields(log.Fields{
				"seller": f.Seller,
				"price":  f.Price,
				"err":    err,
			}).Error("seller payout failed, funds held in escrow")
			im.met.BumpSum("settle.stuck", 1, "phase", "payout")
			return nil, domain.ErrTransferFailed
		}
		receipt.PaymentTx = paymentTx
	}

	im.met.BumpSum("settle.ok", 1)
	return receipt, nil
}

// precheck rejects fulfillments that would fail on chain, before any
// state-changing send goes out.
func (im *impl) precheck(ctx ctx.Ctx, f *exchange.Fulfillment) error {
	if f.Price.Sign() > 0 {
		balance, err := im.erc20.BalanceOf(ctx, f.ChainId, f.PaymentToken, f.Buyer)
		if err != nil {
			ctx.WithField("err", err).Error("erc20.BalanceOf failed")
			return err
		}
		if balance.Cmp(f.Price) < 0 {
			return domain.ErrInsufficientFunds
		}

		allowance, err := im.erc20.Allowance(ctx, f.ChainId, f.PaymentToken, f.Buyer, im.operator)
		if err != nil {
			ctx.WithField("err", err).Error("erc20.Allowance failed")
			return err
		}
		if allowance.Cmp(f.Price) < 0 {
			return domain.ErrInsufficientFunds
		}
	}

	owner, err := im.erc721.OwnerOf(ctx, f.ChainId, f.Collection, f.TokenId)
	if err != nil {
		ctx.WithField("err", err).Error("erc721.OwnerOf failed")
		return err
	}
	if !owner.Equals(f.Seller) {
		return domain.ErrTransferFailed
	}

	approved, err := im.erc721.GetApproved(ctx, f.ChainId, f.Collection, f.TokenId)
	if err != nil {
		ctx.WithField("err", err).Error("erc721.GetApproved failed")
		return err
	}
	if approved.Equals(im.operator) {
		return nil
	}
	ok, err := im.erc721.IsApprovedForAll(ctx, f.ChainId, f.Collection, f.Seller, im.operator)
	if err != nil {
		ctx.WithField("err", err).Error("erc721.IsApprovedForAll failed")
		return err
	}
	if !ok {
		return domain.ErrTransferFailed
	}
	return nil
}

func (im *impl) refund(ctx ctx.Ctx, f *exchange.Fulfillment) {
	if _, err := im.erc20.Transfer(ctx, f.ChainId, f.PaymentToken, f.Buyer, f.Price); err != nil {
		ctx.WithFields(log.Fields{
			"buyer": f.Buyer,
			"price": f.Price,
			"err":   err,
		}).Error("refund failed, funds held in escrow")
		im.met.BumpSum("settle.stuck", 1, "phase", "refund")
	}
}
