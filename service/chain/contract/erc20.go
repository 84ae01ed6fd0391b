package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/nftmarket/goapi/base/abi"
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/paytoken"
	"github.com/nftmarket/goapi/service/chain"
)

type Erc20 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

var _ paytoken.Contract = (*Erc20)(nil)

func NewErc20(chainService chain.Client) *Erc20 {
	return &Erc20{
		abi:          baseabi.ERC20TokenABI,
		chainService: chainService,
	}
}

func (e *Erc20) Allowance(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, owner, spender domain.Address) (*big.Int, error) {
	method := "allowance"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(token)), nil, e.abi, method,
		common.HexToAddress(string(owner)), common.HexToAddress(string(spender)))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) BalanceOf(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, owner domain.Address) (*big.Int, error) {
	method := "balanceOf"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(token)), nil, e.abi, method,
		common.HexToAddress(string(owner)))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Decimals(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address) (int32, error) {
	method := "decimals"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(token)), nil, e.abi, method)
	if err != nil {
		return 0, err
	}
	return int32(unpacked[0].(uint8)), nil
}

func (e *Erc20) Symbol(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address) (string, error) {
	method := "symbol"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(token)), nil, e.abi, method)
	if err != nil {
		return "", err
	}
	return unpacked[0].(string), nil
}

func (e *Erc20) TransferFrom(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, from, to domain.Address, amount *big.Int) (domain.TxHash, error) {
	method := "transferFrom"
	hash, err := e.chainService.Transact(ctx, int32(chainId), common.HexToAddress(string(token)), e.abi, method,
		common.HexToAddress(string(from)), common.HexToAddress(string(to)), amount)
	if err != nil {
		return domain.TxHash(hash.Hex()), err
	}
	return domain.TxHash(hash.Hex()), nil
}

func (e *Erc20) Transfer(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, to domain.Address, amount *big.Int) (domain.TxHash, error) {
	method := "transfer"
	hash, err := e.chainService.Transact(ctx, int32(chainId), common.HexToAddress(string(token)), e.abi, method,
		common.HexToAddress(string(to)), amount)
	if err != nil {
		return domain.TxHash(hash.Hex()), err
	}
	return domain.TxHash(hash.Hex()), nil
}
