package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/nftmarket/goapi/base/abi"
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/nft"
	"github.com/nftmarket/goapi/service/chain"
)

type Erc721 struct {
	chainService      chain.Client
	abi               ethabi.ABI
	erc721InterfaceId [4]byte
}

var _ nft.Contract = (*Erc721)(nil)

func NewErc721(chainService chain.Client) *Erc721 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	return &Erc721{
		abi:               baseabi.ERC721TokenABI,
		chainService:      chainService,
		erc721InterfaceId: interfaceId,
	}
}

func (e *Erc721) Supports721Interface(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (bool, error) {
	method := "supportsInterface"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(addr)), nil, e.abi, method, e.erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, chainId domain.ChainId, collection domain.Address, tokenId *big.Int) (domain.Address, error) {
	method := "ownerOf"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(collection)), nil, e.abi, method, tokenId)
	if err != nil {
		return domain.EmptyAddress, err
	}
	return domain.Address(unpacked[0].(common.Address).String()).ToLower(), nil
}

func (e *Erc721) GetApproved(ctx bCtx.Ctx, chainId domain.ChainId, collection domain.Address, tokenId *big.Int) (domain.Address, error) {
	method := "getApproved"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(collection)), nil, e.abi, method, tokenId)
	if err != nil {
		return domain.EmptyAddress, err
	}
	return domain.Address(unpacked[0].(common.Address).String()).ToLower(), nil
}

func (e *Erc721) IsApprovedForAll(ctx bCtx.Ctx, chainId domain.ChainId, collection domain.Address, owner, operator domain.Address) (bool, error) {
	method := "isApprovedForAll"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(collection)), nil, e.abi, method,
		common.HexToAddress(string(owner)), common.HexToAddress(string(operator)))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) TransferFrom(ctx bCtx.Ctx, chainId domain.ChainId, collection domain.Address, from, to domain.Address, tokenId *big.Int) (domain.TxHash, error) {
	method := "transferFrom"
	hash, err := e.chainService.Transact(ctx, int32(chainId), common.HexToAddress(string(collection)), e.abi, method,
		common.HexToAddress(string(from)), common.HexToAddress(string(to)), tokenId)
	if err != nil {
		return domain.TxHash(hash.Hex()), err
	}
	return domain.TxHash(hash.Hex()), nil
}
