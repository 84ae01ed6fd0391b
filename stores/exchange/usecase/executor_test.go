package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/exchange"
	nftmocks "github.com/nftmarket/goapi/domain/nft/mocks"
	paytokenmocks "github.com/nftmarket/goapi/domain/paytoken/mocks"
	"golang.org/x/xerrors"
)

var (
	operator = domain.Address("0x9999999999999999999999999999999999999999")
	seller   = domain.Address("0x1111111111111111111111111111111111111111")
	buyer    = domain.Address("0x2222222222222222222222222222222222222222")
	weth     = domain.Address("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

type executorTestSuite struct {
	suite.Suite

	erc721   *nftmocks.Contract
	erc20    *paytokenmocks.Contract
	executor exchange.Executor
}

func TestExecutor(t *testing.T) {
	suite.Run(t, new(executorTestSuite))
}

func (s *executorTestSuite) SetupTest() {
	s.erc721 = &nftmocks.Contract{}
	s.erc20 = &paytokenmocks.Contract{}
	s.executor = New(&ExecutorCfg{
		Erc721:   s.erc721,
		Erc20:    s.erc20,
		Operator: operator,
	})
}

func (s *executorTestSuite) fulfillment(price int64) *exchange.Fulfillment {
	return &exchange.Fulfillment{
		ChainId:      1,
		Collection:   "0x5af0d9827e0c53e4799bb226655a1de152a425a5",
		TokenId:      big.NewInt(7),
		Seller:       seller,
		Buyer:        buyer,
		PaymentToken: weth,
		Price:        big.NewInt(price),
	}
}

// mockPrecheckOK arranges a buyer with funds and a seller holding the
// asset with an approval to the operator.
func (s *executorTestSuite) mockPrecheckOK(f *exchange.Fulfillment) {
	if f.Price.Sign() > 0 {
		s.erc20.On("BalanceOf", mock.Anything, f.ChainId, f.PaymentToken, f.Buyer).Return(f.Price, nil)
		s.erc20.On("Allowance", mock.Anything, f.ChainId, f.PaymentToken, f.Buyer, operator).Return(f.Price, nil)
	}
	s.erc721.On("OwnerOf", mock.Anything, f.ChainId, f.Collection, f.TokenId).Return(f.Seller, nil)
	s.erc721.On("GetApproved", mock.Anything, f.ChainId, f.Collection, f.TokenId).Return(operator, nil)
}

func (s *executorTestSuite) TestExecuteSuccess() {
	ctx := bCtx.Background()
	f := s.fulfillment(100)
	s.mockPrecheckOK(f)

	s.erc20.On("TransferFrom", mock.Anything, f.ChainId, f.PaymentToken, buyer, operator, f.Price).
		Return(domain.TxHash("0xcharge"), nil)
	s.erc721.On("TransferFrom", mock.Anything, f.ChainId, f.Collection, seller, buyer, f.TokenId).
		Return(domain.TxHash("0xasset"), nil)
	s.erc20.On("Transfer", mock.Anything, f.ChainId, f.PaymentToken, seller, f.Price).
		Return(domain.TxHash("0xpayout"), nil)

	receipt, err := s.executor.Execute(ctx, f)
	s.NoError(err)
	s.Equal(domain.TxHash("0xasset"), receipt.AssetTx)
	s.Equal(domain.TxHash("0xpayout"), receipt.PaymentTx)
	s.erc20.AssertExpectations(s.T())
	s.erc721.AssertExpectations(s.T())
}

func (s *executorTestSuite) TestExecuteZeroPriceSkipsPayment() {
	ctx := bCtx.Background()
	f := s.fulfillment(0)
	s.mockPrecheckOK(f)

	s.erc721.On("TransferFrom", mock.Anything, f.ChainId, f.Collection, seller, buyer, f.TokenId).
		Return(domain.TxHash("0xasset"), nil)

	receipt, err := s.executor.Execute(ctx, f)
	s.NoError(err)
	s.Equal(domain.TxHash("0xasset"), receipt.AssetTx)
	s.Empty(receipt.PaymentTx)
	s.erc20.AssertNotCalled(s.T(), "TransferFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.erc20.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *executorTestSuite) TestExecuteInsufficientBalance() {
	ctx := bCtx.Background()
	f := s.fulfillment(100)

	s.erc20.On("BalanceOf", mock.Anything, f.ChainId, f.PaymentToken, buyer).Return(big.NewInt(99), nil)

	_, err := s.executor.Execute(ctx, f)
	s.Equal(domain.ErrInsufficientFunds, err)
	s.erc721.AssertNotCalled(s.T(), "TransferFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *executorTestSuite) TestExecuteInsufficientAllowance() {
	ctx := bCtx.Background()
	f := s.fulfillment(100)

	s.erc20.On("BalanceOf", mock.Anything, f.ChainId, f.PaymentToken, buyer).Return(f.Price, nil)
	s.erc20.On("Allowance", mock.Anything, f.ChainId, f.PaymentToken, buyer, operator).Return(big.NewInt(0), nil)

	_, err := s.executor.Execute(ctx, f)
	s.Equal(domain.ErrInsufficientFunds, err)
}

func (s *executorTestSuite) TestExecuteSellerNoLongerOwner() {
	ctx := bCtx.Background()
	f := s.fulfillment(100)

	s.erc20.On("BalanceOf", mock.Anything, f.ChainId, f.PaymentToken, buyer).Return(f.Price, nil)
	s.erc20.On("Allowance", mock.Anything, f.ChainId, f.PaymentToken, buyer, operator).Return(f.Price, nil)
	s.erc721.On("OwnerOf", mock.Anything, f.ChainId, f.Collection, f.TokenId).
		Return(domain.Address("0x4444444444444444444444444444444444444444"), nil)

	_, err := s.executor.Execute(ctx, f)
	s.Equal(domain.ErrTransferFailed, err)
	s.erc20.AssertNotCalled(s.T(), "TransferFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *executorTestSuite) TestExecuteNoOperatorApproval() {
	ctx := bCtx.Background()
	f := s.fulfillment(100)

	s.erc20.On("BalanceOf", mock.Anything, f.ChainId, f.PaymentToken, buyer).Return(f.Price, nil)
	s.erc20.On("Allowance", mock.Anything, f.ChainId, f.PaymentToken, buyer, operator).Return(f.Price, nil)
	s.erc721.On("OwnerOf", mock.Anything, f.ChainId, f.Collection, f.TokenId).Return(seller, nil)
	s.erc721.On("GetApproved", mock.Anything, f.ChainId, f.Collection, f.TokenId).Return(domain.EmptyAddress, nil)
	s.erc721.On("IsApprovedForAll", mock.Anything, f.ChainId, f.Collection, seller, operator).Return(false, nil)

	_, err := s.executor.Execute(ctx, f)
	s.Equal(domain.ErrTransferFailed, err)
}

func (s *executorTestSuite) TestExecuteAssetTransferFailureRefundsBuyer() {
	ctx := bCtx.Background()
	f := s.fulfillment(100)
	s.mockPrecheckOK(f)

	s.erc20.On("TransferFrom", mock.Anything, f.ChainId, f.PaymentToken, buyer, operator, f.Price).
		Return(domain.TxHash("0xcharge"), nil)
	s.erc721.On("TransferFrom", mock.Anything, f.ChainId, f.Collection, seller, buyer, f.TokenId).
		Return(domain.TxHash(""), xerrors.New("execution reverted"))
	s.erc20.On("Transfer", mock.Anything, f.ChainId, f.PaymentToken, buyer, f.Price).
		Return(domain.TxHash("0xrefund"), nil)

	_, err := s.executor.Execute(ctx, f)
	s.Equal(domain.ErrTransferFailed, err)
	s.erc20.AssertCalled(s.T(), "Transfer", mock.Anything, f.ChainId, f.PaymentToken, buyer, f.Price)
}

func (s *executorTestSuite) TestExecutePayoutFailureKeepsAsset() {
	ctx := bCtx.Background()
	f := s.fulfillment(100)
	s.mockPrecheckOK(f)

	s.erc20.On("TransferFrom", mock.Anything, f.ChainId, f.PaymentToken, buyer, operator, f.Price).
		Return(domain.TxHash("0xcharge"), nil)
	s.erc721.On("TransferFrom", mock.Anything, f.ChainId, f.Collection, seller, buyer, f.TokenId).
		Return(domain.TxHash("0xasset"), nil)
	s.erc20.On("Transfer", mock.Anything, f.ChainId, f.PaymentToken, seller, f.Price).
		Return(domain.TxHash(""), xerrors.New("execution reverted"))

	_, err := s.executor.Execute(ctx, f)
	s.Equal(domain.ErrTransferFailed, err)
	// no refund to the buyer once the asset has moved
	s.erc20.AssertNotCalled(s.T(), "Transfer", mock.Anything, f.ChainId, f.PaymentToken, buyer, f.Price)
}
