package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/exchange"
	exchangemocks "github.com/nftmarket/goapi/domain/exchange/mocks"
	"github.com/nftmarket/goapi/domain/listing"
	listingmocks "github.com/nftmarket/goapi/domain/listing/mocks"
	nftmocks "github.com/nftmarket/goapi/domain/nft/mocks"
	querymocks "github.com/nftmarket/goapi/service/query/mocks"
)

var (
	testChainId    = domain.ChainId(1)
	testCollection = domain.Address("0x5af0d9827e0c53e4799bb226655a1de152a425a5")
	testTokenId    = domain.TokenId("1")
	testSeller     = domain.Address("0x1111111111111111111111111111111111111111")
	testBuyer      = domain.Address("0x2222222222222222222222222222222222222222")
	testPayToken   = domain.Address("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

type listingUseCaseTestSuite struct {
	suite.Suite

	listingRepo  *listingmocks.Repo
	activityRepo *listingmocks.ActivityRepo
	authorizer   *nftmocks.Authorizer
	executor     *exchangemocks.Executor
	q            *querymocks.Mongo
	uc           listing.UseCase
}

func TestListingUseCase(t *testing.T) {
	suite.Run(t, new(listingUseCaseTestSuite))
}

func (s *listingUseCaseTestSuite) SetupTest() {
	s.listingRepo = &listingmocks.Repo{}
	s.activityRepo = &listingmocks.ActivityRepo{}
	s.authorizer = &nftmocks.Authorizer{}
	s.executor = &exchangemocks.Executor{}
	s.q = &querymocks.Mongo{}

	// passthrough transaction
	s.q.On("RunWithTransaction", mock.Anything, mock.Anything).
		Return(func(c bCtx.Ctx, run func(bCtx.Ctx) error) error {
			return run(c)
		}).Maybe()

	s.uc = New(&ListingUseCaseCfg{
		ListingRepo:  s.listingRepo,
		ActivityRepo: s.activityRepo,
		Authorizer:   s.authorizer,
		Executor:     s.executor,
		Query:        s.q,
		PaymentTokens: map[domain.ChainId]domain.Address{
			testChainId: testPayToken,
		},
	})
}

func (s *listingUseCaseTestSuite) asset() listing.AssetId {
	return listing.AssetId{ChainId: testChainId, Collection: testCollection, TokenId: testTokenId}
}

func (s *listingUseCaseTestSuite) activeListing() *listing.Listing {
	return &listing.Listing{
		ChainId:      testChainId,
		ListingId:    2,
		Collection:   testCollection,
		TokenId:      testTokenId,
		Seller:       testSeller,
		Price:        "10",
		PaymentToken: testPayToken,
		Active:       true,
		CreatedAt:    time.Now().Add(-time.Hour),
	}
}

func (s *listingUseCaseTestSuite) TestListSuccess() {
	ctx := bCtx.Background()

	s.authorizer.On("IsAuthorized", mock.Anything, mock.Anything, testSeller).Return(true, nil)
	s.listingRepo.On("Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	s.listingRepo.On("NextId", mock.Anything, testChainId).Return(domain.ListingId(1), nil)
	s.listingRepo.On("Insert", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.ListingId == 1 && l.Active && l.Price == "10" && l.Seller == testSeller && l.PaymentToken == testPayToken
	})).Return(nil)
	s.activityRepo.On("Insert", mock.Anything, mock.MatchedBy(func(a *listing.Activity) bool {
		return a.Type == listing.ActivityTypeListed && a.ListingId == 1
	})).Return(nil)

	id, err := s.uc.List(ctx, s.asset(), testSeller, "10")
	s.NoError(err)
	s.Equal(domain.ListingId(1), id)
	s.listingRepo.AssertExpectations(s.T())
	s.activityRepo.AssertExpectations(s.T())
}

func (s *listingUseCaseTestSuite) TestListNotAuthorized() {
	ctx := bCtx.Background()

	s.authorizer.On("IsAuthorized", mock.Anything, mock.Anything, testBuyer).Return(false, nil)

	_, err := s.uc.List(ctx, s.asset(), testBuyer, "10")
	s.Equal(domain.ErrCallerNotAuthorized, err)
	s.listingRepo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestListAlreadyListed() {
	ctx := bCtx.Background()

	s.authorizer.On("IsAuthorized", mock.Anything, mock.Anything, testSeller).Return(true, nil)
	s.listingRepo.On("Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(1, nil)

	_, err := s.uc.List(ctx, s.asset(), testSeller, "10")
	s.Equal(domain.ErrAlreadyListed, err)
	s.listingRepo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestListInvalidPrice() {
	ctx := bCtx.Background()

	for _, price := range []string{"", "abc", "-5", "1.5"} {
		_, err := s.uc.List(ctx, s.asset(), testSeller, price)
		s.Equal(domain.ErrInvalidListing, err, "price %q", price)
	}
}

func (s *listingUseCaseTestSuite) TestListZeroPriceAllowed() {
	ctx := bCtx.Background()

	s.authorizer.On("IsAuthorized", mock.Anything, mock.Anything, testSeller).Return(true, nil)
	s.listingRepo.On("Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	s.listingRepo.On("NextId", mock.Anything, testChainId).Return(domain.ListingId(3), nil)
	s.listingRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.activityRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	id, err := s.uc.List(ctx, s.asset(), testSeller, "0")
	s.NoError(err)
	s.Equal(domain.ListingId(3), id)
}

func (s *listingUseCaseTestSuite) TestListInsertRace() {
	// the unique partial index rejects the concurrent duplicate even
	// after the pre-insert count passed
	ctx := bCtx.Background()

	s.authorizer.On("IsAuthorized", mock.Anything, mock.Anything, testSeller).Return(true, nil)
	s.listingRepo.On("Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	s.listingRepo.On("NextId", mock.Anything, testChainId).Return(domain.ListingId(4), nil)
	s.listingRepo.On("Insert", mock.Anything, mock.Anything).Return(domain.ErrAlreadyListed)

	_, err := s.uc.List(ctx, s.asset(), testSeller, "10")
	s.Equal(domain.ErrAlreadyListed, err)
}

func (s *listingUseCaseTestSuite) TestDelistSuccess() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ToId(), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Active != nil && !*p.Active && p.DelistedAt != nil && p.Buyer == nil
	})).Return(nil)
	s.activityRepo.On("Insert", mock.Anything, mock.MatchedBy(func(a *listing.Activity) bool {
		return a.Type == listing.ActivityTypeDelisted
	})).Return(nil)

	err := s.uc.Delist(ctx, s.asset(), l.ListingId, testSeller)
	s.NoError(err)
	s.listingRepo.AssertExpectations(s.T())
}

func (s *listingUseCaseTestSuite) TestDelistByNonSeller() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)

	err := s.uc.Delist(ctx, s.asset(), l.ListingId, testBuyer)
	s.Equal(domain.ErrCallerNotAuthorized, err)
	s.listingRepo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestDelistInactive() {
	ctx := bCtx.Background()
	l := s.activeListing()
	l.Active = false

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)

	err := s.uc.Delist(ctx, s.asset(), l.ListingId, testSeller)
	s.Equal(domain.ErrNotListed, err)
}

func (s *listingUseCaseTestSuite) TestDelistUnknownListing() {
	ctx := bCtx.Background()

	s.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	err := s.uc.Delist(ctx, s.asset(), 99, testSeller)
	s.Equal(domain.ErrNotListed, err)
}

func (s *listingUseCaseTestSuite) TestBuySuccess() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ToId(), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Active != nil && !*p.Active && p.Buyer != nil && *p.Buyer == testBuyer && p.SoldAt != nil
	})).Return(nil)
	s.activityRepo.On("Insert", mock.Anything, mock.MatchedBy(func(a *listing.Activity) bool {
		return a.Type == listing.ActivityTypeSold && a.Buyer == testBuyer
	})).Return(nil)
	s.executor.On("Execute", mock.Anything, mock.MatchedBy(func(f *exchange.Fulfillment) bool {
		return f.Seller == testSeller && f.Buyer == testBuyer && f.Price.String() == "10"
	})).Return(&exchange.Receipt{AssetTx: "0xa", PaymentTx: "0xb"}, nil)

	res, err := s.uc.Buy(ctx, testChainId, l.ListingId, s.asset(), testBuyer)
	s.NoError(err)
	s.Equal(testBuyer, res.Buyer)
	s.Equal(testSeller, res.Seller)
	s.Equal("10", res.Price)
	s.Equal(domain.TxHash("0xa"), res.AssetTx)
	s.Equal(domain.TxHash("0xb"), res.PaymentTx)
	s.listingRepo.AssertExpectations(s.T())
	s.executor.AssertExpectations(s.T())
}

func (s *listingUseCaseTestSuite) TestBuyInsufficientFunds() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.activityRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.executor.On("Execute", mock.Anything, mock.Anything).Return(nil, domain.ErrInsufficientFunds)

	_, err := s.uc.Buy(ctx, testChainId, l.ListingId, s.asset(), testBuyer)
	s.Equal(domain.ErrInsufficientFunds, err)
}

func (s *listingUseCaseTestSuite) TestBuyTransferFailed() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.activityRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	s.executor.On("Execute", mock.Anything, mock.Anything).Return(nil, domain.ErrTransferFailed)

	_, err := s.uc.Buy(ctx, testChainId, l.ListingId, s.asset(), testBuyer)
	s.Equal(domain.ErrTransferFailed, err)
}

func (s *listingUseCaseTestSuite) TestBuyInactive() {
	ctx := bCtx.Background()
	l := s.activeListing()
	l.Active = false

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)

	_, err := s.uc.Buy(ctx, testChainId, l.ListingId, s.asset(), testBuyer)
	s.Equal(domain.ErrNotListed, err)
	s.executor.AssertNotCalled(s.T(), "Execute", mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestBuyBySeller() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)

	_, err := s.uc.Buy(ctx, testChainId, l.ListingId, s.asset(), testSeller)
	s.Equal(domain.ErrInvalidListing, err)
}

func (s *listingUseCaseTestSuite) TestBuyAssetMismatch() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)

	other := s.asset()
	other.TokenId = "999"
	_, err := s.uc.Buy(ctx, testChainId, l.ListingId, other, testBuyer)
	s.Equal(domain.ErrInvalidListing, err)
}

func (s *listingUseCaseTestSuite) TestBuyLostFlipRace() {
	// a concurrent terminal flip lands between our read and the patch,
	// the compare-and-set reports no match and the purchase aborts
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ToId(), mock.Anything).Return(domain.ErrNotFound)

	_, err := s.uc.Buy(ctx, testChainId, l.ListingId, s.asset(), testBuyer)
	s.Equal(domain.ErrNotListed, err)
	s.executor.AssertNotCalled(s.T(), "Execute", mock.Anything, mock.Anything)
	s.activityRepo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestDelistLostFlipRace() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil)
	s.listingRepo.On("Patch", mock.Anything, l.ToId(), mock.Anything).Return(domain.ErrNotFound)

	err := s.uc.Delist(ctx, s.asset(), l.ListingId, testSeller)
	s.Equal(domain.ErrNotListed, err)
	s.activityRepo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *listingUseCaseTestSuite) TestIsListed() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil).Once()
	listed, err := s.uc.IsListed(ctx, testChainId, l.ListingId)
	s.NoError(err)
	s.True(listed)

	l.Active = false
	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil).Once()
	listed, err = s.uc.IsListed(ctx, testChainId, l.ListingId)
	s.NoError(err)
	s.False(listed)

	s.listingRepo.On("FindOne", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
	listed, err = s.uc.IsListed(ctx, testChainId, 42)
	s.NoError(err)
	s.False(listed)
}

func (s *listingUseCaseTestSuite) TestGetPrice() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil).Once()
	price, err := s.uc.GetPrice(ctx, testChainId, l.ListingId)
	s.NoError(err)
	s.Equal("10", price)

	l.Active = false
	s.listingRepo.On("FindOne", mock.Anything, l.ToId()).Return(l, nil).Once()
	_, err = s.uc.GetPrice(ctx, testChainId, l.ListingId)
	s.Equal(domain.ErrNotListed, err)
}

func (s *listingUseCaseTestSuite) TestResolveListingId() {
	ctx := bCtx.Background()
	l := s.activeListing()

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	id, err := s.uc.ResolveListingId(ctx, s.asset())
	s.NoError(err)
	s.Equal(l.ListingId, id)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{}, nil).Once()
	_, err = s.uc.ResolveListingId(ctx, s.asset())
	s.Equal(domain.ErrNotListed, err)
}
