package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	bCtx "github.com/nftmarket/goapi/base/ctx"
	"github.com/nftmarket/goapi/domain"
	"github.com/nftmarket/goapi/domain/nft"
	"github.com/nftmarket/goapi/domain/nft/mocks"
	"golang.org/x/xerrors"
)

func TestIsAuthorized(t *testing.T) {
	var (
		owner    = domain.Address("0x1111111111111111111111111111111111111111")
		approvee = domain.Address("0x2222222222222222222222222222222222222222")
		operator = domain.Address("0x3333333333333333333333333333333333333333")
		stranger = domain.Address("0x4444444444444444444444444444444444444444")
		asset    = nft.AssetRef{
			ChainId:    1,
			Collection: "0x5af0d9827e0c53e4799bb226655a1de152a425a5",
			TokenId:    "7",
		}
		tokenId = big.NewInt(7)
	)

	tests := []struct {
		name    string
		caller  domain.Address
		mocking func(erc721 *mocks.Contract)
		want    bool
		wantErr error
	}{
		{
			name:   "owner is authorized",
			caller: owner,
			mocking: func(erc721 *mocks.Contract) {
				erc721.On("OwnerOf", mock.Anything, asset.ChainId, asset.Collection, tokenId).Return(owner, nil)
			},
			want: true,
		},
		{
			name:   "per token approvee is authorized",
			caller: approvee,
			mocking: func(erc721 *mocks.Contract) {
				erc721.On("OwnerOf", mock.Anything, asset.ChainId, asset.Collection, tokenId).Return(owner, nil)
				erc721.On("GetApproved", mock.Anything, asset.ChainId, asset.Collection, tokenId).Return(approvee, nil)
			},
			want: true,
		},
		{
			name:   "operator approved for all is authorized",
			caller: operator,
			mocking: func(erc721 *mocks.Contract) {
				erc721.On("OwnerOf", mock.Anything, asset.ChainId, asset.Collection, tokenId).Return(owner, nil)
				erc721.On("GetApproved", mock.Anything, asset.ChainId, asset.Collection, tokenId).Return(domain.EmptyAddress, nil)
				erc721.On("IsApprovedForAll", mock.Anything, asset.ChainId, asset.Collection, owner, operator).Return(true, nil)
			},
			want: true,
		},
		{
			name:   "stranger is rejected",
			caller: stranger,
			mocking: func(erc721 *mocks.Contract) {
				erc721.On("OwnerOf", mock.Anything, asset.ChainId, asset.Collection, tokenId).Return(owner, nil)
				erc721.On("GetApproved", mock.Anything, asset.ChainId, asset.Collection, tokenId).Return(domain.EmptyAddress, nil)
				erc721.On("IsApprovedForAll", mock.Anything, asset.ChainId, asset.Collection, owner, stranger).Return(false, nil)
			},
			want: false,
		},
		{
			name:    "empty caller is rejected without chain reads",
			caller:  "",
			mocking: func(erc721 *mocks.Contract) {},
			want:    false,
		},
		{
			name:   "ownerOf error propagates",
			caller: owner,
			mocking: func(erc721 *mocks.Contract) {
				erc721.On("OwnerOf", mock.Anything, asset.ChainId, asset.Collection, tokenId).
					Return(domain.EmptyAddress, xerrors.New("execution reverted"))
			},
			want:    false,
			wantErr: xerrors.New("execution reverted"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			erc721 := &mocks.Contract{}
			tt.mocking(erc721)

			authorizer := New(&AuthorizerCfg{Erc721: erc721})
			ok, err := authorizer.IsAuthorized(bCtx.Background(), asset, tt.caller)
			if tt.wantErr != nil {
				require.EqualError(t, err, tt.wantErr.Error())
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, ok)
			erc721.AssertExpectations(t)
		})
	}
}

func TestIsAuthorizedBadTokenId(t *testing.T) {
	erc721 := &mocks.Contract{}
	authorizer := New(&AuthorizerCfg{Erc721: erc721})

	_, err := authorizer.IsAuthorized(bCtx.Background(), nft.AssetRef{
		ChainId:    1,
		Collection: "0x5af0d9827e0c53e4799bb226655a1de152a425a5",
		TokenId:    "not-a-number",
	}, "0x1111111111111111111111111111111111111111")
	require.Equal(t, domain.ErrBadParamInput, err)
	erc721.AssertNotCalled(t, "OwnerOf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
