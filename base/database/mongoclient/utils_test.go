package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nftmarket/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	req := require.New(t)

	type record struct {
		ChainId   int32   `bson:"chainId"`
		ListingId uint64  `bson:"listingId"`
		Active    *bool   `bson:"active,omitempty"`
		Buyer     *string `bson:"buyer,omitempty"`
	}

	m, err := MakeBsonM(&record{
		ChainId:   1,
		ListingId: 42,
		Active:    ptr.Bool(false),
	})
	req.NoError(err)
	req.Equal(bson.M{
		"chainId":   int32(1),
		"listingId": uint64(42),
		"active":    false,
	}, m)
}
