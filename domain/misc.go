package domain

import (
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

type ChainId int32

func (c ChainId) ToString() string {
	return strconv.FormatInt(int64(c), 10)
}

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid token id %s", i)
	}
	return id, nil
}

// ListingId is assigned by the listing ledger, monotonically increasing
// per chain and never reused.
type ListingId uint64

func (i ListingId) ToString() string {
	return strconv.FormatUint(uint64(i), 10)
}

type BlockNumber uint64

type TxHash string

// Table is a mongo collection name
type Table string

const (
	TableListings          Table = "listings"
	TableListingActivities Table = "listing_activities"
	TableCounters          Table = "counters"
	TablePayTokens         Table = "pay_tokens"
)

// ToPrice parses a base-unit price into a non-negative big integer.
// Zero is a valid price.
func ToPrice(s string) (*big.Int, error) {
	p, ok := new(big.Int).SetString(s, 10)
	if !ok || p.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return p, nil
}
