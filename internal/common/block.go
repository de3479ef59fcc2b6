package common

import (
	"math/big"
	"time"
)

// Block is the chain position a report snapshot is taken at.
type Block struct {
	Number    *big.Int
	Timestamp uint64
}

func (b Block) Time() time.Time {
	return time.Unix(int64(b.Timestamp), 0).UTC()
}
