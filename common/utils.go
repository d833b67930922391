package common

import (
	"encoding/hex"
	"math/big"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

func IsValidURL(input string) bool {
	_, err := url.ParseRequestURI(input)

	return err == nil
}

// IsValidEthAddress reports whether s is a hex address different from the zero address
func IsValidEthAddress(s string) bool {
	return common.IsHexAddress(s) && common.HexToAddress(s) != (common.Address{})
}

func DecodeHex(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}

	return hex.DecodeString(s)
}

// MulPercentage returns value * percentage / 100
func MulPercentage(value *big.Int, percentage uint64) *big.Int {
	res := new(big.Int).Mul(value, new(big.Int).SetUint64(percentage))

	return res.Div(res, big.NewInt(100))
}

// MulFloat returns value * multiplier rounded down, used for gas limit headroom
func MulFloat(value uint64, multiplier float64) uint64 {
	if multiplier <= 0 {
		return value
	}

	return uint64(float64(value) * multiplier)
}
