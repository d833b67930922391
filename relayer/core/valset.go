package core

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	peggyCommon "github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/ethereum/go-ethereum/common"
)

const signatureLength = 65

// OrderedSignatures holds signature components aligned 1:1 with Addresses.
// A missing signature is the zero placeholder v=0, r=s=0 which the contract skips.
type OrderedSignatures struct {
	Addresses   []common.Address
	Powers      []*big.Int
	V           []uint8
	R           [][32]byte
	S           [][32]byte
	SignedPower *big.Int
	Missing     int
}

// CheckPower fails when a threshold is set and the signed power does not exceed it
func (o *OrderedSignatures) CheckPower(threshold uint64) error {
	if threshold == 0 {
		return nil
	}

	if o.SignedPower == nil || o.SignedPower.Cmp(new(big.Int).SetUint64(threshold)) <= 0 {
		return fmt.Errorf("%w: signed %v, required more than %d", ErrInsufficientPower, o.SignedPower, threshold)
	}

	return nil
}

// FilterEmptyAddresses drops members without a usable ethereum address and keeps the order of the rest
func (v ValidatorSet) FilterEmptyAddresses() ([]common.Address, []*big.Int) {
	addresses := make([]common.Address, 0, len(v.Members))
	powers := make([]*big.Int, 0, len(v.Members))

	for _, member := range v.Members {
		if !peggyCommon.IsValidEthAddress(member.EthereumAddress) {
			continue
		}

		addresses = append(addresses, common.HexToAddress(member.EthereumAddress))
		powers = append(powers, new(big.Int).SetUint64(member.Power))
	}

	return addresses, powers
}

type parsedSignature struct {
	raw []byte
	v   uint8
	r   [32]byte
	s   [32]byte
}

// OrderSignatures lines confirmations up with the filtered members of v.
// With allowMissing an absent confirmation becomes a zero placeholder, otherwise it is ErrMissingSignature.
// Output depends only on the member list and the set of confirmations, never on confirmation order.
func (v ValidatorSet) OrderSignatures(confirms []Confirmation, allowMissing bool) (*OrderedSignatures, error) {
	addresses, powers := v.FilterEmptyAddresses()

	bySigner := make(map[common.Address]*parsedSignature, len(confirms))
	invalid := make(map[common.Address]error)

	for _, confirm := range confirms {
		if confirm == nil || !common.IsHexAddress(confirm.GetEthSigner()) {
			continue
		}

		signer := common.HexToAddress(confirm.GetEthSigner())

		sig, err := parseSignature(confirm.GetSignature())
		if err != nil {
			invalid[signer] = err

			continue
		}

		// duplicates resolve to the smallest signature so that input order does not matter
		if existing, exists := bySigner[signer]; !exists || bytes.Compare(sig.raw, existing.raw) < 0 {
			bySigner[signer] = sig
		}
	}

	result := &OrderedSignatures{
		Addresses:   addresses,
		Powers:      powers,
		V:           make([]uint8, len(addresses)),
		R:           make([][32]byte, len(addresses)),
		S:           make([][32]byte, len(addresses)),
		SignedPower: new(big.Int),
	}

	for i, addr := range addresses {
		sig, exists := bySigner[addr]
		if !exists {
			if err, isInvalid := invalid[addr]; isInvalid {
				return nil, fmt.Errorf("%w: validator %s: %w", ErrInvalidSignature, addr, err)
			}

			if !allowMissing {
				return nil, fmt.Errorf("%w: validator %s, valset nonce %d", ErrMissingSignature, addr, v.Nonce)
			}

			result.Missing++

			continue
		}

		result.V[i] = sig.v
		result.R[i] = sig.r
		result.S[i] = sig.s
		result.SignedPower.Add(result.SignedPower, powers[i])
	}

	return result, nil
}

// parseSignature decodes a 65 byte r||s||v signature, v is normalized to 27 or 28
func parseSignature(signature string) (*parsedSignature, error) {
	raw, err := peggyCommon.DecodeHex(strings.TrimSpace(signature))
	if err != nil {
		return nil, err
	}

	if len(raw) != signatureLength {
		return nil, fmt.Errorf("expected %d bytes, got %d", signatureLength, len(raw))
	}

	result := &parsedSignature{
		raw: raw,
		v:   raw[64],
	}

	if result.v < 27 {
		result.v += 27
	}

	if result.v != 27 && result.v != 28 {
		return nil, fmt.Errorf("unexpected recovery id %d", raw[64])
	}

	copy(result.r[:], raw[:32])
	copy(result.s[:], raw[32:64])

	return result, nil
}
