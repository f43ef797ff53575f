package service

import (
	"fmt"
	"regexp"
	"strings"

	"knowl/models"

	"github.com/ethereum/go-ethereum/common"
)

const (
	placeholderPrefix = "user_"
	placeholderStart  = 8
	placeholderStep   = 4
)

// bech32 human-readable part, the "1" separator and at least six data
// characters from the bech32 alphabet.
var bech32Address = regexp.MustCompile(`^[a-z]{1,83}1[02-9ac-hj-np-z]{6,}$`)

// NormalizeWallet returns the canonical form of a wallet address. EVM
// addresses become EIP-55 checksummed, bech32 addresses lower-case.
func NormalizeWallet(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("%w: empty address", models.ErrInvalidWallet)
	}

	if strings.HasPrefix(address, "0x") || strings.HasPrefix(address, "0X") {
		if !common.IsHexAddress(address) {
			return "", fmt.Errorf("%w: %q is not a 20-byte hex address", models.ErrInvalidWallet, address)
		}
		return common.HexToAddress(address).Hex(), nil
	}

	lower := strings.ToLower(address)
	if address != lower && address != strings.ToUpper(address) {
		return "", fmt.Errorf("%w: mixed-case bech32 address", models.ErrInvalidWallet)
	}
	if len(lower) > 90 || !bech32Address.MatchString(lower) {
		return "", fmt.Errorf("%w: %q is not a bech32 address", models.ErrInvalidWallet, address)
	}
	return lower, nil
}

// IsEVMAddress reports whether a normalized wallet is a hex address.
func IsEVMAddress(wallet string) bool {
	return strings.HasPrefix(wallet, "0x") && common.IsHexAddress(wallet)
}

func walletBody(wallet string) string {
	if IsEVMAddress(wallet) {
		return wallet[2:]
	}
	if i := strings.LastIndexByte(wallet, '1'); i >= 0 {
		return wallet[i+1:]
	}
	return wallet
}

// PlaceholderUsernames lists the derived usernames for a wallet, shortest
// first. The last entry embeds the whole address body.
func PlaceholderUsernames(wallet string) []string {
	body := walletBody(wallet)
	var out []string
	for n := placeholderStart; n < len(body); n += placeholderStep {
		out = append(out, placeholderPrefix+body[:n])
	}
	return append(out, placeholderPrefix+body)
}
