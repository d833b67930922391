package ethtxhelper

import (
	"errors"
	"net"
	"strings"

	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/ethereum/go-ethereum"
)

var retryableMessages = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"EOF",
	"429 Too Many Requests",
	"502 Bad Gateway",
	"503 Service Unavailable",
	"header not found",
}

func IsRetryableEthError(err error) bool {
	if err == nil {
		return false
	}

	// Context was explicitly canceled or deadline exceeded; not retryable
	if common.IsContextDoneErr(err) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, ethereum.NotFound) {
		return true
	}

	errStr := err.Error()

	for _, msg := range retryableMessages {
		if strings.Contains(errStr, msg) {
			return true
		}
	}

	return false
}
