package x402

import (
	"errors"
	"fmt"
)

var ErrNoMatchingRequirement = errors.New("no payment requirement for network")

// SelectRequirement picks the descriptor the payer can pay on its connected
// network. Among the descriptors for that network the first "exact" one wins,
// otherwise the first one. The input order is the tie breaker.
func SelectRequirement(reqs []PaymentRequirements, network string) (PaymentRequirements, error) {
	match := -1
	for i, req := range reqs {
		if req.Network != network {
			continue
		}
		if req.Scheme == SCHEME_EXACT {
			return req, nil
		}
		if match == -1 {
			match = i
		}
	}

	if match == -1 {
		return PaymentRequirements{}, fmt.Errorf("%w %s", ErrNoMatchingRequirement, network)
	}
	return reqs[match], nil
}
