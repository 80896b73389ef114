package x402

import "sort"

const (
	NetworkBaseSepolia     = "base-sepolia"
	NetworkOptimismSepolia = "optimism-sepolia"
	NetworkBase            = "base"
	NetworkOptimism        = "optimism"
)

var networkChainIds = map[string]uint64{
	NetworkBaseSepolia:     84532,
	NetworkOptimismSepolia: 11155420,
	NetworkBase:            8453,
	NetworkOptimism:        10,
}

// ChainIdToNetwork returns the x402 network name of an EVM chain.
func ChainIdToNetwork(chainId uint64) (string, bool) {
	for network, id := range networkChainIds {
		if id == chainId {
			return network, true
		}
	}
	return "", false
}

func NetworkToChainId(network string) (uint64, bool) {
	id, ok := networkChainIds[network]
	return id, ok
}

// Networks lists the known network names in a stable order.
func Networks() []string {
	networks := make([]string, 0, len(networkChainIds))
	for network := range networkChainIds {
		networks = append(networks, network)
	}
	sort.Strings(networks)
	return networks
}
