package payment

type Step string

const (
	StepIdle      Step = "idle"
	StepSigning   Step = "signing"
	StepBridging  Step = "bridging"
	StepSettling  Step = "settling"
	StepCompleted Step = "completed"
	StepError     Step = "error"
)

// BridgeStatus tells how a cross-chain completion was established.
type BridgeStatus string

const (
	// BridgeInferred means only the source deposit was confirmed and the
	// destination fill is assumed after a grace delay.
	BridgeInferred BridgeStatus = "inferred"
	BridgeFilled   BridgeStatus = "filled"
)

type TransactionStatus struct {
	Step         Step         `json:"step"`
	AttemptID    string       `json:"attemptId,omitempty"`
	TxHash       string       `json:"txHash,omitempty"`
	Error        string       `json:"error,omitempty"`
	ChainId      uint64       `json:"chainId,omitempty"`
	Network      string       `json:"network,omitempty"`
	ChainName    string       `json:"chainName,omitempty"`
	ExplorerURL  string       `json:"explorerUrl,omitempty"`
	CrossChain   bool         `json:"crossChain,omitempty"`
	BridgeStatus BridgeStatus `json:"bridgeStatus,omitempty"`
	FillTxHash   string       `json:"fillTxHash,omitempty"`
}

// IdleStatus is the record every orchestrator starts from and resets to.
func IdleStatus() TransactionStatus {
	return TransactionStatus{Step: StepIdle}
}

func (s TransactionStatus) Terminal() bool {
	return s.Step == StepCompleted || s.Step == StepError
}
