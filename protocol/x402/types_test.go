package x402_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/protocol/x402"
	"github.com/stretchr/testify/suite"
)

func Test_SettleResponse_Result(t *testing.T) {
	tests := []struct {
		name       string
		resp       x402.SettleResponse
		wantTx     string
		wantErr    error
		wantReason string
	}{
		{
			name:   "success",
			resp:   x402.SettleResponse{Success: true, Transaction: "0xabc"},
			wantTx: "0xabc",
		},
		{
			name:    "documentation endpoint",
			resp:    x402.SettleResponse{Endpoint: "/v1/settle"},
			wantErr: x402.ErrDocumentationResponse,
		},
		{
			name:    "documentation description with success flag",
			resp:    x402.SettleResponse{Success: true, Transaction: "0xabc", Description: "Settle a payment"},
			wantErr: x402.ErrDocumentationResponse,
		},
		{
			name:       "rejected with reason",
			resp:       x402.SettleResponse{Success: false, ErrorReason: "insufficient_funds"},
			wantErr:    x402.ErrSettlementRejected,
			wantReason: "settlement rejected: insufficient_funds",
		},
		{
			name:       "success without transaction",
			resp:       x402.SettleResponse{Success: true},
			wantErr:    x402.ErrSettlementRejected,
			wantReason: "settlement rejected: No transaction hash returned",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := tc.resp.Result()

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if tc.wantReason != "" && err.Error() != tc.wantReason {
					t.Errorf("expected reason %q, got %q", tc.wantReason, err.Error())
				}
				return
			}
			if err != nil || tx != tc.wantTx {
				t.Errorf("expected %s, got %s (%v)", tc.wantTx, tx, err)
			}
		})
	}
}

type RequirementsTestSuite struct {
	suite.Suite

	params x402.RequirementsParams
}

func TestRunRequirementsTestSuite(t *testing.T) {
	suite.Run(t, new(RequirementsTestSuite))
}

func (s *RequirementsTestSuite) SetupTest() {
	s.params = x402.RequirementsParams{
		Amount:             big.NewInt(1000000),
		Network:            x402.NetworkBaseSepolia,
		SourceChainId:      84532,
		Asset:              common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e"),
		Proxy:              common.HexToAddress("0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1"),
		CreditedRecipient:  common.HexToAddress("0x85B7B882EeCDfC709EF167Ec8D350064E85F1b07"),
		TokenName:          "USDC",
		TokenVersion:       "2",
		DestinationNetwork: x402.NetworkOptimismSepolia,
		DestinationChainId: 11155420,
		DestinationProxy:   common.HexToAddress("0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1"),
		DepositParams: x402.DepositParams{
			DestinationChainId: "11155420",
			OutputAmount:       "995000",
			QuoteTimestamp:     1700000000,
			FillDeadline:       1700001800,
		},
	}
}

func (s *RequirementsTestSuite) Test_CrossChain() {
	req := x402.NewPaymentRequirements(s.params)

	s.Nil(req.Validate())
	s.Equal(s.params.Proxy.Hex(), req.PayTo)
	s.Equal(s.params.CreditedRecipient.Hex(), req.Recipient)
	s.Equal("1000000", req.MaxAmountRequired)
	s.Equal(x402.DEFAULT_RESOURCE, req.Resource)
	s.Equal(x402.DEFAULT_MAX_TIMEOUT_SECONDS, req.MaxTimeoutSeconds)
	s.True(req.Extra.IsCrossChain)
	s.Equal(uint64(11155420), req.Extra.EIP712Domain.ChainId)
	s.Equal("X402ProxyFacilitatorV2", req.Extra.EIP712Domain.Name)
	s.Equal(s.params.DestinationProxy.Hex(), req.Extra.EIP712Domain.VerifyingContract)
}

func (s *RequirementsTestSuite) Test_SameChain() {
	s.params.DepositParams.DestinationChainId = "84532"
	s.params.DestinationChainId = 84532

	req := x402.NewPaymentRequirements(s.params)

	s.False(req.Extra.IsCrossChain)
}

func (s *RequirementsTestSuite) Test_Validate_InvalidPayTo() {
	req := x402.NewPaymentRequirements(s.params)
	req.PayTo = "not-an-address"

	err := req.Validate()

	var x402Err *x402.Error
	s.True(errors.As(err, &x402Err))
	s.Equal(x402.ErrCodeInvalidRequirements, x402Err.Code)
}

func (s *RequirementsTestSuite) Test_ParsePaymentRequirements() {
	_, err := x402.ParsePaymentRequirements([]byte(`{"scheme": "exact"}`))
	s.NotNil(err)

	req, err := x402.ParsePaymentRequirements([]byte(`{
		"scheme": "exact",
		"network": "base-sepolia",
		"maxAmountRequired": "10000",
		"resource": "https://api.mrdn.finance/v1/samples",
		"payTo": "0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1",
		"maxTimeoutSeconds": 60,
		"asset": "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
		"extra": {"name": "USDC", "version": "2"}
	}`))
	s.Nil(err)
	s.Equal("USDC", req.Extra.Name)
}
