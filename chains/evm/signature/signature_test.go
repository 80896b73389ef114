package signature_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mrdnfinance/x402-across/chains/evm/signature"
	"github.com/stretchr/testify/suite"
)

type SignatureTestSuite struct {
	suite.Suite

	message signature.AcrossMessage
	proxy   common.Address
}

func TestRunSignatureTestSuite(t *testing.T) {
	suite.Run(t, new(SignatureTestSuite))
}

func (s *SignatureTestSuite) SetupTest() {
	s.proxy = common.HexToAddress("0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1")
	s.message = signature.AcrossMessage{
		OriginalSender:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		CreditedRecipient:  common.HexToAddress("0x85B7B882EeCDfC709EF167Ec8D350064E85F1b07"),
		Platform:           common.Address{},
		ExpectedAmount:     big.NewInt(1000000),
		PlatformFeeBps:     big.NewInt(0),
		Nonce:              [32]byte{7},
		SourceChainId:      big.NewInt(84532),
		DestinationChainId: big.NewInt(11155420),
		Token:              common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e"),
		RecipientContract:  s.proxy,
	}
}

func (s *SignatureTestSuite) Test_AcrossDomain_UsesDestination() {
	domain := signature.AcrossDomain(big.NewInt(11155420), s.proxy)

	s.Equal(signature.ACROSS_DOMAIN_NAME, domain.Name)
	s.Equal("1", domain.Version)
	s.Equal(big.NewInt(11155420), domain.ChainId)
	s.Equal(s.proxy, domain.VerifyingContract)
}

func (s *SignatureTestSuite) Test_Hash_DomainChainIdChangesDigest() {
	destination := signature.AcrossMessageTypedData(signature.AcrossDomain(big.NewInt(11155420), s.proxy), s.message)
	source := signature.AcrossMessageTypedData(signature.AcrossDomain(big.NewInt(84532), s.proxy), s.message)

	destinationHash, err := signature.Hash(destination)
	s.Nil(err)
	sourceHash, err := signature.Hash(source)
	s.Nil(err)

	s.Len(destinationHash, 32)
	s.NotEqual(destinationHash, sourceHash)
}

func (s *SignatureTestSuite) Test_SignAndRecover_TransferWithAuthorization() {
	key, _ := crypto.GenerateKey()
	from := crypto.PubkeyToAddress(key.PublicKey)
	typedData := signature.TransferWithAuthorizationTypedData(signature.Domain{
		Name:              "USDC",
		Version:           "2",
		ChainId:           big.NewInt(84532),
		VerifyingContract: common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e"),
	}, signature.TransferWithAuthorization{
		From:        from,
		To:          s.proxy,
		Value:       big.NewInt(1000000),
		ValidAfter:  big.NewInt(0),
		ValidBefore: big.NewInt(1700000060),
		Nonce:       [32]byte{9},
	})

	sig, err := signature.Sign(typedData, key)
	s.Nil(err)
	s.Len(sig, 65)
	s.True(sig[64] == 27 || sig[64] == 28)

	recovered, err := signature.Recover(typedData, sig)
	s.Nil(err)
	s.Equal(from, recovered)
}

func (s *SignatureTestSuite) Test_Recover_InvalidLength() {
	typedData := signature.AcrossMessageTypedData(signature.AcrossDomain(big.NewInt(11155420), s.proxy), s.message)

	_, err := signature.Recover(typedData, []byte{1, 2, 3})

	s.NotNil(err)
}
