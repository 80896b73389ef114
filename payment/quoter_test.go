package payment_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/mrdnfinance/x402-across/cache"
	"github.com/mrdnfinance/x402-across/payment"
	mock_payment "github.com/mrdnfinance/x402-across/payment/mock"
	"github.com/mrdnfinance/x402-across/protocol/across"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QuoterTestSuite struct {
	suite.Suite

	mockFetcher *mock_payment.MockQuoteFetcher
	mockMetrics *mock_payment.MockQuoteMetrics
	quoter      *payment.Quoter
	cancel      context.CancelFunc
}

func TestRunQuoterTestSuite(t *testing.T) {
	suite.Run(t, new(QuoterTestSuite))
}

func (s *QuoterTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockFetcher = mock_payment.NewMockQuoteFetcher(ctrl)
	s.mockMetrics = mock_payment.NewMockQuoteMetrics(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.quoter = payment.NewQuoter(s.mockFetcher, cache.NewQuoteCache(ctx, 0), testChains(), s.mockMetrics)
}

func (s *QuoterTestSuite) TearDownTest() {
	s.cancel()
}

func (s *QuoterTestSuite) crossChainInput(amount int64) payment.QuoteInput {
	return payment.QuoteInput{
		Amount:             big.NewInt(amount),
		SourceChainId:      baseSepolia,
		DestinationChainId: optimismSepolia,
	}
}

func (s *QuoterTestSuite) Test_Quote_SameChainSkipsService() {
	s.mockMetrics.EXPECT().TrackQuote(payment.QUOTE_SOURCE_SAME_CHAIN)

	quote, err := s.quoter.Quote(context.Background(), payment.QuoteInput{
		Amount:             big.NewInt(1000000),
		SourceChainId:      baseSepolia,
		DestinationChainId: baseSepolia,
	})

	s.Nil(err)
	s.Equal("1000000", quote.OutputAmount)
	s.Equal("0", quote.TotalRelayFee)
}

func (s *QuoterTestSuite) Test_Quote_UnknownChain() {
	_, err := s.quoter.Quote(context.Background(), payment.QuoteInput{
		Amount:             big.NewInt(1000000),
		SourceChainId:      baseSepolia,
		DestinationChainId: 1,
	})

	s.NotNil(err)
}

func (s *QuoterTestSuite) Test_Quote_FetchError() {
	s.mockFetcher.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(nil, across.ErrQuoteUnavailable)

	_, err := s.quoter.Quote(context.Background(), s.crossChainInput(1000000))

	s.ErrorIs(err, across.ErrQuoteUnavailable)
}

func (s *QuoterTestSuite) Test_Quote_CachedAfterFetch() {
	s.mockFetcher.EXPECT().Quote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req across.QuoteRequest) (*across.Quote, error) {
			s.Equal(baseSepolia, req.OriginChainId)
			s.Equal(optimismSepolia, req.DestinationChainId)
			s.Equal(proxyAddress, req.Recipient)
			s.Equal(big.NewInt(1000000), req.Amount)
			return &across.Quote{OutputAmount: "995000", TotalRelayFee: "5000"}, nil
		}).Times(1)
	s.mockMetrics.EXPECT().TrackQuote(payment.QUOTE_SOURCE_ACROSS)
	s.mockMetrics.EXPECT().TrackQuote(payment.QUOTE_SOURCE_CACHE)

	first, err := s.quoter.Quote(context.Background(), s.crossChainInput(1000000))
	s.Nil(err)
	second, err := s.quoter.Quote(context.Background(), s.crossChainInput(1000000))
	s.Nil(err)

	s.Equal(first, second)
}

func (s *QuoterTestSuite) Test_Quote_MockWithoutFetcher() {
	quoter := payment.NewQuoter(nil, nil, testChains(), nil)

	quote, err := quoter.Quote(context.Background(), s.crossChainInput(1000000))

	s.Nil(err)
	s.Equal("995000", quote.OutputAmount)
	s.Nil(quote.Validate(big.NewInt(1000000)))
}

func (s *QuoterTestSuite) Test_Request_StaleResultDropped() {
	release := make(chan struct{})
	s.mockFetcher.EXPECT().Quote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req across.QuoteRequest) (*across.Quote, error) {
			if req.Amount.Cmp(big.NewInt(1000000)) == 0 {
				<-release
				return &across.Quote{OutputAmount: "995000", TotalRelayFee: "5000"}, nil
			}
			return &across.Quote{OutputAmount: "1990000", TotalRelayFee: "10000"}, nil
		}).Times(2)
	s.mockMetrics.EXPECT().TrackQuote(payment.QUOTE_SOURCE_ACROSS).Times(2)

	stale := s.quoter.Request(context.Background(), s.crossChainInput(1000000))
	fresh := s.quoter.Request(context.Background(), s.crossChainInput(2000000))

	result, ok := <-fresh
	s.True(ok)
	s.Nil(result.Err)
	s.Equal(uint64(2), result.Generation)
	s.Equal("1990000", result.Quote.OutputAmount)

	close(release)
	_, ok = <-stale
	s.False(ok)

	latest, ok := s.quoter.Latest()
	s.True(ok)
	s.Equal(big.NewInt(2000000), latest.Input.Amount)
}

func (s *QuoterTestSuite) Test_Request_ErrorDelivered() {
	s.mockFetcher.EXPECT().Quote(gomock.Any(), gomock.Any()).Return(nil, errors.New("error"))

	result, ok := <-s.quoter.Request(context.Background(), s.crossChainInput(1000000))

	s.True(ok)
	s.NotNil(result.Err)
	s.Nil(result.Quote)
}

func (s *QuoterTestSuite) Test_Latest_NoRequest() {
	_, ok := s.quoter.Latest()

	s.False(ok)
}
