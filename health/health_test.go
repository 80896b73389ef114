package health_test

import (
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrdnfinance/x402-across/health"
	"github.com/stretchr/testify/suite"
)

type blockReaderFunc func() (*big.Int, error)

func (f blockReaderFunc) LatestBlock() (*big.Int, error) {
	return f()
}

type HealthTestSuite struct {
	suite.Suite
}

func TestRunHealthTestSuite(t *testing.T) {
	suite.Run(t, new(HealthTestSuite))
}

func (s *HealthTestSuite) Test_Check_AllReachable() {
	handler := health.NewHandler(map[uint64]health.BlockReader{
		11155420: blockReaderFunc(func() (*big.Int, error) { return big.NewInt(200), nil }),
		84532:    blockReaderFunc(func() (*big.Int, error) { return big.NewInt(100), nil }),
	})

	status := handler.Check()

	s.Equal("ok", status.Status)
	s.Equal([]health.ChainHealth{
		{ChainId: 84532, Block: "100"},
		{ChainId: 11155420, Block: "200"},
	}, status.Chains)
}

func (s *HealthTestSuite) Test_ServeHTTP_Degraded() {
	handler := health.NewHandler(map[uint64]health.BlockReader{
		84532: blockReaderFunc(func() (*big.Int, error) { return nil, errors.New("connection refused") }),
	})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusServiceUnavailable, recorder.Code)
	s.Contains(recorder.Body.String(), "connection refused")
}
