//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/domain/quote"
	"promo-engine/internal/handler/api"
	resdto "promo-engine/internal/handler/dto/response"
	"promo-engine/internal/pkg/errs"
	"promo-engine/tests/common/builder"
	"promo-engine/tests/common/httptest"
	"promo-engine/tests/common/testutil"
	queriesmock "promo-engine/tests/mock/queries"
)

type QuoteHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockQuoteQueries
	handler     *api.QuoteHandler
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockQuoteQueries(s.mockCtrl)
	s.handler = api.NewQuoteHandler(s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("service_name", "checkout")
		c.Next()
	}

	s.router.POST("/quotes", authMiddleware, s.handler.CreateQuote)
}

func (s *QuoteHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQuoteHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

func (s *QuoteHandlerTestSuite) quoteResult() *quote.Result {
	return &quote.Result{
		Subtotal:       decimal.RequireFromString("100.00"),
		TotalDiscount:  decimal.RequireFromString("10.00"),
		ShippingAmount: decimal.RequireFromString("10.00"),
		GrandTotal:     decimal.RequireFromString("100.00"),
		Lines: []quote.LineResult{
			{
				ProductID:      "prod-1",
				Quantity:       2,
				UnitPrice:      decimal.RequireFromString("50.00"),
				LineSubtotal:   decimal.RequireFromString("100.00"),
				DiscountAmount: decimal.RequireFromString("10.00"),
				LineTotal:      decimal.RequireFromString("90.00"),
			},
		},
		PricedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *QuoteHandlerTestSuite) TestCreateQuote() {
	url := "/quotes"
	reqBody := builder.NewQuoteRequestBuilder().BuildRequestDTO()

	s.Run("success: returns 200 OK with QuoteResponse", func() {
		s.mockQueries.EXPECT().Execute(gomock.Any(), gomock.Any()).
			Return(s.quoteResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(decimal.RequireFromString("100.00").Equal(response.GrandTotal))
		s.Len(response.Lines, 1)
	})

	s.Run("success: binds the cart into the domain request", func() {
		couponReq := builder.NewQuoteRequestBuilder().WithCoupon("WELCOME10").BuildRequestDTO()

		s.mockQueries.EXPECT().Execute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req quote.Request) (*quote.Result, error) {
				s.Require().Len(req.Lines, 1)
				s.Equal("prod-1", req.Lines[0].ProductID)
				s.Equal(int32(2), req.Lines[0].Quantity)
				s.Require().NotNil(req.CouponCode)
				s.Equal("WELCOME10", *req.CouponCode)
				return s.quoteResult(), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, couponReq, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: lines", mutate: testutil.Field("lines", nil)},
			{name: "empty lines", mutate: testutil.Field("lines", []any{})},
			{name: "zero quantity line", mutate: testutil.Field("lines", []map[string]any{
				{"product_id": "prod-1", "unit_price": "50.00", "quantity": 0},
			})},
			{name: "missing product_id", mutate: testutil.Field("lines", []map[string]any{
				{"unit_price": "50.00", "quantity": 1},
			})},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedMsg    string
			expectedReason string
		}{
			{
				name:           "unknown coupon",
				queriesError:   errs.Mark(errs.New("coupon not found"), errs.ErrNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "ineligible coupon",
				queriesError:   errs.Mark(coupon.ErrInactive, errs.ErrIneligible),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Coupon not eligible",
				expectedReason: "coupon is not active",
			},
			{
				name:           "internal server error",
				queriesError:   errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().Execute(gomock.Any(), gomock.Any()).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				if tc.expectedReason != "" {
					httptest.AssertErrorReason(s.T(), rec, tc.expectedStatus, tc.expectedReason)
				}
			})
		}
	})
}
