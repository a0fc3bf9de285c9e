//go:build e2e

package reservation_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/handler/dto/response"
	"promo-engine/tests/common/authtest"
	"promo-engine/tests/common/builder"
	"promo-engine/tests/common/dbtest"
	"promo-engine/tests/common/httptest"
	"promo-engine/tests/e2e"
)

const reservationsURL = "/api/reservations"

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) token() string {
	return authtest.ServiceToken(s.T(), s.Config.Auth, "checkout")
}

// seedCampaignWithCoupon inserts a 10% off cart campaign with the given
// budget and a linked WELCOME10 coupon.
func (s *ReservationSuite) seedCampaignWithCoupon(budget string) uuid.UUID {
	t := s.T()
	campaignID := dbtest.CreateTestCampaign(t, s.DB,
		builder.NewCampaignBuilder().WithBudget(budget))
	couponBuilder := builder.NewCouponBuilder()
	couponBuilder.CampaignID = campaignID
	dbtest.CreateTestCoupon(t, s.DB, couponBuilder)
	return campaignID
}

func (s *ReservationSuite) reserve(t *testing.T, headers map[string]string) *response.ReserveResponse {
	reqBody := builder.NewQuoteRequestBuilder().WithCoupon("WELCOME10").BuildReserveRequestDTO()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, reqBody, headers, s.token())
	require.Contains(t, []int{http.StatusCreated, http.StatusOK}, w.Code, "reserve failed: %s", w.Body.String())

	var res response.ReserveResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return &res
}

func (s *ReservationSuite) TestReservationLifecycle() {
	s.Run("reserve, commit and release round-trip", func() {
		t := s.T()
		s.seedCampaignWithCoupon("100.00")

		// Reserve.
		res := s.reserve(t, nil)
		require.False(t, res.Replayed)
		require.Equal(t, string(reservation.StatusReserved), res.Reservation.Status)
		require.True(t, decimal.RequireFromString("10.00").Equal(res.Reservation.DiscountAmount))
		require.True(t, decimal.RequireFromString("100.00").Equal(res.Reservation.QuotedSubtotal))
		require.True(t, decimal.RequireFromString("100.00").Equal(res.Reservation.QuotedTotal))
		require.NotNil(t, res.Quote)

		id := res.Reservation.ID.String()

		// The hold is readable.
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+id, nil, s.token())
		require.Equal(t, http.StatusOK, w.Code)

		// Commit against an order.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/commit",
			map[string]any{"order_id": "order-1001"}, s.token())
		require.Equal(t, http.StatusOK, w.Code, "commit failed: %s", w.Body.String())

		var committed response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &committed))
		require.Equal(t, string(reservation.StatusCommitted), committed.Status)
		require.NotNil(t, committed.OrderID)
		require.Equal(t, "order-1001", *committed.OrderID)

		// Commit is idempotent for the same order.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/commit",
			map[string]any{"order_id": "order-1001"}, s.token())
		require.Equal(t, http.StatusOK, w.Code)

		// A different order conflicts.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/commit",
			map[string]any{"order_id": "order-other"}, s.token())
		require.Equal(t, http.StatusConflict, w.Code)

		// Release refunds the burned budget.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/release",
			map[string]any{"reason": "order_refunded"}, s.token())
		require.Equal(t, http.StatusOK, w.Code, "release failed: %s", w.Body.String())

		var released response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &released))
		require.Equal(t, string(reservation.StatusReleased), released.Status)
		require.NotNil(t, released.ReleaseReason)
		require.Equal(t, "order_refunded", *released.ReleaseReason)
	})

	s.Run("budget is never oversold", func() {
		t := s.T()
		// Budget fits one 10.00 hold, not two.
		s.seedCampaignWithCoupon("15.00")

		res := s.reserve(t, nil)
		require.Equal(t, string(reservation.StatusReserved), res.Reservation.Status)

		reqBody := builder.NewQuoteRequestBuilder().WithCoupon("WELCOME10").BuildReserveRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, s.token())
		require.Equal(t, http.StatusConflict, w.Code, "second hold should exhaust the budget: %s", w.Body.String())

		// Releasing the first hold frees the budget again.
		id := res.Reservation.ID.String()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+id+"/release", nil, s.token())
		require.Equal(t, http.StatusOK, w.Code)

		second := s.reserve(t, nil)
		require.Equal(t, string(reservation.StatusReserved), second.Reservation.Status)
	})

	s.Run("idempotency key replays the original hold", func() {
		t := s.T()
		s.seedCampaignWithCoupon("100.00")

		headers := map[string]string{"Idempotency-Key": "e2e-key-1"}

		first := s.reserve(t, headers)
		require.False(t, first.Replayed)

		second := s.reserve(t, headers)
		require.True(t, second.Replayed)
		require.Equal(t, first.Reservation.ID, second.Reservation.ID)

		// Same key with a different request is a conflict.
		otherCampaignID := dbtest.CreateTestCampaign(t, s.DB,
			builder.NewCampaignBuilder().WithBudget("100.00"))
		otherCoupon := builder.NewCouponBuilder()
		otherCoupon.CampaignID = otherCampaignID
		otherCoupon.Code = "OTHER20"
		dbtest.CreateTestCoupon(t, s.DB, otherCoupon)

		conflicting := builder.NewQuoteRequestBuilder().WithCoupon("OTHER20").BuildReserveRequestDTO()
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
			conflicting, headers, s.token())
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("reserve without a coupon is rejected", func() {
		t := s.T()
		s.seedCampaignWithCoupon("100.00")

		reqBody := builder.NewQuoteRequestBuilder().BuildReserveRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, s.token())
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("unknown coupon is not found", func() {
		t := s.T()
		s.seedCampaignWithCoupon("100.00")

		reqBody := builder.NewQuoteRequestBuilder().WithCoupon("NO-SUCH-CODE").BuildReserveRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, s.token())
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *ReservationSuite) TestListReservations() {
	s.Run("lists a customer's holds", func() {
		t := s.T()
		s.seedCampaignWithCoupon("100.00")
		customerID := uuid.New()

		reqBody := builder.NewQuoteRequestBuilder().
			WithCoupon("WELCOME10").
			WithCustomer(customerID).
			BuildReserveRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, s.token())
		require.Equal(t, http.StatusCreated, w.Code, "reserve failed: %s", w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"?customer_id="+customerID.String(), nil, s.token())
		require.Equal(t, http.StatusOK, w.Code)

		var listed []response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listed))
		require.Len(t, listed, 1)
		require.NotNil(t, listed[0].CustomerID)
		require.Equal(t, customerID, *listed[0].CustomerID)

		// Another customer sees nothing.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"?customer_id="+uuid.New().String(), nil, s.token())
		require.Equal(t, http.StatusOK, w.Code)

		var empty []response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &empty))
		require.Empty(t, empty)
	})
}

func (s *ReservationSuite) TestAuthentication() {
	s.Run("rejects missing and expired tokens", func() {
		t := s.T()

		reqBody := builder.NewQuoteRequestBuilder().WithCoupon("WELCOME10").BuildReserveRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		expired := authtest.ExpiredServiceToken(t, s.Config.Auth, "checkout")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
