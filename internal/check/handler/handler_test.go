package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"nhi/internal/check"
	"nhi/internal/check/handler/mocks"
	dErrors "nhi/pkg/domain-errors"
	"nhi/pkg/nhi"
)

//go:generate mockgen -source=handler.go -destination=mocks/check-mocks.go -package=mocks Service
type CheckHandlerSuite struct {
	suite.Suite
	router      http.Handler
	mockService *mocks.MockService
}

func TestCheckHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckHandlerSuite))
}

func (s *CheckHandlerSuite) SetupTest() {
	s.router, s.mockService = newTestRouter(s.T(), false)
}

func newTestRouter(t *testing.T, excludeTest bool) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, logger, excludeTest)
	r := chi.NewRouter()
	h.Register(r)
	return r, mockService
}

func (s *CheckHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *CheckHandlerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *CheckHandlerSuite) TestHandleCheck() {
	s.Run("returns result for valid NHI", func() {
		s.mockService.EXPECT().
			Check(gomock.Any(), "zbn77vl", check.Options{}).
			Return(check.Result{
				Input:  "zbn77vl",
				NHI:    nhi.MustParse("ZBN77VL"),
				Valid:  true,
				Format: nhi.FormatCurrent,
				Test:   true,
			})

		rec := s.do(http.MethodPost, "/nhi/check", `{"nhi":"  zbn77vl  "}`)
		s.Equal(http.StatusOK, rec.Code)

		var resp CheckResponse
		s.decode(rec, &resp)
		s.Equal(CheckResponse{Input: "zbn77vl", NHI: "ZBN77VL", Valid: true, Format: "current", Test: true}, resp)
	})

	s.Run("invalid NHI is still 200", func() {
		s.mockService.EXPECT().
			Check(gomock.Any(), "ZZZ0044", check.Options{}).
			Return(check.Result{Input: "ZZZ0044", Reason: check.ReasonInvalidFormat})

		rec := s.do(http.MethodPost, "/nhi/check", `{"nhi":"ZZZ0044"}`)
		s.Equal(http.StatusOK, rec.Code)

		var resp map[string]any
		s.decode(rec, &resp)
		s.Equal(false, resp["valid"])
		s.Equal("invalid_format", resp["reason"])
		s.NotContains(resp, "nhi")
	})

	s.Run("request overrides exclude_test", func() {
		s.mockService.EXPECT().
			Check(gomock.Any(), "ZAC5361", check.Options{ExcludeTest: true}).
			Return(check.Result{Input: "ZAC5361", Test: true, Reason: check.ReasonReservedForTesting})

		rec := s.do(http.MethodPost, "/nhi/check", `{"nhi":"ZAC5361","exclude_test":true}`)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("missing nhi is a validation error", func() {
		rec := s.do(http.MethodPost, "/nhi/check", `{"nhi":"   "}`)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]string
		s.decode(rec, &resp)
		s.Equal("validation_error", resp["error"])
		s.Equal("nhi is required", resp["error_description"])
	})

	s.Run("malformed JSON is a bad request", func() {
		rec := s.do(http.MethodPost, "/nhi/check", `{"nhi":`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *CheckHandlerSuite) TestHandleCheckBatch() {
	s.Run("returns results and valid count", func() {
		s.mockService.EXPECT().
			CheckBatch(gomock.Any(), []string{"ZAC5361", "nope"}, check.Options{}).
			Return([]check.Result{
				{Input: "ZAC5361", NHI: nhi.MustParse("ZAC5361"), Valid: true, Format: nhi.FormatLegacy, Test: true},
				{Input: "nope", Reason: check.ReasonInvalidFormat},
			}, nil)

		rec := s.do(http.MethodPost, "/nhi/check/batch", `{"values":["ZAC5361"," nope "]}`)
		s.Equal(http.StatusOK, rec.Code)

		var resp BatchCheckResponse
		s.decode(rec, &resp)
		s.Equal(1, resp.ValidCount)
		s.Require().Len(resp.Results, 2)
		s.Equal("legacy", resp.Results[0].Format)
		s.Equal("invalid_format", resp.Results[1].Reason)
	})

	s.Run("service errors are translated", func() {
		s.mockService.EXPECT().
			CheckBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "at most 1 values may be checked at once"))

		rec := s.do(http.MethodPost, "/nhi/check/batch", `{"values":["A","B"]}`)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("empty values rejected before the service", func() {
		rec := s.do(http.MethodPost, "/nhi/check/batch", `{"values":[]}`)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *CheckHandlerSuite) TestHandleGet() {
	s.Run("valid NHI", func() {
		s.mockService.EXPECT().
			Check(gomock.Any(), "jbx3656", check.Options{}).
			Return(check.Result{Input: "jbx3656", NHI: nhi.MustParse("JBX3656"), Valid: true, Format: nhi.FormatLegacy})

		rec := s.do(http.MethodGet, "/nhi/jbx3656", "")
		s.Equal(http.StatusOK, rec.Code)

		var resp CheckResponse
		s.decode(rec, &resp)
		s.Equal("JBX3656", resp.NHI)
	})

	s.Run("invalid NHI is 422", func() {
		s.mockService.EXPECT().
			Check(gomock.Any(), "ZZZ00AA", check.Options{}).
			Return(check.Result{Input: "ZZZ00AA", Reason: check.ReasonInvalidFormat})

		rec := s.do(http.MethodGet, "/nhi/ZZZ00AA", "")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]string
		s.decode(rec, &resp)
		s.Equal("validation_error", resp["error"])
		s.Equal("value is not a valid NHI", resp["error_description"])
	})

	s.Run("exclude_test query parameter", func() {
		s.mockService.EXPECT().
			Check(gomock.Any(), "ZAC5361", check.Options{ExcludeTest: true}).
			Return(check.Result{Input: "ZAC5361", Test: true, Reason: check.ReasonReservedForTesting})

		rec := s.do(http.MethodGet, "/nhi/ZAC5361?exclude_test=true", "")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]string
		s.decode(rec, &resp)
		s.Equal("value is an NHI reserved for testing", resp["error_description"])
	})

	s.Run("bad exclude_test query parameter", func() {
		rec := s.do(http.MethodGet, "/nhi/ZAC5361?exclude_test=maybe", "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *CheckHandlerSuite) TestDefaultExcludeTestPolicy() {
	router, mockService := newTestRouter(s.T(), true)
	mockService.EXPECT().
		Check(gomock.Any(), "ZAC5361", check.Options{ExcludeTest: true}).
		Return(check.Result{Input: "ZAC5361", Test: true, Reason: check.ReasonReservedForTesting})

	req := httptest.NewRequest(http.MethodPost, "/nhi/check", bytes.NewBufferString(`{"nhi":"ZAC5361"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
}

// TestWithRealService runs the handler against the real check service.
func TestWithRealService(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(check.New(), logger, false)
	r := chi.NewRouter()
	h.Register(r)

	for _, tc := range []struct {
		value string
		valid bool
	}{
		{"ZAC5361", true},
		{"zbn77vl", true},
		{"ZZZ0044", false},
		{"ZZZ00AA", false},
	} {
		body, _ := json.Marshal(CheckRequest{NHI: tc.value})
		req := httptest.NewRequest(http.MethodPost, "/nhi/check", bytes.NewReader(body)).WithContext(context.Background())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", tc.value, rec.Code)
		}
		var resp CheckResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Valid != tc.valid {
			t.Fatalf("expected valid=%v for %s, got %v", tc.valid, tc.value, resp.Valid)
		}
	}
}
