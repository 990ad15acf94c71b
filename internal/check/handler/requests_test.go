package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "nhi/pkg/domain-errors"
)

type RequestsSuite struct {
	suite.Suite
}

func TestRequestsSuite(t *testing.T) {
	suite.Run(t, new(RequestsSuite))
}

func (s *RequestsSuite) TestCheckRequest() {
	s.Run("valid request passes", func() {
		req := &CheckRequest{NHI: "ZAC5361"}
		s.NoError(req.Validate())
	})

	s.Run("normalize trims whitespace", func() {
		req := &CheckRequest{NHI: "\t zac5361 \n"}
		req.Normalize()
		s.Equal("zac5361", req.NHI)
	})

	s.Run("empty nhi rejected", func() {
		err := (&CheckRequest{}).Validate()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("oversized nhi rejected", func() {
		err := (&CheckRequest{NHI: strings.Repeat("A", maxValueLength+1)}).Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "at most 64 characters")
	})

	s.Run("nil request rejected", func() {
		var req *CheckRequest
		err := req.Validate()
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *RequestsSuite) TestBatchCheckRequest() {
	s.Run("valid request passes", func() {
		req := &BatchCheckRequest{Values: []string{"ZAC5361", "ZBN77VL"}}
		s.NoError(req.Validate())
	})

	s.Run("normalize trims every value", func() {
		req := &BatchCheckRequest{Values: []string{" a ", "b\n"}}
		req.Normalize()
		s.Equal([]string{"a", "b"}, req.Values)
	})

	s.Run("empty values rejected", func() {
		err := (&BatchCheckRequest{}).Validate()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("oversized value rejected", func() {
		err := (&BatchCheckRequest{Values: []string{"ok", strings.Repeat("A", maxValueLength+1)}}).Validate()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
