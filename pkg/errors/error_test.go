package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidPrice, "price must be positive")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidPrice, err.Code)
	suite.Equal("price must be positive", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeNotHeld, "no open position for %s", "600519")
	suite.NotNil(err)
	suite.Equal(ErrCodeNotHeld, err.Code)
	suite.Equal("no open position for 600519", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodePersistenceFailed, "failed to write snapshot", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodePersistenceFailed, err.Code)
	suite.Equal("failed to write snapshot", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeQuoteFetchFailed, cause, "failed to fetch quote for symbol: %s", "600519")
	suite.NotNil(err)
	suite.Equal(ErrCodeQuoteFetchFailed, err.Code)
	suite.Equal("failed to fetch quote for symbol: 600519", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInsufficientFunds, "not enough cash", cause)
	suite.Equal("[500] not enough cash: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStateCorrupted, "state unreadable", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeAlreadyHeld, "position already open")
	suite.Equal(ErrCodeAlreadyHeld, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeQuoteNotFound, "quote not found")
	err := Wrap(ErrCodeDataSourceFailed, "spot source failed", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeDataSourceFailed, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromPlainError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeSettlementViolation, "bought today, cannot sell today")
	suite.True(HasCode(err, ErrCodeSettlementViolation))
	suite.False(HasCode(err, ErrCodeNotHeld))
}

func (suite *ErrorTestSuite) TestIsError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodePersistenceFailed, "failed to write snapshot", cause)
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestAsError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	var typed *Error
	suite.True(As(err, &typed))
	suite.Equal(ErrCodeInvalidParameter, typed.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	// Verify some key error codes have expected values
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(500), ErrCodeInsufficientFunds)
	suite.Equal(ErrorCode(600), ErrCodePersistenceFailed)
	suite.Equal(ErrorCode(700), ErrCodeQuoteNotFound)
	suite.Equal(ErrorCode(800), ErrCodeDataSourceNotFound)
	suite.Equal(ErrorCode(900), ErrCodeExportFailed)
}
