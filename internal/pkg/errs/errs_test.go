package errs_test

import (
	"errors"
	"testing"

	"shoporder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderHash", "abc123")

		assert.Equal(t, "orderHash", err.ParamName)
		assert.Equal(t, "abc123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: abc123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderHash", "abc123", cause)

		assert.Equal(t, "orderHash", err.ParamName)
		assert.Equal(t, "abc123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderHash, ID is: abc123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("carrier")

		assert.Equal(t, "carrier", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: carrier", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("carrier", cause)

		assert.Equal(t, "carrier", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: carrier (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("currency")

		assert.Equal(t, "currency", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: currency", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("mixed carriers in one batch")
		err := errs.NewValueIsInvalidErrorWithCause("orders", cause)

		assert.Equal(t, "orders", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: orders (cause: mixed carriers in one batch)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("hello\nworld")
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestCollaboratorNotConfiguredError(t *testing.T) {
	t.Run("NewCollaboratorNotConfiguredError", func(t *testing.T) {
		err := errs.NewCollaboratorNotConfiguredError("invoice issuer")

		assert.Equal(t, "invoice issuer", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "collaborator is not configured: invoice issuer", err.Error())
		assert.Equal(t, errs.ErrCollaboratorNotConfigured, err.Unwrap())
	})

	t.Run("NewCollaboratorNotConfiguredErrorWithCause", func(t *testing.T) {
		cause := errors.New("issuer removed from configuration")
		err := errs.NewCollaboratorNotConfiguredErrorWithCause("invoice issuer", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"collaborator is not configured: invoice issuer (cause: issuer removed from configuration)",
			err.Error())
		assert.Equal(t, errs.ErrCollaboratorNotConfigured, err.Unwrap())
	})
}

func TestExternalServiceError(t *testing.T) {
	t.Run("NewExternalServiceError", func(t *testing.T) {
		cause := errors.New("connection timed out")
		err := errs.NewExternalServiceError("bank feed", cause)

		assert.Equal(t, "bank feed", err.ServiceName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "external service failed: bank feed (cause: connection timed out)", err.Error())
		assert.Equal(t, errs.ErrExternalServiceFailed, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrCollaboratorNotConfigured)
		require.Error(t, errs.ErrExternalServiceFailed)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "collaborator is not configured", errs.ErrCollaboratorNotConfigured.Error())
		assert.Equal(t, "external service failed", errs.ErrExternalServiceFailed.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsRequiredError("carrier"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewValueIsInvalidError("currency"), errs.ErrValueIsInvalid)
		require.ErrorIs(t,
			errs.NewCollaboratorNotConfiguredError("invoice issuer"),
			errs.ErrCollaboratorNotConfigured)
		require.ErrorIs(t,
			errs.NewExternalServiceError("carrier API", errors.New("boom")),
			errs.ErrExternalServiceFailed)
	})
}
