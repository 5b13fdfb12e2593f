package llm

import (
	"errors"
	"testing"
)

func TestErrorFromStatusCode(t *testing.T) {
	cases := []struct {
		status    int
		retryable bool
		check     func(error) bool
	}{
		{400, false, func(err error) bool { var e *InvalidRequestError; return errors.As(err, &e) }},
		{401, false, func(err error) bool { var e *AuthenticationError; return errors.As(err, &e) }},
		{403, false, func(err error) bool { var e *AccessDeniedError; return errors.As(err, &e) }},
		{404, false, func(err error) bool { var e *NotFoundError; return errors.As(err, &e) }},
		{413, false, func(err error) bool { var e *ContextLengthError; return errors.As(err, &e) }},
		{429, true, func(err error) bool { var e *RateLimitError; return errors.As(err, &e) }},
		{500, true, func(err error) bool { var e *ServerError; return errors.As(err, &e) }},
		{503, true, func(err error) bool { var e *ServerError; return errors.As(err, &e) }},
	}

	for _, tc := range cases {
		err := ErrorFromStatusCode(tc.status, "boom", "testprov", nil)
		if !tc.check(err) {
			t.Errorf("status %d mapped to wrong type: %T", tc.status, err)
		}
		if got := IsRetryable(err); got != tc.retryable {
			t.Errorf("status %d: IsRetryable = %v, want %v", tc.status, got, tc.retryable)
		}
	}
}

func TestIsRetryableNil(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil must not be retryable")
	}
}

func TestIsRetryableUnknownDefaultsTrue(t *testing.T) {
	if !IsRetryable(errors.New("mystery")) {
		t.Error("unknown errors default to retryable")
	}
}

func TestSDKErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &SDKError{Message: "wrapper", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("SDKError must unwrap to its cause")
	}
	if err.Error() != "wrapper: root cause" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{
		SDKError:   SDKError{Message: "overloaded"},
		Provider:   "anthropic",
		StatusCode: 529,
		Retryable:  true,
	}
	want := "[anthropic] overloaded (status=529, retryable=true)"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
