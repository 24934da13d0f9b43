package transport

import (
	"errors"
	"testing"
)

func TestTransientErrorsImplementTransientTransport(t *testing.T) {
	type transientTransportErr interface {
		TransientTransport() bool
	}

	for _, err := range []error{ErrUndelivered, ErrNodeDisconnected} {
		var te transientTransportErr
		if !errors.As(err, &te) {
			t.Fatalf("%v does not implement TransientTransport", err)
		}
		if !te.TransientTransport() {
			t.Fatalf("%v.TransientTransport() = false, want true", err)
		}
	}
}

func TestPipeConnectAndServiceStatusAreNotTransient(t *testing.T) {
	type transientTransportErr interface {
		TransientTransport() bool
	}

	for _, err := range []error{ErrPipeConnectFailed, ErrServiceStatus} {
		var te transientTransportErr
		if errors.As(err, &te) {
			t.Fatalf("%v unexpectedly implements TransientTransport", err)
		}
	}
}

func TestNavigateResultIsServerless(t *testing.T) {
	r := NavigateResult{DomainKey: 1, ResourcesDomainKey: 2}
	if !r.IsServerless() {
		t.Error("expected differing domain/resources keys to report serverless")
	}
	same := NavigateResult{DomainKey: 1, ResourcesDomainKey: 1}
	if same.IsServerless() {
		t.Error("expected matching domain/resources keys to report non-serverless")
	}
}
