package service

import (
	"testing"

	"go.uber.org/goleak"
)

// Store and notifier run on errgroup goroutines; none may outlive Submit
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
