package ports

import (
	"context"
	"time"

	"github.com/bnema/roombook-cli/internal/domain"
)

type IPLookup interface {
	PublicIP(ctx context.Context) (string, error)
}

// ThreeDSReturnPath is where the bank sends the browser back after a 3DS challenge.
// The return URL given to the supplier and the return handler both use it.
const ThreeDSReturnPath = "/booking/return"

// ThreeDSRedirector hands a 3DS challenge to the user's browser.
type ThreeDSRedirector interface {
	Redirect(ctx context.Context, orderID string, redirect domain.ThreeDSRedirect) error
}

type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Timer is a pending scheduled tick. Stop clears it.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{timer: time.NewTimer(d)}
}

type systemTimer struct {
	timer *time.Timer
}

func (t systemTimer) C() <-chan time.Time {
	return t.timer.C
}

func (t systemTimer) Stop() bool {
	return t.timer.Stop()
}
