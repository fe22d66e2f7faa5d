package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	payNowFormBody = `{"status":"success","data":{"status":"ok","data":{
		"item_id": 204518,
		"partner_order_id": %q,
		"payment_types": [
			{"type": "deposit", "amount": "30.00", "currency_code": "USD"},
			{"type": "now", "amount": "120.00", "currency_code": "USD",
			 "cancellation_penalties": {"free_cancellation_before": "2030-05-30T23:59:00"}}
		]
	}}}`
	depositOnlyFormBody = `{"status":"success","data":{"status":"ok","data":{
		"item_id": 204518,
		"partner_order_id": %q,
		"payment_types": [{"type": "deposit", "amount": "30.00", "currency_code": "USD"}]
	}}}`
	statusProcessing = `{"status":"success","data":{"status":"ok","data":{"status":"processing"}}}`
	statusConfirmed  = `{"status":"success","data":{"status":"ok","data":{"status":"ok"}}}`
	statusSoldOut    = `{"status":"success","data":{"status":"ok","data":{"status":"error","error":"soldout"}}}`
	statusThreeDS    = "3ds"
)

const validOrderForm = `check_in = 2030-06-01

[contact]
email = "john@example.com"
phone = "+15550100"

[card]
holder = "JOHN DOE"
number = "4111 1111 1111 1111"
month = "12"
year = "30"
cvc = "123"

[[rooms]]
adults = 1
child_ages = [7]

[[rooms.guests]]
first_name = "John"
last_name = "Doe"

[[rooms.guests]]
first_name = "Jane"
last_name = "Doe"
age = 7
`

// fakeSupplier plays the partner proxy. Status bodies are served in order and the
// last one repeats.
type fakeSupplier struct {
	t *testing.T

	formBody        string
	cardTokenBody   string
	tokenRejections []string
	statusDelay     time.Duration

	mu          sync.Mutex
	statuses    []string
	statusCalls int
	returnPath  string
	startBody   map[string]any

	tokenCalls atomic.Int32
	startCalls atomic.Int32
}

func newFakeSupplier(t *testing.T, statuses ...string) *fakeSupplier {
	t.Helper()
	return &fakeSupplier{
		t:             t,
		formBody:      payNowFormBody,
		cardTokenBody: `{"status":"success","data":{"status":"ok"}}`,
		statuses:      statuses,
	}
}

func (f *fakeSupplier) start() *httptest.Server {
	f.t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/hotel-booking-form", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PartnerOrderID string `json:"partner_order_id"`
			BookHash       string `json:"book_hash"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(f.t, "h-abc", body.BookHash)
		_, _ = fmt.Fprintf(w, f.formBody, body.PartnerOrderID)
	})
	mux.HandleFunc("POST /api/create-card-token", func(w http.ResponseWriter, _ *http.Request) {
		call := int(f.tokenCalls.Add(1))
		body := f.cardTokenBody
		if call <= len(f.tokenRejections) {
			body = f.tokenRejections[call-1]
		}
		_, _ = fmt.Fprint(w, body)
	})
	mux.HandleFunc("POST /api/start-booking-process", func(w http.ResponseWriter, r *http.Request) {
		f.startCalls.Add(1)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.startBody = body
		if path, ok := body["return_path"].(string); ok {
			f.returnPath = path
		}
		f.mu.Unlock()
		_, _ = fmt.Fprint(w, `{"status":"success","data":{"status":"ok","data":{}}}`)
	})
	mux.HandleFunc("POST /api/booking-status", func(w http.ResponseWriter, _ *http.Request) {
		if f.statusDelay > 0 {
			time.Sleep(f.statusDelay)
		}

		f.mu.Lock()
		index := f.statusCalls
		if index >= len(f.statuses) {
			index = len(f.statuses) - 1
		}
		f.statusCalls++
		body := f.statuses[index]
		returnPath := f.returnPath
		f.mu.Unlock()

		if body == statusThreeDS {
			// The bank sends the browser back shortly after the challenge is shown.
			go func() {
				time.Sleep(50 * time.Millisecond)
				resp, err := http.Get(returnPath)
				if err == nil {
					_ = resp.Body.Close()
				}
			}()
			body = `{"status":"success","data":{"status":"ok","data":{"status":"3ds",
				"data_3ds":{"action_url":"https://acs.bank.example/pareq","method":"POST","data":{"PaReq":"abc"}}}}}`
		}
		_, _ = fmt.Fprint(w, body)
	})
	mux.HandleFunc("GET /ip", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"ip":"203.0.113.7"}`)
	})

	server := httptest.NewServer(mux)
	f.t.Cleanup(server.Close)

	f.t.Setenv("RB_API_BASE_URL", server.URL)
	f.t.Setenv("RB_IP_LOOKUP_URL", server.URL+"/ip")
	return server
}

func (f *fakeSupplier) submitted() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startBody
}

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestQuoteRendersPayNowTotal(t *testing.T) {
	newFakeSupplier(t, statusConfirmed).start()

	stdout, _, err := executeCLI(t, t.TempDir(), "quote", "--book-hash", "h-abc")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Booking quote")
	assert.Contains(t, stdout, "total: USD 120.00")
	assert.Contains(t, stdout, "free before 23:59 on 30 May 2030")
}

func TestQuoteJSONOutput(t *testing.T) {
	newFakeSupplier(t, statusConfirmed).start()

	stdout, _, err := executeCLI(t, t.TempDir(), "quote", "--book-hash", "h-abc", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"total": "USD 120.00"`)
	assert.Contains(t, stdout, `"item_id": "204518"`)
}

func TestQuoteWithoutPayNowRendersNotice(t *testing.T) {
	supplier := newFakeSupplier(t, statusConfirmed)
	supplier.formBody = depositOnlyFormBody
	supplier.start()

	stdout, _, err := executeCLI(t, t.TempDir(), "quote", "--book-hash", "h-abc")
	require.ErrorIs(t, err, errBookingNotConfirmed)
	assert.Contains(t, stdout, "Online payment unavailable")
}

func TestQuoteRequiresBookHash(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "quote")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"book-hash\" not set")
}

func TestBookConfirmsAndRecordsSession(t *testing.T) {
	supplier := newFakeSupplier(t, statusProcessing, statusConfirmed)
	supplier.start()
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "book", "--book-hash", "h-abc", "--order", writeOrderForm(t, validOrderForm))
	require.NoError(t, err)
	assert.Contains(t, stdout, "total: USD 120.00")
	assert.Contains(t, stdout, "Booking confirmed")
	assert.Equal(t, int32(1), supplier.tokenCalls.Load())

	submitted := supplier.submitted()
	assert.Equal(t, "2030-06-01T15:00:00", submitted["arrival_datetime"])
	assert.Contains(t, submitted["return_path"], "/booking/return?partner_order_id=")

	stdout, _, err = executeCLI(t, home, "sessions")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1")
	assert.Contains(t, stdout, "[success]")
}

func TestBookJSONOutput(t *testing.T) {
	newFakeSupplier(t, statusConfirmed).start()

	stdout, _, err := executeCLI(t, t.TempDir(), "book", "--book-hash", "h-abc", "--order", writeOrderForm(t, validOrderForm), "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"phase": "success"`)
	assert.Contains(t, stdout, `"total": "USD 120.00"`)
}

func TestBookShowsPollingSpinnerMessage(t *testing.T) {
	supplier := newFakeSupplier(t, statusConfirmed)
	supplier.statusDelay = 200 * time.Millisecond
	supplier.start()

	_, stderr, err := executeCLI(t, t.TempDir(), "book", "--book-hash", "h-abc", "--order", writeOrderForm(t, validOrderForm))
	require.NoError(t, err)
	assert.Contains(t, stderr, "Booking in progress")
}

func TestBookRendersSupplierFailure(t *testing.T) {
	newFakeSupplier(t, statusSoldOut).start()

	stdout, _, err := executeCLI(t, t.TempDir(), "book", "--book-hash", "h-abc", "--order", writeOrderForm(t, validOrderForm))
	require.ErrorIs(t, err, errBookingNotConfirmed)
	assert.Contains(t, stdout, "Room sold out")
	assert.Contains(t, stdout, "reference:")
}

func TestBookCardRejectionNamesField(t *testing.T) {
	supplier := newFakeSupplier(t, statusConfirmed)
	supplier.cardTokenBody = `{"status":"success","data":{"error":"luhn_algorithm_error","message":"Card number is invalid"}}`
	supplier.start()

	stdout, _, err := executeCLI(t, t.TempDir(), "book", "--book-hash", "h-abc", "--order", writeOrderForm(t, validOrderForm), "--json")
	require.ErrorIs(t, err, errBookingNotConfirmed)
	assert.Contains(t, stdout, `"field": "cardNumber"`)
	assert.Contains(t, stdout, `"recoverable": true`)
	assert.Equal(t, int32(0), supplier.startCalls.Load())
}

const luhnRejection = `{"status":"success","data":{"error":"luhn_algorithm_error","message":"Card number is invalid"}}`

func TestBookRetryReusesSessionAfterCardRejection(t *testing.T) {
	supplier := newFakeSupplier(t, statusConfirmed)
	supplier.tokenRejections = []string{luhnRejection}
	supplier.start()

	home := t.TempDir()
	stdout, stderr, err := executeCLIWithInput(t, home, strings.NewReader("\n"),
		"book", "--book-hash", "h-abc", "--order", writeOrderForm(t, validOrderForm), "--retry")
	require.NoError(t, err)
	assert.Contains(t, stdout, "field: cardNumber")
	assert.Contains(t, stdout, "Booking confirmed")
	assert.Contains(t, stderr, "press Enter to retry")
	assert.Equal(t, int32(2), supplier.tokenCalls.Load())
	assert.Equal(t, int32(1), supplier.startCalls.Load())

	stdout, _, err = executeCLI(t, home, "sessions")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1")
}

func TestBookRetryStopsWhenInputEnds(t *testing.T) {
	supplier := newFakeSupplier(t, statusConfirmed)
	supplier.tokenRejections = []string{luhnRejection}
	supplier.start()

	stdout, _, err := executeCLIWithInput(t, t.TempDir(), strings.NewReader(""),
		"book", "--book-hash", "h-abc", "--order", writeOrderForm(t, validOrderForm), "--retry")
	require.ErrorIs(t, err, errBookingNotConfirmed)
	assert.Contains(t, stdout, "field: cardNumber")
	assert.Equal(t, int32(1), supplier.tokenCalls.Load())
	assert.Equal(t, int32(0), supplier.startCalls.Load())
}

func TestBookRejectsIncompleteOrderFormLocally(t *testing.T) {
	supplier := newFakeSupplier(t, statusConfirmed)
	supplier.start()

	form := `[card]
holder = "JOHN DOE"
number = "4111111111111111"
month = "12"
year = "30"
cvc = "123"

[[rooms]]
adults = 2

[[rooms.guests]]
first_name = "John"
last_name = "Doe"
`

	_, _, err := executeCLI(t, t.TempDir(), "book", "--book-hash", "h-abc", "--order", writeOrderForm(t, form))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid guest roster")
	assert.Equal(t, int32(0), supplier.tokenCalls.Load())
}

func TestBookMalformedOrderForm(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "book", "--book-hash", "h-abc", "--order", writeOrderForm(t, "rooms = ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode order form")
}

func TestBookCompletesAfterThreeDSReturn(t *testing.T) {
	supplier := newFakeSupplier(t, statusThreeDS, statusConfirmed)
	supplier.start()

	stdout, stderr, err := executeCLI(t, t.TempDir(), "book", "--book-hash", "h-abc", "--order", writeOrderForm(t, validOrderForm))
	require.NoError(t, err)
	assert.Contains(t, stderr, "Card authentication required for booking")
	assert.Contains(t, stdout, "Booking confirmed")
}

func TestResumeFromReturnURL(t *testing.T) {
	newFakeSupplier(t, statusConfirmed).start()

	stdout, _, err := executeCLI(t, t.TempDir(), "resume",
		"--return-url", "http://localhost:1456/booking/return?partner_order_id=3f2504e0-4f89-11d3-9a0c-0305e82c3301",
		"--json",
	)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"phase": "success"`)
	assert.Contains(t, stdout, `"reference": "3F2504E0"`)
}

func TestResumeRequiresOrderID(t *testing.T) {
	newFakeSupplier(t, statusConfirmed).start()

	_, _, err := executeCLI(t, t.TempDir(), "resume", "--return-url", "http://localhost:1456/booking/return")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partner order id")
}

func TestSessionsEmptyLedger(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "sessions")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 0")
}

func TestInvalidConfigurationFailsEveryCommand(t *testing.T) {
	t.Setenv("RB_API_BASE_URL", "ftp://example.com")

	_, _, err := executeCLI(t, t.TempDir(), "sessions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RB_API_BASE_URL must use http or https")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, nil, args...)
}

func executeCLIWithInput(t *testing.T, home string, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("RB_RETURN_LISTEN", "127.0.0.1:0")
	t.Setenv("RB_POLL_INTERVAL", "10ms")
	t.Setenv("RB_POLL_BUDGET", "5s")
	t.Setenv("RB_NOT_FOUND_GRACE", "1s")
	t.Setenv("RB_REGISTRATION_DELAY", "10ms")
	t.Setenv("RB_3DS_RETURN_TIMEOUT", "5s")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeOrderForm(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "order.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
