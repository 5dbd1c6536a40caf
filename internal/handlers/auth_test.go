package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/ruchitara/internal/config"
	"github.com/example/ruchitara/internal/otp"
)

type stubSender struct {
	err     error
	calls   int
	phone   string
	message string
}

func (s *stubSender) Send(phone, message string) error {
	s.calls++
	s.phone = phone
	s.message = message
	return s.err
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		OTPTestCode:    "9999",
		OTPTTL:         otp.DefaultTTL,
		OTPMaxAttempts: otp.DefaultMaxAttempts,
	}
}

func newAuthFixture(t *testing.T, cfg *config.Config, sender *stubSender) (*AuthHandler, *otp.MemoryStore) {
	t.Helper()
	store := otp.NewMemoryStore(cfg.OTPTTL, cfg.OTPMaxAttempts)
	t.Cleanup(store.Close)

	var verifier otp.Verifier = otp.NewRealVerifier(store)
	if cfg.OTPBypass {
		verifier = otp.NewAcceptAllVerifier(store)
	}
	return NewAuthHandler(nil, cfg, store, verifier, sender), store
}

func newAuthApp(h *AuthHandler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/api/auth/send-otp", h.SendOTP)
	app.Post("/api/auth/verify-otp", h.VerifyOTP)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, parsed
}

func TestIssueChallengeDispatchesBeforeStoring(t *testing.T) {
	sender := &stubSender{}
	h, store := newAuthFixture(t, testConfig(), sender)

	code, err := h.issueChallenge(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("issue challenge: %v", err)
	}
	if sender.calls != 1 {
		t.Fatalf("expected one dispatch, got %d", sender.calls)
	}
	if sender.phone != "9876543210" {
		t.Fatalf("dispatched to wrong number %q", sender.phone)
	}
	if !strings.Contains(sender.message, code) {
		t.Fatalf("expected message to carry code %q, got %q", code, sender.message)
	}
	if err := store.Verify(context.Background(), "9876543210", code); err != nil {
		t.Fatalf("expected stored challenge to verify: %v", err)
	}
}

func TestIssueChallengeDispatchFailureLeavesNoChallenge(t *testing.T) {
	sender := &stubSender{err: errors.New("provider down")}
	h, store := newAuthFixture(t, testConfig(), sender)

	if _, err := h.issueChallenge(context.Background(), "9876543210"); err == nil {
		t.Fatal("expected issue to fail when dispatch fails")
	}
	if err := store.Verify(context.Background(), "9876543210", "0000"); err != otp.ErrNoChallenge {
		t.Fatalf("expected no challenge after failed dispatch, got %v", err)
	}
}

func TestIssueChallengeBypassSkipsDispatch(t *testing.T) {
	cfg := testConfig()
	cfg.OTPBypass = true
	sender := &stubSender{}
	h, store := newAuthFixture(t, cfg, sender)

	code, err := h.issueChallenge(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("issue challenge: %v", err)
	}
	if code != "9999" {
		t.Fatalf("expected fixed test code, got %q", code)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no dispatch in bypass mode, got %d", sender.calls)
	}
	if err := store.Verify(context.Background(), "9876543210", "9999"); err != nil {
		t.Fatalf("expected stored test code to verify: %v", err)
	}
}

func TestSendOTPValidation(t *testing.T) {
	h, _ := newAuthFixture(t, testConfig(), &stubSender{})
	app := newAuthApp(h)

	status, body := postJSON(t, app, "/api/auth/send-otp", `{}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["message"] != "Phone number is required" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}

	status, body = postJSON(t, app, "/api/auth/send-otp", `{"phone_number":"12345"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["message"] != "Please enter a valid 10-digit phone number" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestVerifyOTPRequiresBothFields(t *testing.T) {
	h, _ := newAuthFixture(t, testConfig(), &stubSender{})
	app := newAuthApp(h)

	status, body := postJSON(t, app, "/api/auth/verify-otp", `{"phone_number":"9876543210"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["message"] != "Phone number and OTP are required" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestVerifyOTPMismatchReportsRemainingAttempts(t *testing.T) {
	h, store := newAuthFixture(t, testConfig(), &stubSender{})
	app := newAuthApp(h)

	if err := store.Issue(context.Background(), "9876543210", "4321"); err != nil {
		t.Fatalf("issue: %v", err)
	}

	status, body := postJSON(t, app, "/api/auth/verify-otp",
		`{"phone_number":"9876543210","otp":"0000"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["message"] != "Invalid OTP. 4 attempts remaining." {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestVerifyOTPWithoutChallenge(t *testing.T) {
	h, _ := newAuthFixture(t, testConfig(), &stubSender{})
	app := newAuthApp(h)

	status, body := postJSON(t, app, "/api/auth/verify-otp",
		`{"phone_number":"9876543210","otp":"4321"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["message"] != "No OTP request found. Please request a new OTP." {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestChallengeErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{otp.ErrNoChallenge, "No OTP request found. Please request a new OTP."},
		{otp.ErrExpired, "OTP has expired. Please request a new one."},
		{otp.ErrTooManyAttempts, "Too many failed attempts. Please request a new OTP."},
		{&otp.MismatchError{Remaining: 3}, "Invalid OTP. 3 attempts remaining."},
		{&otp.MismatchError{Remaining: 1}, "Invalid OTP. 1 attempt remaining."},
	}

	for _, tc := range cases {
		ferr, ok := challengeError(tc.err).(*fiber.Error)
		if !ok {
			t.Fatalf("expected fiber error for %v", tc.err)
		}
		if ferr.Code != fiber.StatusBadRequest {
			t.Errorf("%v: expected 400, got %d", tc.err, ferr.Code)
		}
		if ferr.Message != tc.want {
			t.Errorf("%v: expected %q, got %q", tc.err, tc.want, ferr.Message)
		}
	}
}
