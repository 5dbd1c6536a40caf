package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(phone, message string) error
}

// OTPMessage formats the verification SMS body for a login code.
func OTPMessage(code string) string {
	return fmt.Sprintf("Your Ruchitara verification code is %s. Valid for 5 minutes. Do not share this code with anyone.", code)
}

// Fast2SMSService sends transactional SMS through the Fast2SMS bulk API.
type Fast2SMSService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewFast2SMSService creates a Fast2SMSService.
func NewFast2SMSService(apiKey, baseURL string) *Fast2SMSService {
	return &Fast2SMSService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type fast2smsResponse struct {
	Return  bool            `json:"return"`
	Message json.RawMessage `json:"message"`
}

// Send posts the message to Fast2SMS and fails unless the provider reports
// delivery.
func (s *Fast2SMSService) Send(phone, message string) error {
	if s.apiKey == "" {
		log.Println("[SMS] Fast2SMS API key not configured")
		return fmt.Errorf("sms provider not configured")
	}

	ref := uuid.NewString()

	form := url.Values{}
	form.Set("route", "q")
	form.Set("message", message)
	form.Set("language", "english")
	form.Set("flash", "0")
	form.Set("numbers", phone)

	req, err := http.NewRequest(http.MethodPost, s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[SMS] dispatch %s to %s failed: %v", ref, phone, err)
		return fmt.Errorf("error sending sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[SMS] dispatch %s to %s: unexpected status %d", ref, phone, resp.StatusCode)
		return fmt.Errorf("fast2sms returned status %d", resp.StatusCode)
	}

	var parsed fast2smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode fast2sms response: %w", err)
	}

	if !parsed.Return {
		log.Printf("[SMS] dispatch %s to %s rejected: %s", ref, phone, parsed.Message)
		return fmt.Errorf("sms sending failed: %s", parsed.Message)
	}

	log.Printf("[SMS] dispatch %s to %s delivered", ref, phone)
	return nil
}
