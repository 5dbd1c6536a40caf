package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendPostsFormAndAcceptsDelivery(t *testing.T) {
	var gotAuth string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("authorization")
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Write([]byte(`{"return":true,"message":["SMS sent successfully."]}`))
	}))
	defer srv.Close()

	svc := NewFast2SMSService("test-key", srv.URL)
	if err := svc.Send("9876543210", OTPMessage("4321")); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAuth != "test-key" {
		t.Fatalf("expected authorization header, got %q", gotAuth)
	}
	if gotForm["numbers"] != "9876543210" {
		t.Fatalf("expected numbers=9876543210, got %q", gotForm["numbers"])
	}
	if gotForm["route"] != "q" {
		t.Fatalf("expected route=q, got %q", gotForm["route"])
	}
	if !strings.Contains(gotForm["message"], "4321") {
		t.Fatalf("expected message to carry the code, got %q", gotForm["message"])
	}
}

func TestSendFailsWhenProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"return":false,"message":"Invalid Authentication"}`))
	}))
	defer srv.Close()

	svc := NewFast2SMSService("test-key", srv.URL)
	err := svc.Send("9876543210", "hello")
	if err == nil {
		t.Fatal("expected send to fail")
	}
	if !strings.Contains(err.Error(), "sms sending failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSendFailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewFast2SMSService("test-key", srv.URL)
	if err := svc.Send("9876543210", "hello"); err == nil {
		t.Fatal("expected send to fail on 503")
	}
}

func TestSendFailsWithoutAPIKey(t *testing.T) {
	svc := NewFast2SMSService("", "http://localhost:0")
	if err := svc.Send("9876543210", "hello"); err == nil {
		t.Fatal("expected send to fail without an api key")
	}
}
