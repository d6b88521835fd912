//go:build !integration

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"seller-onboarding/internal/client"
	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/wizard"
)

type stubCapture struct{}

func (stubCapture) Capture(ctx context.Context, path string) (model.ImagePayload, error) {
	if strings.Contains(path, "missing") {
		return "", os.ErrNotExist
	}
	return model.NewImagePayload("image/png", []byte(filepath.Base(path))), nil
}

type stubSubmitter struct {
	got      []wizard.State
	SubmitFn func(st wizard.State) (*client.Result, error)
}

func (s *stubSubmitter) Submit(ctx context.Context, st wizard.State) (*client.Result, error) {
	s.got = append(s.got, st)
	if s.SubmitFn != nil {
		return s.SubmitFn(st)
	}
	return &client.Result{TaskerID: "t-1", SellerID: "s-1", Message: "Registration completed successfully"}, nil
}

func writeCatalog(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "- name: Product %d\n  images: [a%d.jpg, b%d.jpg, c%d.jpg]\n  mrp: \"120\"\n  msp: \"99.50\"\n", i, i, i, i)
	}
	path := filepath.Join(t.TempDir(), "products.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newSession(input, catalog string, sub *stubSubmitter) (*session, *bytes.Buffer) {
	nop := zerolog.Nop()
	out := &bytes.Buffer{}
	return &session{
		in:      strings.NewReader(input),
		out:     out,
		ctl:     wizard.NewController(nil),
		capture: stubCapture{},
		submit:  sub,
		log:     &nop,
		catalog: catalog,
	}, out
}

func TestSession_FullRun(t *testing.T) {
	sub := &stubSubmitter{}
	input := strings.Join([]string{
		"Ravi", "9876543210",
		"Sharma General Store", "9123456780", "27aapfu0939f1zv", "shop.jpg",
		"s",
	}, "\n") + "\n"
	s, out := newSession(input, writeCatalog(t, 30), sub)

	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(sub.got) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.got))
	}
	st := sub.got[0]
	if len(st.Products) != 30 {
		t.Errorf("expected 30 products, got %d", len(st.Products))
	}
	if st.TaskerDetails.Phone != "987-654-3210" || st.SellerDetails.GSTNumber != "27AAPFU0939F1ZV" {
		t.Errorf("unexpected details %+v %+v", st.TaskerDetails, st.SellerDetails)
	}
	if !strings.Contains(out.String(), "seller id: s-1") {
		t.Errorf("missing success output:\n%s", out.String())
	}
	if s.ctl.State().Step != wizard.StepTasker || len(s.ctl.State().Products) != 0 {
		t.Error("form must reset after a successful submission")
	}
}

func TestSession_GateKeepsStep(t *testing.T) {
	s, out := newSession("Ravi\n123\n\n9876543210\n", "", &stubSubmitter{})

	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "phone must have 10 digits") {
		t.Errorf("expected gate reason in output:\n%s", out.String())
	}
	st := s.ctl.State()
	if st.Step != wizard.StepSeller || st.TaskerDetails.Name != "Ravi" {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestSession_ProductsCommands(t *testing.T) {
	sub := &stubSubmitter{
		SubmitFn: func(st wizard.State) (*client.Result, error) {
			return nil, &client.ValidationFailedError{Issues: []domain.Issue{{Path: "products.0.msp", Code: "too_big", Message: "msp must not exceed mrp"}}}
		},
	}
	input := strings.Join([]string{
		"Ravi", "9876543210",
		"Sharma", "9123456780", "27AAPFU0939F1ZV", "shop.jpg",
		"s",
		"a", "Soap", "x.jpg", "y.jpg", "z.jpg", "40", "50",
		"r 1",
		"s",
		"b",
		"", "", "", "",
		"q",
	}, "\n") + "\n"
	s, out := newSession(input, writeCatalog(t, 30), sub)

	if err := s.run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{"at least 30 products are required, have 29", "msp must not exceed mrp", "the server rejected the form", "products.0.msp"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if got := len(s.ctl.State().Products); got != 29 {
		t.Errorf("expected 29 products after one removal, got %d", got)
	}
	if len(sub.got) != 1 {
		t.Errorf("expected one submission attempt, got %d", len(sub.got))
	}
}

func TestLoadCatalog_RejectsBadItems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	body := "- name: Soap\n  images: [a.jpg, b.jpg]\n  mrp: \"10\"\n  msp: \"5\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	n, err := loadCatalog(context.Background(), path, stubCapture{}, wizard.NewController(nil))
	if err == nil || n != 0 {
		t.Fatalf("expected error on first item, got n=%d err=%v", n, err)
	}
}
