package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"seller-onboarding/internal/capture"
	"seller-onboarding/internal/client"
	"seller-onboarding/internal/wizard"
)

var errQuit = errors.New("quit")

type submitter interface {
	Submit(ctx context.Context, st wizard.State) (*client.Result, error)
}

// session renders the three wizard steps as prompts on a line-based terminal.
type session struct {
	in       io.Reader
	out      io.Writer
	ctl      *wizard.Controller
	capture  capture.Provider
	submit   submitter
	log      *zerolog.Logger
	catalog  string

	sc *bufio.Scanner
}

func (s *session) run(ctx context.Context) error {
	s.sc = bufio.NewScanner(s.in)
	if s.catalog != "" {
		n, err := loadCatalog(ctx, s.catalog, s.capture, s.ctl)
		if err != nil {
			return err
		}
		s.printf("preloaded %d products from %s\n", n, s.catalog)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch s.ctl.State().Step {
		case wizard.StepTasker:
			err = s.taskerStep(ctx)
		case wizard.StepSeller:
			err = s.sellerStep(ctx)
		case wizard.StepProducts:
			var done bool
			done, err = s.productsStep(ctx)
			if err == nil && done {
				return nil
			}
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *session) taskerStep(ctx context.Context) error {
	s.printf("\n== Step 1/3: Tasker details ==\n")
	st := s.ctl.State().TaskerDetails
	name, err := s.ask("Name", st.Name)
	if err != nil {
		return err
	}
	phone, err := s.ask("Phone (10 digits)", st.Phone)
	if err != nil {
		return err
	}
	s.ctl.SetTasker(name, phone)
	s.advance()
	return nil
}

func (s *session) sellerStep(ctx context.Context) error {
	s.printf("\n== Step 2/3: Seller details ==  (type 'back' at any prompt to return)\n")
	st := s.ctl.State().SellerDetails
	fields := []struct {
		label string
		cur   string
		apply func(v string) wizard.SellerPatch
	}{
		{"Seller name", st.SellerName, func(v string) wizard.SellerPatch { return wizard.SellerPatch{SellerName: wizard.Ptr(v)} }},
		{"Seller phone (10 digits)", st.SellerPhoneNumber, func(v string) wizard.SellerPatch { return wizard.SellerPatch{SellerPhoneNumber: wizard.Ptr(v)} }},
		{"GST number (15 chars)", st.GSTNumber, func(v string) wizard.SellerPatch { return wizard.SellerPatch{GSTNumber: wizard.Ptr(v)} }},
	}
	for _, f := range fields {
		v, err := s.ask(f.label, f.cur)
		if err != nil {
			return err
		}
		if v == "back" {
			return s.back()
		}
		s.ctl.UpdateSeller(f.apply(v))
	}

	cur := ""
	if !st.ShopImage.IsZero() {
		cur = "captured"
	}
	path, err := s.ask("Shop image file", cur)
	if err != nil {
		return err
	}
	switch path {
	case "back":
		return s.back()
	case "captured":
	default:
		img, err := s.capture.Capture(ctx, path)
		if err != nil {
			s.printf("  ! %v\n", err)
			return nil
		}
		s.ctl.SetShopImage(img)
	}
	s.advance()
	return nil
}

// productsStep returns done=true after a successful submission.
func (s *session) productsStep(ctx context.Context) (bool, error) {
	st := s.ctl.State()
	s.printf("\n== Step 3/3: Products (%d) ==\n", len(st.Products))
	s.printf("[a]dd  [l]ist  [r]emove N  [u]ndo  [b]ack  [s]ubmit  [q]uit\n")
	line, err := s.readLine("> ")
	if err != nil {
		return false, err
	}
	cmd, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "a", "add":
		return false, s.addProduct(ctx)
	case "l", "list":
		for i, p := range st.Products {
			s.printf("  %3d. %-30s MRP %-8s MSP %s\n", i+1, p.Name, p.MRP, p.MSP)
		}
	case "r", "remove":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			s.printf("  ! usage: remove N\n")
			return false, nil
		}
		s.ctl.RemoveProduct(n - 1)
	case "u", "undo":
		if !s.ctl.Undo() {
			s.printf("  ! nothing to undo\n")
		}
	case "b", "back":
		return false, s.back()
	case "s", "submit":
		return s.submitForm(ctx)
	case "q", "quit":
		return false, errQuit
	default:
		s.printf("  ! unknown command %q\n", cmd)
	}
	return false, nil
}

func (s *session) addProduct(ctx context.Context) error {
	name, err := s.ask("Product name", "")
	if err != nil {
		return err
	}
	patch := wizard.ProductPatch{Name: wizard.Ptr(name)}
	slots := []**string{&patch.Image1, &patch.Image2, &patch.Image3}
	for i, slot := range slots {
		path, err := s.ask(fmt.Sprintf("Image %d file", i+1), "")
		if err != nil {
			return err
		}
		img, err := s.capture.Capture(ctx, path)
		if err != nil {
			s.printf("  ! %v\n", err)
			return nil
		}
		*slot = wizard.Ptr(string(img))
	}
	if patch.MRP, err = s.askPtr("MRP"); err != nil {
		return err
	}
	if patch.MSP, err = s.askPtr("MSP"); err != nil {
		return err
	}
	s.ctl.UpdateCurrentProduct(patch)
	if err := s.ctl.AddProduct(); err != nil {
		s.reasons(err)
		return nil
	}
	s.printf("  added (%d total)\n", len(s.ctl.State().Products))
	return nil
}

func (s *session) submitForm(ctx context.Context) (bool, error) {
	if err := s.ctl.ReadyToSubmit(); err != nil {
		s.reasons(err)
		return false, nil
	}
	s.printf("submitting %d products...\n", len(s.ctl.State().Products))
	res, err := s.submit.Submit(ctx, s.ctl.State())
	if err != nil {
		var vf *client.ValidationFailedError
		if errors.As(err, &vf) {
			s.printf("  ! the server rejected the form:\n")
			for _, is := range vf.Issues {
				s.printf("    - %s: %s\n", is.Path, is.Message)
			}
			return false, nil
		}
		s.log.Error().Err(err).Msg("submission failed")
		s.printf("  ! submission failed, please try again\n")
		return false, nil
	}
	s.printf("%s\n  tasker id: %s\n  seller id: %s\n", res.Message, res.TaskerID, res.SellerID)
	s.ctl.Reset()
	return true, nil
}

func (s *session) advance() {
	if err := s.ctl.Next(); err != nil {
		s.reasons(err)
	}
}

func (s *session) back() error {
	if err := s.ctl.Back(); err != nil {
		s.printf("  ! %v\n", err)
	}
	return nil
}

func (s *session) reasons(err error) {
	var ge *wizard.GateError
	if errors.As(err, &ge) {
		for _, r := range ge.Reasons {
			s.printf("  ! %s\n", r)
		}
		return
	}
	s.printf("  ! %v\n", err)
}

// ask shows cur as the default; an empty answer keeps it.
func (s *session) ask(label, cur string) (string, error) {
	prompt := label + ": "
	if cur != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, cur)
	}
	v, err := s.readLine(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return cur, nil
	}
	return v, nil
}

func (s *session) askPtr(label string) (*string, error) {
	v, err := s.ask(label, "")
	if err != nil {
		return nil, err
	}
	return wizard.Ptr(v), nil
}

func (s *session) readLine(prompt string) (string, error) {
	s.printf("%s", prompt)
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.sc.Text()), nil
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
