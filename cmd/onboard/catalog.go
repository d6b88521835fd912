package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"seller-onboarding/internal/capture"
	"seller-onboarding/internal/wizard"
)

// catalogItem is one entry of a products YAML file:
//
//	- name: Basmati rice 1kg
//	  images: [rice-front.jpg, rice-back.jpg, rice-label.jpg]
//	  mrp: "120"
//	  msp: "99.50"
//
// Relative image paths resolve against the YAML file's directory.
type catalogItem struct {
	Name   string   `yaml:"name"`
	Images []string `yaml:"images"`
	MRP    string   `yaml:"mrp"`
	MSP    string   `yaml:"msp"`
}

// loadCatalog captures each item's images and adds it through the
// controller, so every entry passes the same gate as a typed product.
func loadCatalog(ctx context.Context, path string, cp capture.Provider, ctl *wizard.Controller) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}
	var items []catalogItem
	if err := yaml.Unmarshal(b, &items); err != nil {
		return 0, fmt.Errorf("parse catalog: %w", err)
	}
	dir := filepath.Dir(path)

	for i, it := range items {
		if len(it.Images) != 3 {
			return i, fmt.Errorf("catalog item %d (%s): want 3 images, got %d", i+1, it.Name, len(it.Images))
		}
		var imgs [3]*string
		for j, p := range it.Images {
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			img, err := cp.Capture(ctx, p)
			if err != nil {
				return i, fmt.Errorf("catalog item %d (%s): %w", i+1, it.Name, err)
			}
			imgs[j] = wizard.Ptr(string(img))
		}
		ctl.UpdateCurrentProduct(wizard.ProductPatch{
			Name:   wizard.Ptr(it.Name),
			Image1: imgs[0],
			Image2: imgs[1],
			Image3: imgs[2],
			MRP:    wizard.Ptr(it.MRP),
			MSP:    wizard.Ptr(it.MSP),
		})
		if err := ctl.AddProduct(); err != nil {
			return i, fmt.Errorf("catalog item %d (%s): %w", i+1, it.Name, err)
		}
	}
	return len(items), nil
}
