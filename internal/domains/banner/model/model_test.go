package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBannerFormValidate(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(30 * 24 * time.Hour)

	valid := BannerForm{Title: "Summer Reading", ImageURL: "http://cdn/banners/summer.jpg", StartAt: &start, EndAt: &end}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*BannerForm)
	}{
		{"missing title", func(f *BannerForm) { f.Title = "" }},
		{"missing image", func(f *BannerForm) { f.ImageURL = "" }},
		{"negative display order", func(f *BannerForm) { f.DisplayOrder = -1 }},
		{"end before start", func(f *BannerForm) { e := start.Add(-time.Hour); f.EndAt = &e }},
		{"end equals start", func(f *BannerForm) { f.EndAt = &start }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			assert.Error(t, form.Validate())
		})
	}
}

func TestBannerFormValidateOpenWindow(t *testing.T) {
	form := BannerForm{Title: "Evergreen", ImageURL: "http://cdn/banners/evergreen.jpg"}
	assert.NoError(t, form.Validate())
}
