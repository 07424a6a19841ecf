package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"already small", 300, 200, 300, 200},
		{"exact box", 512, 512, 512, 512},
		{"landscape", 1024, 512, 512, 256},
		{"portrait", 600, 1200, 256, 512},
		{"sliver", 5000, 2, 512, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitWithin(tt.w, tt.h, MaxPhotoSide)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
