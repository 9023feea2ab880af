package window

import "testing"

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		drawable      int
		maxRatio      float32
		wantW, wantH  int
	}{
		{"standard display", 1280, 720, 1280, 2, 1280, 720},
		{"retina", 1280, 720, 2560, 2, 2560, 1440},
		{"capped at two", 1000, 500, 3000, 2, 2000, 1000},
		{"no cap", 1000, 500, 3000, 0, 3000, 1500},
		{"unknown drawable", 800, 600, 0, 2, 800, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ScaledSize(tt.width, tt.height, tt.drawable, tt.maxRatio)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ScaledSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
