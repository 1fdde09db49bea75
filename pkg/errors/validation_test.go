package errors

import (
	"math"
	"testing"
)

func TestValidateVertexCount(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"minimum", 3, false},
		{"typical", 15, false},
		{"maximum", MaxVertices, false},

		{"negative", -1, true},
		{"zero", 0, true},
		{"two", 2, true},
		{"too many", MaxVertices + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVertexCount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVertexCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidVertexCount) {
				t.Errorf("ValidateVertexCount(%d) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidVertexCount)
			}
		})
	}
}

func TestValidateVertexID(t *testing.T) {
	tests := []struct {
		name    string
		id, n   int
		wantErr bool
	}{
		{"first", 0, 4, false},
		{"last", 3, 4, false},
		{"negative", -1, 4, true},
		{"past end", 4, 4, true},
		{"empty graph", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVertexID(tt.id, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVertexID(%d, %d) error = %v, wantErr %v", tt.id, tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeUnknownVertex) {
				t.Errorf("ValidateVertexID code = %v, want %v", GetCode(err), ErrCodeUnknownVertex)
			}
		})
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"negative", -500, 250.5, false},
		{"nan x", math.NaN(), 0, true},
		{"nan y", 0, math.NaN(), true},
		{"inf", math.Inf(1), 0, true},
		{"neg inf", 0, math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.x, tt.y)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%v, %v) error = %v, wantErr %v", tt.x, tt.y, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"svg", "dot", "json"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"svg", "svg", false},
		{"json", "json", false},
		{"unknown", "pdf", true},
		{"empty", "", true},
		{"case sensitive", "SVG", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, supported...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
