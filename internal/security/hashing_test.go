package security

import "testing"

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4)

	hash, err := h.Hash([]byte("correct horse battery"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("Hash() returned plaintext")
	}

	if err := h.Compare(hash, []byte("correct horse battery")); err != nil {
		t.Errorf("Compare() with correct password error = %v", err)
	}
	if err := h.Compare(hash, []byte("wrong password")); err == nil {
		t.Error("Compare() with wrong password returned nil, want error")
	}
}

func TestNewHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"zero uses default", 0, 10},
		{"negative uses default", -3, 10},
		{"below min clamps", 2, 4},
		{"above max clamps", 40, 31},
		{"in range unchanged", 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHasher(tt.cost)
			if h.Cost != tt.want {
				t.Errorf("NewHasher(%d).Cost = %d, want %d", tt.cost, h.Cost, tt.want)
			}
		})
	}
}
